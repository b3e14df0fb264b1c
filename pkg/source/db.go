package source

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// schema.sql holds the AIS position table, one row per (vessel, timestamp).
//
//go:embed schema.sql
var schemaSQL string

// DBSource. AIS positions stored in a sqlite database
type DBSource struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// OpenDBSource. opens (or creates) the database at path and makes sure the schema exists
func OpenDBSource(path string, log *zap.Logger) (*DBSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrData, "open position database %s", path)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, util.WrapErrorf(err, util.ErrData, "configure position database %s", path)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, util.WrapErrorf(err, util.ErrData, "create position schema in %s", path)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("position database opened", zap.String("path", path))
	return &DBSource{db: db, path: path, log: log}, nil
}

func (s *DBSource) Name() string {
	return string(DATABASE) + ":" + s.path
}

func (s *DBSource) Close() error {
	return s.db.Close()
}

// InsertTracks. store every position of tracks in one transaction; existing rows are replaced
func (s *DBSource) InsertTracks(ctx context.Context, tracks ...*datastructure.Track) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO positions (mmsi, ts, lat, lon) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	n := 0
	for _, track := range tracks {
		for _, pos := range track.Positions() {
			if _, err := stmt.ExecContext(ctx, track.VesselID(), pos.Timestamp().Seconds(), pos.Lat(), pos.Lon()); err != nil {
				return util.WrapErrorf(err, util.ErrData, "insert position of %s", track.VesselID())
			}
			n++
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("positions stored", zap.Int("positions", n), zap.Int("tracks", len(tracks)))
	return nil
}

func (s *DBSource) Tracks(ctx context.Context) ([]*datastructure.Track, error) {
	return s.TracksBetween(ctx, 0, 0)
}

// TracksBetween. tracks restricted to from <= ts < to; a zero bound is open
func (s *DBSource) TracksBetween(ctx context.Context, from, to datastructure.Timestamp) ([]*datastructure.Track, error) {
	query := `SELECT mmsi, ts, lat, lon FROM positions WHERE (? = 0 OR ts >= ?) AND (? = 0 OR ts < ?) ORDER BY mmsi, ts`
	rows, err := s.db.QueryContext(ctx, query, from.Seconds(), from.Seconds(), to.Seconds(), to.Seconds())
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrData, "query positions")
	}
	defer rows.Close()

	byVessel := make(map[string][]datastructure.Position)
	order := make([]string, 0)
	for rows.Next() {
		var (
			mmsi     string
			ts       int64
			lat, lon float64
		)
		if err := rows.Scan(&mmsi, &ts, &lat, &lon); err != nil {
			return nil, util.WrapErrorf(err, util.ErrData, "scan position")
		}
		if _, ok := byVessel[mmsi]; !ok {
			order = append(order, mmsi)
		}
		byVessel[mmsi] = append(byVessel[mmsi], datastructure.NewPosition(geo.NewPoint(lat, lon), datastructure.Timestamp(ts)))
	}
	if err := rows.Err(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrData, "iterate positions")
	}
	return tracksOf(order, byVessel)
}

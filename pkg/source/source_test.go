package source

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pos(lat, lon float64, ts int64) datastructure.Position {
	return datastructure.NewPosition(geo.NewPoint(lat, lon), datastructure.Timestamp(ts))
}

func mustTrack(t *testing.T, mmsi string, positions ...datastructure.Position) *datastructure.Track {
	t.Helper()
	track, err := datastructure.NewTrack(mmsi, positions)
	require.NoError(t, err)
	return track
}

func TestSyntheticSource(t *testing.T) {
	src := NewSyntheticSource(DefaultWaypoints(), 3, 5, 7)
	tracks, err := src.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	for _, track := range tracks {
		require.Equal(t, 5, track.Len())
		for i, p := range track.Positions() {
			wp := DefaultWaypoints()[i]
			// 5 km of noise is under 2.7 NM
			assert.LessOrEqual(t, geo.DistanceInMiles(wp, p.Point()), 2.7)
			assert.Equal(t, syntheticStart.AddSeconds(int64(i)*3600), p.Timestamp())
		}
	}

	again, err := NewSyntheticSource(DefaultWaypoints(), 3, 5, 7).Tracks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tracks[2].Positions(), again[2].Positions())
}

func TestSyntheticSourceWithoutNoise(t *testing.T) {
	tracks, err := NewSyntheticSource(DefaultWaypoints(), 1, 0, 1).Tracks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, geo.NewPoint(31, -12), tracks[0].First().Point())
	assert.Equal(t, 4, tracks[0].Last().Index())
}

func TestFileSourceRoundTrip(t *testing.T) {
	tracks := []*datastructure.Track{
		mustTrack(t, "247039300", pos(36.1, -5.6, 100), pos(36.2, -4.9, 3700)),
		mustTrack(t, "636092587", pos(35.9, -5.3, 50), pos(35.95, -4.1, 200), pos(36, -3.2, 9000)),
	}

	for _, name := range []string{"positions.csv", "positions.csv.bz2"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteCSV(path, tracks...))

			got, err := NewFileSource(path).Tracks(context.Background())
			require.NoError(t, err)
			require.Len(t, got, 2)
			for i := range tracks {
				assert.Equal(t, tracks[i].VesselID(), got[i].VesselID())
				require.Equal(t, tracks[i].Len(), got[i].Len())
				for j := range tracks[i].Positions() {
					assert.Equal(t, tracks[i].At(j).Point(), got[i].At(j).Point())
					assert.Equal(t, tracks[i].At(j).Timestamp(), got[i].At(j).Timestamp())
					assert.Equal(t, j, got[i].At(j).Index())
				}
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func TestWriteCSVReportsWriteErrors(t *testing.T) {
	tracks := []*datastructure.Track{mustTrack(t, "247039300", pos(36.1, -5.6, 100), pos(36.2, -4.9, 3700))}

	assert.Error(t, writeCSV(failingWriter{}, tracks))
	assert.Error(t, writeBzip2CSV(failingWriter{}, tracks))

	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "positions.csv.bz2"), tracks...)
	assert.Error(t, err)
}

func TestReadCSVSortsAndGroups(t *testing.T) {
	data := "mmsi,ts,lat,lon\n1,20,1,1\n2,5,9,9\n1,10,0,0\n"
	tracks, err := ReadCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, tracks, 2)
	assert.Equal(t, "1", tracks[0].VesselID())
	assert.Equal(t, datastructure.Timestamp(10), tracks[0].First().Timestamp())
	assert.Equal(t, geo.NewPoint(1, 1), tracks[0].Last().Point())
}

func TestReadCSVMalformed(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "bad latitude", data: "1,20,north,1\n"},
		{name: "missing column", data: "1,20,1\n"},
		{name: "bad timestamp", data: "1,yesterday,1,1\n"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(context.Background(), strings.NewReader(tt.data))
			assert.True(t, errors.Is(err, util.ErrData))
		})
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.csv")).Tracks(context.Background())
	assert.True(t, errors.Is(err, util.ErrData))
}

func TestDBSource(t *testing.T) {
	db, err := OpenDBSource(filepath.Join(t.TempDir(), "ais.db"), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.InsertTracks(ctx,
		mustTrack(t, "a", pos(1, 1, 10), pos(2, 2, 20), pos(3, 3, 30)),
		mustTrack(t, "b", pos(5, 5, 15)),
	))

	tracks, err := db.Tracks(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "a", tracks[0].VesselID())
	assert.Equal(t, 3, tracks[0].Len())
	assert.Equal(t, geo.NewPoint(2, 2), tracks[0].At(1).Point())

	between, err := db.TracksBetween(ctx, 15, 30)
	require.NoError(t, err)
	require.Len(t, between, 2)
	assert.Equal(t, 1, between[0].Len())
	assert.Equal(t, datastructure.Timestamp(20), between[0].First().Timestamp())

	// inserting again replaces rows instead of duplicating them
	require.NoError(t, db.InsertTracks(ctx, mustTrack(t, "b", pos(6, 6, 15))))
	tracks, err = db.Tracks(ctx)
	require.NoError(t, err)
	assert.Equal(t, geo.NewPoint(6, 6), tracks[1].First().Point())
}

func TestYearPeriod(t *testing.T) {
	jan := datastructure.NewTimestamp(time.Date(2011, 1, 15, 0, 0, 0, 0, time.UTC))
	dec := datastructure.NewTimestamp(time.Date(2011, 12, 1, 0, 0, 0, 0, time.UTC))
	jul := datastructure.NewTimestamp(time.Date(2011, 7, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, WINTER.Contains(jan))
	assert.True(t, WINTER.Contains(dec))
	assert.False(t, WINTER.Contains(jul))
	assert.True(t, SUMMER.Contains(jul))
	assert.True(t, ANY_PERIOD.Contains(jul))

	p, err := ParseYearPeriod("autumn")
	require.NoError(t, err)
	assert.Equal(t, AUTUMN, p)
	_, err = ParseYearPeriod("monsoon")
	assert.True(t, errors.Is(err, util.ErrConfiguration))
}

var (
	gibraltar = geo.Box{MinLat: 35.5, MinLon: -6.5, MaxLat: 36.5, MaxLon: -5}
	suez      = geo.Box{MinLat: 29.5, MinLon: 32, MaxLat: 31.5, MaxLon: 33}
)

func TestVoyageMiner(t *testing.T) {
	jan := datastructure.NewTimestamp(time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)).Seconds()
	day := int64(24 * 3600)
	tracks := []*datastructure.Track{
		// leaves gibraltar at its second position, reaches suez
		mustTrack(t, "1", pos(36, -6, jan), pos(36, -5.5, jan+3600), pos(36, 5, jan+day),
			pos(33, 25, jan+3*day), pos(31, 32.5, jan+5*day), pos(31, 32.6, jan+5*day+60)),
		// never reaches suez
		mustTrack(t, "2", pos(36, -6, jan), pos(40, 5, jan+day)),
		// too slow
		mustTrack(t, "3", pos(36, -6, jan), pos(31, 32.5, jan+30*day)),
		// arrives before it departs
		mustTrack(t, "4", pos(31, 32.5, jan), pos(36, -6, jan+day)),
	}

	miner := NewVoyageMiner(gibraltar, suez, WINTER, 10*24*time.Hour, 0, zap.NewNop())
	voyages := miner.Mine(tracks)

	require.Len(t, voyages, 1)
	v := voyages[0]
	assert.Equal(t, "1", v.VesselID())
	require.Equal(t, 4, v.Len())
	assert.Equal(t, geo.NewPoint(36, -5.5), v.First().Point())
	assert.Equal(t, geo.NewPoint(31, 32.5), v.Last().Point())
	assert.Equal(t, 0, v.First().Index())

	assert.Empty(t, NewVoyageMiner(gibraltar, suez, SUMMER, 0, 0, nil).Mine(tracks))
	assert.Len(t, NewVoyageMiner(gibraltar, suez, ANY_PERIOD, 0, 1, nil).Mine(tracks), 1)
	assert.Len(t, NewVoyageMiner(gibraltar, suez, ANY_PERIOD, 0, 0, nil).Mine(tracks), 2)

	empty := NewVoyageMiner(gibraltar, suez, ANY_PERIOD, 0, 0, nil).Mine([]*datastructure.Track{mustTrack(t, "5")})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBuildTrainingSet(t *testing.T) {
	cfg := Config{
		Kind:             SYNTHETIC,
		NormalizeTime:    true,
		ReferenceStart:   "2000-01-03T00:00:00Z",
		SyntheticVessels: 2,
		SyntheticNoiseKm: 1,
		Seed:             3,
	}
	src, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	set, err := BuildTrainingSet(context.Background(), src, cfg, 10, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, set.Voyages, 2)
	require.Len(t, set.Targets, 10)
	ref := datastructure.NewTimestamp(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, ref, set.Targets[0].Timestamp())
	for i := 1; i < len(set.Targets); i++ {
		assert.False(t, set.Targets[i].Timestamp().Before(set.Targets[i-1].Timestamp()))
	}
}

func TestBuildTrainingSetEmpty(t *testing.T) {
	cfg := Config{
		Kind:      SYNTHETIC,
		Departure: &geo.Box{MinLat: -10, MinLon: -10, MaxLat: -9, MaxLon: -9},
		Arrival:   &suez,
	}
	src := NewSyntheticSource(DefaultWaypoints(), 1, 0, 1)
	_, err := BuildTrainingSet(context.Background(), src, cfg, 10, nil)
	assert.True(t, errors.Is(err, util.ErrData))
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Config{Kind: "kafka"}, nil)
	assert.True(t, errors.Is(err, util.ErrConfiguration))
}

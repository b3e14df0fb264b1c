package source

import (
	"bufio"
	"cmp"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
)

var csvHeader = []string{"mmsi", "ts", "lat", "lon"}

// FileSource. csv of mmsi,ts,lat,lon rows (ts in unix seconds); bzip2 compressed when the name ends with .bz2
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return string(FILE) + ":" + s.path
}

func (s *FileSource) Tracks(ctx context.Context) ([]*datastructure.Track, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrData, "open position file %s", s.path)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if isBzip2(s.path) {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrData, "open bzip2 stream %s", s.path)
		}
		defer bz.Close()
		r = bufio.NewReader(bz)
	}
	return ReadCSV(ctx, r)
}

// ReadCSV. tracks of every vessel in r, in order of first appearance
func ReadCSV(ctx context.Context, r io.Reader) ([]*datastructure.Track, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	byVessel := make(map[string][]datastructure.Position)
	order := make([]string, 0)
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrData, "read position csv")
		}
		if line == 1 && strings.EqualFold(record[0], csvHeader[0]) {
			continue
		}
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		mmsi, pos, err := parseRecord(record)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrData, "position csv line %d", line)
		}
		if _, ok := byVessel[mmsi]; !ok {
			order = append(order, mmsi)
		}
		byVessel[mmsi] = append(byVessel[mmsi], pos)
	}

	return tracksOf(order, byVessel)
}

func parseRecord(record []string) (string, datastructure.Position, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return "", datastructure.Position{}, err
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return "", datastructure.Position{}, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return "", datastructure.Position{}, err
	}
	return strings.TrimSpace(record[0]),
		datastructure.NewPosition(geo.NewPoint(lat, lon), datastructure.Timestamp(ts)), nil
}

// tracksOf. sorts the positions of every vessel by time and indexes them
func tracksOf(order []string, byVessel map[string][]datastructure.Position) ([]*datastructure.Track, error) {
	tracks := make([]*datastructure.Track, 0, len(order))
	for _, mmsi := range order {
		positions := byVessel[mmsi]
		slices.SortStableFunc(positions, func(a, b datastructure.Position) int {
			return cmp.Compare(a.Timestamp(), b.Timestamp())
		})
		for i, pos := range positions {
			positions[i] = datastructure.NewIndexedPosition(pos.Point(), pos.Timestamp(), i)
		}
		track, err := datastructure.NewTrack(mmsi, positions)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// WriteCSV. save tracks to path in the format FileSource reads
func WriteCSV(path string, tracks ...*datastructure.Track) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if !isBzip2(path) {
		return writeCSV(f, tracks)
	}
	return writeBzip2CSV(f, tracks)
}

// writeBzip2CSV. the last block is only written by Close, so its error is the write result
func writeBzip2CSV(w io.Writer, tracks []*datastructure.Track) error {
	bz, err := bzip2.NewWriter(w, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := writeCSV(bz, tracks); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func writeCSV(w io.Writer, tracks []*datastructure.Track) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, track := range tracks {
		for _, pos := range track.Positions() {
			record := []string{
				track.VesselID(),
				strconv.FormatInt(pos.Timestamp().Seconds(), 10),
				strconv.FormatFloat(pos.Lat(), 'f', -1, 64),
				strconv.FormatFloat(pos.Lon(), 'f', -1, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

func isBzip2(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".bz2")
}

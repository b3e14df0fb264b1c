package source

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"golang.org/x/exp/rand"
)

const (
	syntheticStart    datastructure.Timestamp = 100000
	syntheticInterval int64                   = 3600
	syntheticMMSIBase                         = 999000000
)

// DefaultWaypoints. small closed loop off the Moroccan coast
func DefaultWaypoints() []geo.Point {
	return geo.NewPoints(
		[]float64{31, 32, 31, 30, 31},
		[]float64{-12, -11, -10, -11, -12},
	)
}

// SyntheticSource. in-memory vessels sailing the same waypoints, one hour apart, each position
// moved by a random offset of at most noiseKm.
type SyntheticSource struct {
	waypoints []geo.Point
	vessels   int
	noiseKm   float64
	seed      uint64
}

func NewSyntheticSource(waypoints []geo.Point, vessels int, noiseKm float64, seed uint64) *SyntheticSource {
	if vessels < 1 {
		vessels = 1
	}
	return &SyntheticSource{
		waypoints: waypoints,
		vessels:   vessels,
		noiseKm:   noiseKm,
		seed:      seed,
	}
}

func (s *SyntheticSource) Name() string {
	return string(SYNTHETIC)
}

// Tracks. deterministic for a given seed
func (s *SyntheticSource) Tracks(ctx context.Context) ([]*datastructure.Track, error) {
	rd := rand.New(rand.NewSource(s.seed))
	tracks := make([]*datastructure.Track, 0, s.vessels)
	for v := 0; v < s.vessels; v++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		positions := make([]datastructure.Position, len(s.waypoints))
		for i, wp := range s.waypoints {
			p := wp
			if s.noiseKm > 0 {
				lat, lon := geo.GetDestinationPoint(wp.Lat, wp.Lon, rd.Float64()*360, rd.Float64()*s.noiseKm)
				p = geo.NewPoint(lat, lon)
			}
			ts := syntheticStart.AddSeconds(int64(i) * syntheticInterval)
			positions[i] = datastructure.NewIndexedPosition(p, ts, i)
		}
		track, err := datastructure.NewTrack(fmt.Sprintf("%d", syntheticMMSIBase+v), positions)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

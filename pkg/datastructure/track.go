package datastructure

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
)

const (
	secondsPerHour = 3600.0

	ReconstructedVesselID = "reconstructed"
)

// Track. time-ordered positions of one vessel. built once, never edited afterwards.
type Track struct {
	vesselID  string
	positions []Position
}

// NewTrack. positions must have non-decreasing timestamps
func NewTrack(vesselID string, positions []Position) (*Track, error) {
	for i := 1; i < len(positions); i++ {
		if positions[i].Timestamp().Before(positions[i-1].Timestamp()) {
			return nil, util.WrapErrorf(nil, util.ErrData,
				"track %s: position %d at %s is earlier than position %d at %s", vesselID,
				i, positions[i].Timestamp(), i-1, positions[i-1].Timestamp())
		}
	}
	return &Track{
		vesselID:  vesselID,
		positions: positions,
	}, nil
}

/*
Reconstruct. rebuild a track from a start position and a sequence of steps.
p_0 = start, p_i = p_{i-1} + step_i. the time spent on step i is its length in nautical miles
divided by referenceSpeed (knots), so every timestamp is known before its position is built.
*/
func Reconstruct(start Position, steps *DisplacementSequence, referenceSpeed float64) (*Track, error) {
	if !util.IsFinite(referenceSpeed) || referenceSpeed <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrComputation, "invalid reference speed %v knots", referenceSpeed)
	}
	if !start.Point().IsFinite() {
		return nil, util.WrapErrorf(nil, util.ErrComputation, "invalid start position %s", start)
	}

	n := 0
	if steps != nil {
		n = steps.Len()
	}
	positions := make([]Position, 0, n+1)
	positions = append(positions, start)

	prev := start
	for i := 0; i < n; i++ {
		next := steps.At(i).ApplyTo(prev.Point())
		if !next.IsFinite() {
			return nil, util.WrapErrorf(nil, util.ErrComputation, "step %d %s leads to invalid point", i, steps.At(i))
		}
		ts, err := sail(prev.Timestamp(), prev.Point(), next, referenceSpeed)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrComputation, "step %d %s", i, steps.At(i))
		}
		pos := NewIndexedPosition(next, ts, i+1)
		positions = append(positions, pos)
		prev = pos
	}

	return &Track{
		vesselID:  ReconstructedVesselID,
		positions: positions,
	}, nil
}

// StepDurationSeconds. whole seconds needed to sail from a to b at speed knots; ErrComputation when it does not fit an int64
func StepDurationSeconds(a, b geo.Point, speed float64) (int64, error) {
	secs := math.Trunc(geo.DistanceInMiles(a, b) / speed * secondsPerHour)
	if !util.IsFinite(secs) || secs < 0 || secs >= math.MaxInt64 {
		return 0, util.WrapErrorf(nil, util.ErrComputation, "sailing %s -> %s at %v knots takes %v seconds",
			a, b, speed, secs)
	}
	return int64(secs), nil
}

// sail. time of arrival at b when leaving a at ts
func sail(ts Timestamp, a, b geo.Point, speed float64) (Timestamp, error) {
	secs, err := StepDurationSeconds(a, b, speed)
	if err != nil {
		return 0, err
	}
	if ts > 0 && secs > math.MaxInt64-ts.Seconds() {
		return 0, util.WrapErrorf(nil, util.ErrComputation, "arrival %d seconds after %d overflows", secs, ts.Seconds())
	}
	return ts.AddSeconds(secs), nil
}

func (t *Track) VesselID() string {
	return t.vesselID
}

// Positions. read-only view of the track positions
func (t *Track) Positions() []Position {
	return t.positions
}

func (t *Track) Len() int {
	return len(t.positions)
}

func (t *Track) At(i int) Position {
	return t.positions[i]
}

func (t *Track) First() Position {
	return t.positions[0]
}

func (t *Track) Last() Position {
	return t.positions[len(t.positions)-1]
}

// Segments. one segment per consecutive pair of positions, freshly built on every call
func (t *Track) Segments() []*TrackSegment {
	if len(t.positions) < 2 {
		return []*TrackSegment{}
	}
	segments := make([]*TrackSegment, 0, len(t.positions)-1)
	for i := 0; i < len(t.positions)-1; i++ {
		segments = append(segments, NewTrackSegment(t.positions[i], t.positions[i+1]))
	}
	return segments
}

// ComputeDisplacements. steps between consecutive positions; Reconstruct(First(), steps, speed) gives back the path
func (t *Track) ComputeDisplacements() *DisplacementSequence {
	ds := NewDisplacementSequence()
	for i := 1; i < len(t.positions); i++ {
		ds.Add(DisplacementBetween(t.positions[i-1].Point(), t.positions[i].Point()))
	}
	return ds
}

func (t *Track) LengthInMiles() float64 {
	length := 0.0
	for i := 1; i < len(t.positions); i++ {
		length += geo.DistanceInMiles(t.positions[i-1].Point(), t.positions[i].Point())
	}
	return length
}

func (t *Track) Duration() time.Duration {
	if len(t.positions) == 0 {
		return 0
	}
	return t.Last().Timestamp().Sub(t.First().Timestamp())
}

/*
NormalizeTime. copy of the track that starts at referenceStart and whose timestamps follow from
sailing every leg at referenceSpeed. tracks of different vessels and voyages become comparable in time.
*/
func (t *Track) NormalizeTime(referenceStart Timestamp, referenceSpeed float64) (*Track, error) {
	if !util.IsFinite(referenceSpeed) || referenceSpeed <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrComputation, "invalid reference speed %v knots", referenceSpeed)
	}
	positions := make([]Position, len(t.positions))
	ts := referenceStart
	for i, pos := range t.positions {
		if i > 0 {
			var err error
			ts, err = sail(ts, t.positions[i-1].Point(), pos.Point(), referenceSpeed)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrComputation, "track %s leg %d", t.vesselID, i)
			}
		}
		positions[i] = NewIndexedPosition(pos.Point(), ts, pos.Index())
	}
	return &Track{
		vesselID:  t.vesselID,
		positions: positions,
	}, nil
}

func (t *Track) String() string {
	if len(t.positions) == 0 {
		return fmt.Sprintf("Track %s: empty", t.vesselID)
	}
	s := fmt.Sprintf("Track %s: %d positions, start=%s", t.vesselID, len(t.positions), t.First().Timestamp())
	if len(t.positions) > 1 {
		s += fmt.Sprintf(", %s, %.1f NM", t.Duration(), t.LengthInMiles())
	}
	return s
}

// MergeByTime. all positions of the given tracks, ordered by timestamp. ties keep track order.
func MergeByTime(tracks ...*Track) []Position {
	total := 0
	for _, t := range tracks {
		total += t.Len()
	}
	merged := make([]Position, 0, total)
	for _, t := range tracks {
		merged = append(merged, t.positions...)
	}
	slices.SortStableFunc(merged, func(a, b Position) int {
		return cmp.Compare(a.Timestamp(), b.Timestamp())
	})
	return merged
}

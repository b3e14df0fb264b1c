package trackerror

import (
	"fmt"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
)

// TrackError. error terms of one (track, targets) pair. read-only once computed.
type TrackError struct {
	CoverageError     float64 // unassigned / total, [0, 1]
	TotalSegmentError float64 // sum of segment average squared distances
	AvgSegmentError   float64 // TotalSegmentError / number of segments
	HeadingError      float64 // [0, 1], 0 when no segment covers two targets
	DestinationError  float64 // squared distance between the track end and the last target

	Assigned   int
	Unassigned int

	segments []*datastructure.TrackSegment
}

/*
Compute. assign targets to the segments of track and derive every error term.
the track is not modified; its segments are rebuilt for this call and kept in the result.
*/
func Compute(track *datastructure.Track, targets []datastructure.Position) (*TrackError, error) {
	if len(targets) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrData, "no target positions to compute the track error against")
	}
	if track == nil || track.Len() == 0 {
		return nil, util.WrapErrorf(nil, util.ErrComputation, "empty track")
	}

	segments := track.Segments()
	assigned, unassigned := Assign(segments, targets)

	te := &TrackError{
		CoverageError: float64(unassigned) / float64(len(targets)),
		Assigned:      assigned,
		Unassigned:    unassigned,
		segments:      segments,
	}

	te.TotalSegmentError, te.AvgSegmentError = segmentError(segments)
	te.HeadingError = headingError(segments)
	te.DestinationError = geo.SquaredDistance(track.Last().Point(), targets[len(targets)-1].Point())

	for _, m := range AllMetrics {
		if v := te.Value(m, AVERAGE_SEGMENT_ERROR); !util.IsFinite(v) || v < 0 {
			return nil, util.WrapErrorf(nil, util.ErrComputation, "invalid %s error %v for %s", m, v, track)
		}
	}
	if !util.IsFinite(te.TotalSegmentError) {
		return nil, util.WrapErrorf(nil, util.ErrComputation, "invalid total segment error %v for %s",
			te.TotalSegmentError, track)
	}
	return te, nil
}

func segmentError(segments []*datastructure.TrackSegment) (float64, float64) {
	if len(segments) == 0 {
		return 0, 0
	}
	total := 0.0
	for _, seg := range segments {
		total += seg.Stats().AvgSquaredDistance
	}
	return total, total / float64(len(segments))
}

// headingError. mean normalized deviation between a segment bearing and the bearing from its first
// to its last covered target, over the segments covering at least two targets.
func headingError(segments []*datastructure.TrackSegment) float64 {
	sum, n := 0.0, 0
	for _, seg := range segments {
		targets := seg.GetTargets()
		if len(targets) < 2 || seg.IsDegenerate() {
			continue
		}
		first, last := targets[0].Point(), targets[len(targets)-1].Point()
		if first.Equal(last) {
			continue
		}
		sum += geo.AngleDifference(seg.Bearing(), geo.PlanarBearing(first, last)) / 180.0
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Value. the given metric; variant selects which segment error SEGMENT stands for
func (te *TrackError) Value(m Metric, variant SegmentErrorVariant) float64 {
	switch m {
	case COVERAGE:
		return te.CoverageError
	case SEGMENT:
		if variant == AVERAGE_SEGMENT_ERROR {
			return te.AvgSegmentError
		}
		return te.TotalSegmentError
	case HEADING:
		return te.HeadingError
	case DESTINATION:
		return te.DestinationError
	}
	return 0
}

// Metrics. all metrics keyed by name
func (te *TrackError) Metrics(variant SegmentErrorVariant) map[string]float64 {
	metrics := make(map[string]float64, len(AllMetrics))
	for _, m := range AllMetrics {
		metrics[m.String()] = te.Value(m, variant)
	}
	return metrics
}

// Segments. read-only breakdown, targets and statistics included
func (te *TrackError) Segments() []*datastructure.TrackSegment {
	return te.segments
}

func (te *TrackError) Total() int {
	return te.Assigned + te.Unassigned
}

func (te *TrackError) String() string {
	return fmt.Sprintf("TrackError: coverage=%.4f (%d/%d uncovered), segment total=%g avg=%g, heading=%.4f, destination=%g",
		te.CoverageError, te.Unassigned, te.Total(), te.TotalSegmentError, te.AvgSegmentError,
		te.HeadingError, te.DestinationError)
}

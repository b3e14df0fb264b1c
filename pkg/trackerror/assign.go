package trackerror

import (
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
)

/*
Assign. distribute time-ordered targets over time-ordered segments in one left-to-right sweep.

every target is matched against the segments from the current one onwards; the first segment whose
stripe contains it takes it and becomes the current segment. consumption is monotonic: a segment
left behind never receives a later target. a target that no remaining segment admits is uncovered
and the sweep continues with the next target from the same segment.

SetTargets is called on every segment, so segments without targets end up with zero statistics.
returns the number of assigned and unassigned targets; assigned + unassigned == len(targets).
*/
func Assign(segments []*datastructure.TrackSegment, targets []datastructure.Position) (int, int) {
	buckets := make([][]datastructure.Position, len(segments))

	assigned, unassigned := 0, 0
	current := 0
	for _, target := range targets {
		matched := false
		for j := current; j < len(segments); j++ {
			if segments[j].IsWithinStripe(target.Point()) {
				buckets[j] = append(buckets[j], target)
				current = j
				matched = true
				break
			}
		}
		if matched {
			assigned++
		} else {
			unassigned++
		}
	}

	for i, seg := range segments {
		if buckets[i] == nil {
			buckets[i] = []datastructure.Position{}
		}
		seg.SetTargets(buckets[i])
	}
	return assigned, unassigned
}

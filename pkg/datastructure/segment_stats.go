package datastructure

import (
	"math"

	"github.com/lintang-b-s/evotrack/pkg/geo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SegmentStats. distance aggregates of the targets covered by a segment; all zero when nothing is covered
type SegmentStats struct {
	Covered int

	AvgSquaredDistance float64
	MinSquaredDistance float64
	MaxSquaredDistance float64
	VarSquaredDistance float64 // population variance

	AvgSegmentEndsDistance float64 // mean of dist(target, p1) + dist(target, p2)

	SquaredDistanceEndToLastTarget float64 // drift between the segment end and the last covered target

	squaredDistances []float64
}

// SquaredDistances. per target, in assignment order
func (st SegmentStats) SquaredDistances() []float64 {
	return st.squaredDistances
}

func computeSegmentStats(p1, p2 geo.Point, targets []Position) SegmentStats {
	k := len(targets)
	if k == 0 {
		return SegmentStats{}
	}

	squaredDistances := make([]float64, k)
	endsDistances := make([]float64, k)
	for i, target := range targets {
		squaredDistances[i] = geo.SquaredDistanceToSegment(target.Point(), p1, p2)
		endsDistances[i] = geo.Distance(target.Point(), p1) + geo.Distance(target.Point(), p2)
	}

	mean, variance := stat.PopMeanVariance(squaredDistances, nil)
	if k == 1 || variance < 0 || math.IsNaN(variance) {
		variance = 0
	}

	return SegmentStats{
		Covered:                        k,
		AvgSquaredDistance:             mean,
		MinSquaredDistance:             floats.Min(squaredDistances),
		MaxSquaredDistance:             floats.Max(squaredDistances),
		VarSquaredDistance:             variance,
		AvgSegmentEndsDistance:         stat.Mean(endsDistances, nil),
		SquaredDistanceEndToLastTarget: geo.SquaredDistance(p2, targets[k-1].Point()),
		squaredDistances:               squaredDistances,
	}
}

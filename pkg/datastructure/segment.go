package datastructure

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/geo"
)

// TrackSegment. derived leg between two consecutive track positions; carries the targets assigned to it.
type TrackSegment struct {
	p1, p2 Position

	center        geo.Point
	length        float64 // degrees
	lengthInMiles float64
	duration      time.Duration

	targets []Position
	stats   SegmentStats
}

func NewTrackSegment(p1, p2 Position) *TrackSegment {
	return &TrackSegment{
		p1:            p1,
		p2:            p2,
		center:        geo.MidPointPlanar(p1.Point(), p2.Point()),
		length:        geo.Distance(p1.Point(), p2.Point()),
		lengthInMiles: geo.DistanceInMiles(p1.Point(), p2.Point()),
		duration:      p2.Timestamp().Sub(p1.Timestamp()),
	}
}

// IsWithinStripe. true if the perpendicular projection of p lies on this segment (bounds included)
func (s *TrackSegment) IsWithinStripe(p geo.Point) bool {
	return geo.IsWithinStripe(p, s.p1.Point(), s.p2.Point())
}

// SquaredDistance. perpendicular inside the stripe, nearer endpoint outside
func (s *TrackSegment) SquaredDistance(p geo.Point) float64 {
	return geo.SquaredDistanceToSegment(p, s.p1.Point(), s.p2.Point())
}

// SetTargets. attach the targets covered by this segment and compute their statistics
func (s *TrackSegment) SetTargets(targets []Position) {
	s.targets = targets
	s.stats = computeSegmentStats(s.p1.Point(), s.p2.Point(), targets)
}

func (s *TrackSegment) GetP1() Position {
	return s.p1
}

func (s *TrackSegment) GetP2() Position {
	return s.p2
}

func (s *TrackSegment) GetCenter() geo.Point {
	return s.center
}

func (s *TrackSegment) GetLength() float64 {
	return s.length
}

func (s *TrackSegment) GetLengthInMiles() float64 {
	return s.lengthInMiles
}

func (s *TrackSegment) GetDuration() time.Duration {
	return s.duration
}

// Bearing. planar direction of travel along the segment
func (s *TrackSegment) Bearing() float64 {
	return geo.PlanarBearing(s.p1.Point(), s.p2.Point())
}

func (s *TrackSegment) IsDegenerate() bool {
	return s.p1.Point().Equal(s.p2.Point())
}

// GetTargets. read-only view of the covered targets
func (s *TrackSegment) GetTargets() []Position {
	return s.targets
}

func (s *TrackSegment) GetNumberOfCoveredTargets() int {
	return s.stats.Covered
}

func (s *TrackSegment) Stats() SegmentStats {
	return s.stats
}

func (s *TrackSegment) String() string {
	str := fmt.Sprintf("Segment: %s --- %s, l = %.5f deg (%.2f NM), d = %s\n",
		s.p1, s.p2, s.length, s.lengthInMiles, s.duration)
	if len(s.targets) == 0 {
		return str + "No position covered!\n"
	}
	first, last := 0, len(s.targets)-1
	str += fmt.Sprintf("Total covered positions: %d\n", len(s.targets))
	str += fmt.Sprintf("First covered pos: %s, d^2=%g\n", s.targets[first], s.stats.squaredDistances[first])
	str += fmt.Sprintf("Last covered pos: %s, d^2=%g\n", s.targets[last], s.stats.squaredDistances[last])
	str += fmt.Sprintf("Squared perpendicular distance: avg=%g, min=%g, max=%g, var=%g, end to last=%g\n",
		s.stats.AvgSquaredDistance, s.stats.MinSquaredDistance, s.stats.MaxSquaredDistance,
		s.stats.VarSquaredDistance, s.stats.SquaredDistanceEndToLastTarget)
	str += fmt.Sprintf("Distance to segment ends: avg=%g\n", s.stats.AvgSegmentEndsDistance)
	return str
}

package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectPerpendicular(t *testing.T) {
	testCases := []struct {
		name     string
		p        Point
		segStart Point
		segEnd   Point
		want     Point
	}{
		{
			name:     "point beside a meridian segment",
			p:        NewPoint(0.5, 0.3),
			segStart: NewPoint(0, 0),
			segEnd:   NewPoint(1, 0),
			want:     NewPoint(0.5, 0),
		},
		{
			name:     "point beyond the segment end projects onto the extended line",
			p:        NewPoint(3, -2),
			segStart: NewPoint(0, 0),
			segEnd:   NewPoint(1, 0),
			want:     NewPoint(3, 0),
		},
		{
			name:     "diagonal segment",
			p:        NewPoint(0, 2),
			segStart: NewPoint(0, 0),
			segEnd:   NewPoint(2, 2),
			want:     NewPoint(1, 1),
		},
		{
			name:     "degenerate segment returns its endpoint",
			p:        NewPoint(4, 4),
			segStart: NewPoint(1, 1),
			segEnd:   NewPoint(1, 1),
			want:     NewPoint(1, 1),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectPerpendicular(tt.p, tt.segStart, tt.segEnd)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-12)
			assert.InDelta(t, tt.want.Lon, got.Lon, 1e-12)
		})
	}
}

func TestIsOnSegmentInclusive(t *testing.T) {
	s, e := NewPoint(0, 0), NewPoint(1, 0)

	assert.True(t, IsOnSegment(NewPoint(0, 0), s, e))
	assert.True(t, IsOnSegment(NewPoint(1, 0), s, e))
	assert.True(t, IsOnSegment(NewPoint(0.25, 0), s, e))
	assert.False(t, IsOnSegment(NewPoint(1.0001, 0), s, e))
	assert.False(t, IsOnSegment(NewPoint(-0.5, 0), s, e))
	// reversed segment direction
	assert.True(t, IsOnSegment(NewPoint(0.25, 0), e, s))
}

func TestIsWithinStripe(t *testing.T) {
	s, e := NewPoint(1, 0), NewPoint(1, 1)

	assert.True(t, IsWithinStripe(NewPoint(5, 0.5), s, e))
	assert.True(t, IsWithinStripe(NewPoint(-3, 1), s, e))
	assert.False(t, IsWithinStripe(NewPoint(1, 1.5), s, e))
	assert.False(t, IsWithinStripe(NewPoint(5, 5), s, e))

	// zero length segment admits only its own point
	assert.True(t, IsWithinStripe(NewPoint(1, 0), s, s))
	assert.False(t, IsWithinStripe(NewPoint(1.2, 0), s, s))
}

func TestSquaredDistanceToSegment(t *testing.T) {
	s, e := NewPoint(0, 0), NewPoint(1, 0)

	testCases := []struct {
		name string
		p    Point
		want float64
	}{
		{name: "on the segment", p: NewPoint(0.5, 0), want: 0},
		{name: "inside the stripe", p: NewPoint(0.5, 0.2), want: 0.04},
		{name: "outside the stripe past the end uses the end point", p: NewPoint(1.3, 0.4), want: 0.09 + 0.16},
		{name: "outside the stripe before the start uses the start point", p: NewPoint(-2, 0), want: 4},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredDistanceToSegment(tt.p, s, e)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestDistanceInMiles(t *testing.T) {
	// one degree of latitude is sixty nautical miles
	assert.InDelta(t, 60.0, DistanceInMiles(NewPoint(0, 0), NewPoint(1, 0)), 1e-9)
	// one degree of longitude shrinks with cos(lat)
	assert.InDelta(t, 60.0*math.Cos(math.Pi/3), DistanceInMiles(NewPoint(60, 0), NewPoint(60, 1)), 0.01)
	assert.Equal(t, 0.0, DistanceInMiles(NewPoint(12, 34), NewPoint(12, 34)))
}

func TestPlanarBearingAndAngleDifference(t *testing.T) {
	assert.InDelta(t, 0.0, PlanarBearing(NewPoint(0, 0), NewPoint(1, 0)), 1e-12)
	assert.InDelta(t, 90.0, PlanarBearing(NewPoint(0, 0), NewPoint(0, 1)), 1e-12)
	assert.InDelta(t, 270.0, PlanarBearing(NewPoint(0, 0), NewPoint(0, -1)), 1e-12)

	assert.InDelta(t, 20.0, AngleDifference(350, 10), 1e-12)
	assert.InDelta(t, 180.0, AngleDifference(0, 180), 1e-12)
	assert.InDelta(t, 0.0, AngleDifference(45, 45), 1e-12)
}

func TestGetDestinationPoint(t *testing.T) {
	// one degree of latitude on the sphere used for destinations
	lat, lon := GetDestinationPoint(0, 0, 0, earthRadiusKM*math.Pi/180)
	assert.InDelta(t, 1.0, lat, 1e-9)
	assert.InDelta(t, 0.0, lon, 1e-9)
}

func TestNewBox(t *testing.T) {
	capetown := NewBox(NewPoint(-33, 17), NewPoint(-35, 19))
	assert.Equal(t, Box{MinLat: -35, MinLon: 17, MaxLat: -33, MaxLon: 19}, capetown)
	assert.Equal(t, [2]float64{17, -35}, capetown.Min())
	assert.Equal(t, [2]float64{19, -33}, capetown.Max())
}

func TestPolyline(t *testing.T) {
	points := []Point{NewPoint(38.5, -120.2), NewPoint(40.7, -120.95), NewPoint(43.252, -126.453)}
	encoded := PolylineFromPoints(points)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := PointsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range points {
		assert.InDelta(t, points[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, points[i].Lon, decoded[i].Lon, 1e-5)
	}
}

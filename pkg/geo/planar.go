package geo

import "math"

// Distance. planar distance in degrees
func Distance(a, b Point) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}

func SquaredDistance(a, b Point) float64 {
	dLat := b.Lat - a.Lat
	dLon := b.Lon - a.Lon
	return dLat*dLat + dLon*dLon
}

func MidPointPlanar(a, b Point) Point {
	return NewPoint((a.Lat+b.Lat)/2, (a.Lon+b.Lon)/2)
}

// ProjectPerpendicular. foot of the perpendicular from p onto the infinite line through (segStart, segEnd).
// a degenerate segment (segStart == segEnd) projects every point onto segStart.
func ProjectPerpendicular(p, segStart, segEnd Point) Point {
	dLat := segEnd.Lat - segStart.Lat
	dLon := segEnd.Lon - segStart.Lon
	normSq := dLat*dLat + dLon*dLon
	if normSq <= EPS*EPS {
		return segStart
	}

	t := ((p.Lat-segStart.Lat)*dLat + (p.Lon-segStart.Lon)*dLon) / normSq
	return NewPoint(segStart.Lat+t*dLat, segStart.Lon+t*dLon)
}

// IsOnSegment. inclusive bounding test of a point already lying on the segment line.
func IsOnSegment(projected, segStart, segEnd Point) bool {
	minLat, maxLat := math.Min(segStart.Lat, segEnd.Lat), math.Max(segStart.Lat, segEnd.Lat)
	minLon, maxLon := math.Min(segStart.Lon, segEnd.Lon), math.Max(segStart.Lon, segEnd.Lon)
	return Ge(projected.Lat, minLat) && Le(projected.Lat, maxLat) &&
		Ge(projected.Lon, minLon) && Le(projected.Lon, maxLon)
}

// IsWithinStripe. true if the perpendicular projection of p falls within the finite segment.
// the stripe of a degenerate segment only contains the segment point itself.
func IsWithinStripe(p, segStart, segEnd Point) bool {
	if segStart.Equal(segEnd) {
		return p.Equal(segStart)
	}
	return IsOnSegment(ProjectPerpendicular(p, segStart, segEnd), segStart, segEnd)
}

// SquaredDistanceToSegment. squared perpendicular distance when p lies within the segment stripe,
// otherwise squared distance to the nearer endpoint.
func SquaredDistanceToSegment(p, segStart, segEnd Point) float64 {
	if IsWithinStripe(p, segStart, segEnd) {
		return SquaredDistance(p, ProjectPerpendicular(p, segStart, segEnd))
	}
	return math.Min(SquaredDistance(p, segStart), SquaredDistance(p, segEnd))
}

// PlanarBearing. direction from a to b in degree space, [0, 360), 0 = north, 90 = east
func PlanarBearing(a, b Point) float64 {
	brng := math.Atan2(b.Lon-a.Lon, b.Lat-a.Lat) * 180.0 / math.Pi
	return math.Mod(brng+360, 360.0)
}

// AngleDifference. smallest absolute difference between two bearings, [0, 180]
func AngleDifference(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360.0)
	if d > 180 {
		d = 360 - d
	}
	return d
}

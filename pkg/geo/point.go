package geo

import (
	"fmt"
	"math"
)

const (
	EPS = 1e-9
)

// Point. latitude & longitude in degrees. Planar operations treat (lat, lon) as (y, x) in degree space.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewPoint(lat, lon float64) Point {
	return Point{
		Lat: lat,
		Lon: lon,
	}
}

func NewPoints(lat, lon []float64) []Point {
	ps := make([]Point, len(lat))
	for i := range lat {
		ps[i] = NewPoint(lat[i], lon[i])
	}
	return ps
}

// Translate. returns p moved by (dLat, dLon) degrees
func (p Point) Translate(dLat, dLon float64) Point {
	return NewPoint(p.Lat+dLat, p.Lon+dLon)
}

func (p Point) Equal(q Point) bool {
	return eq(p.Lat, q.Lat) && eq(p.Lon, q.Lon)
}

func (p Point) IsFinite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", p.Lat, p.Lon)
}

// equal operator
func eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

// less than or equal operator
func Le(a, b float64) bool {
	return a <= b+EPS
}

// greater than or equal than operator
func Ge(a, b float64) bool {
	return Le(b, a)
}

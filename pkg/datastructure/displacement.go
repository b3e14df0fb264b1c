package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
)

// Displacement. directed step in degree space
type Displacement struct {
	dLat, dLon float64
}

func NewDisplacement(dLat, dLon float64) Displacement {
	return Displacement{
		dLat: dLat,
		dLon: dLon,
	}
}

// NewPolarDisplacement. step of length degrees towards bearing (0 = north, 90 = east)
func NewPolarDisplacement(length, bearing float64) Displacement {
	rad := util.DegreeToRadians(bearing)
	return NewDisplacement(length*math.Cos(rad), length*math.Sin(rad))
}

// DisplacementBetween. the step that takes a to b
func DisplacementBetween(a, b geo.Point) Displacement {
	return NewDisplacement(b.Lat-a.Lat, b.Lon-a.Lon)
}

func (d Displacement) DLat() float64 {
	return d.dLat
}

func (d Displacement) DLon() float64 {
	return d.dLon
}

func (d Displacement) ApplyTo(p geo.Point) geo.Point {
	return p.Translate(d.dLat, d.dLon)
}

// Length. planar length in degrees
func (d Displacement) Length() float64 {
	return math.Hypot(d.dLat, d.dLon)
}

func (d Displacement) Bearing() float64 {
	return geo.PlanarBearing(geo.NewPoint(0, 0), geo.NewPoint(d.dLat, d.dLon))
}

func (d Displacement) Scale(factor float64) Displacement {
	return NewDisplacement(d.dLat*factor, d.dLon*factor)
}

func (d Displacement) IsZero() bool {
	return d.dLat == 0 && d.dLon == 0
}

func (d Displacement) IsFinite() bool {
	return util.IsFinite(d.dLat) && util.IsFinite(d.dLon)
}

func (d Displacement) String() string {
	return fmt.Sprintf("[dlat=%.5f dlon=%.5f]", d.dLat, d.dLon)
}

// DisplacementSequence. ordered, append-only list of steps
type DisplacementSequence struct {
	steps []Displacement
}

func NewDisplacementSequence(steps ...Displacement) *DisplacementSequence {
	ds := &DisplacementSequence{steps: make([]Displacement, 0, len(steps))}
	ds.steps = append(ds.steps, steps...)
	return ds
}

func (ds *DisplacementSequence) Add(d Displacement) {
	ds.steps = append(ds.steps, d)
}

func (ds *DisplacementSequence) Len() int {
	return len(ds.steps)
}

func (ds *DisplacementSequence) At(i int) Displacement {
	return ds.steps[i]
}

// Steps. read-only view
func (ds *DisplacementSequence) Steps() []Displacement {
	return ds.steps
}

// Scale. new sequence with every step multiplied by factor
func (ds *DisplacementSequence) Scale(factor float64) *DisplacementSequence {
	scaled := &DisplacementSequence{steps: make([]Displacement, len(ds.steps))}
	for i, d := range ds.steps {
		scaled.steps[i] = d.Scale(factor)
	}
	return scaled
}

func (ds *DisplacementSequence) String() string {
	s := fmt.Sprintf("DisplacementSequence (%d):", len(ds.steps))
	for _, d := range ds.steps {
		s += " " + d.String()
	}
	return s
}

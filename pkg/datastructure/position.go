package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/evotrack/pkg/geo"
)

const (
	NoIndex = -1
)

// Position. a located & timestamped vessel report. immutable once built.
type Position struct {
	point geo.Point
	ts    Timestamp
	index int
}

func NewPosition(p geo.Point, ts Timestamp) Position {
	return Position{
		point: p,
		ts:    ts,
		index: NoIndex,
	}
}

func NewIndexedPosition(p geo.Point, ts Timestamp, index int) Position {
	return Position{
		point: p,
		ts:    ts,
		index: index,
	}
}

func (p Position) Point() geo.Point {
	return p.point
}

func (p Position) Lat() float64 {
	return p.point.Lat
}

func (p Position) Lon() float64 {
	return p.point.Lon
}

func (p Position) Timestamp() Timestamp {
	return p.ts
}

// Index. sequence index within its track, NoIndex if not set
func (p Position) Index() int {
	return p.index
}

func (p Position) HasIndex() bool {
	return p.index != NoIndex
}

func (p Position) String() string {
	if p.HasIndex() {
		return fmt.Sprintf("#%d %s @%s", p.index, p.point, p.ts)
	}
	return fmt.Sprintf("%s @%s", p.point, p.ts)
}

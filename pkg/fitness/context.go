package fitness

import (
	"slices"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/util"
)

/*
Context. training data shared by every evaluation: time-ordered target positions, the start
position of reconstructed tracks and the reference speed. built once before evaluation starts and
read-only afterwards, so it can be used from any number of goroutines.
*/
type Context struct {
	targets        []datastructure.Position
	start          datastructure.Position
	referenceSpeed float64
}

// NewContext. the start position is the first target moved startOffsetLat degrees north
func NewContext(targets []datastructure.Position, startOffsetLat, referenceSpeed float64) (*Context, error) {
	if len(targets) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrData, "training target list is empty")
	}
	first := targets[0]
	start := datastructure.NewPosition(first.Point().Translate(startOffsetLat, 0), first.Timestamp())
	return NewContextWithStart(targets, start, referenceSpeed)
}

func NewContextWithStart(targets []datastructure.Position, start datastructure.Position,
	referenceSpeed float64) (*Context, error) {
	if len(targets) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrData, "training target list is empty")
	}
	if !start.Point().IsFinite() {
		return nil, util.WrapErrorf(nil, util.ErrData, "invalid start position %s", start)
	}
	for i := 1; i < len(targets); i++ {
		if targets[i].Timestamp().Before(targets[i-1].Timestamp()) {
			return nil, util.WrapErrorf(nil, util.ErrData, "training targets are not time ordered at %d", i)
		}
	}
	if !util.IsFinite(referenceSpeed) || referenceSpeed <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrConfiguration, "invalid reference speed %v knots", referenceSpeed)
	}
	return &Context{
		targets:        slices.Clone(targets),
		start:          start,
		referenceSpeed: referenceSpeed,
	}, nil
}

// Targets. copy of the training targets
func (c *Context) Targets() []datastructure.Position {
	return slices.Clone(c.targets)
}

func (c *Context) NumTargets() int {
	return len(c.targets)
}

func (c *Context) Start() datastructure.Position {
	return c.start
}

func (c *Context) ReferenceSpeed() float64 {
	return c.referenceSpeed
}

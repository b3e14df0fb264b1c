package spatialindex

import (
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[PositionRef]
}

// PositionRef. a position indexed by the r-tree: the track it belongs to and its place in that track
type PositionRef struct {
	track    int
	position int
}

func (pr PositionRef) GetTrack() int {
	return pr.track
}

func (pr PositionRef) GetPosition() int {
	return pr.position
}

func newPositionRef(track, position int) PositionRef {
	return PositionRef{
		track:    track,
		position: position,
	}
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[PositionRef]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every position of every track as a point leaf
func (rt *Rtree) Build(tracks []*datastructure.Track, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("tracks", len(tracks)))
	n := 0
	for t, track := range tracks {
		for i, pos := range track.Positions() {
			pt := [2]float64{pos.Lon(), pos.Lat()}
			rt.tr.Insert(pt, pt, newPositionRef(t, i))
			n++
		}
	}

	log.Info("R-tree spatial index built.", zap.Int("positions", n))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchBox. all indexed positions inside box, borders included
func (rt *Rtree) SearchBox(box geo.Box) []PositionRef {
	results := make([]PositionRef, 0, 16)
	rt.tr.Search(box.Min(), box.Max(),
		func(min, max [2]float64, data PositionRef) bool {
			results = append(results, data)
			return true
		})
	return results
}

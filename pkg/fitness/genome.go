package fitness

import (
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"golang.org/x/exp/rand"
)

// Genome. ordered genes encoding the spatial path of one candidate track
type Genome []Gene

// NewGenome. genome of the given steps, e.g. the displacements of an observed track
func NewGenome(steps *datastructure.DisplacementSequence) (Genome, error) {
	genome := make(Genome, 0, steps.Len())
	for i, d := range steps.Steps() {
		gene, err := GeneFromDisplacement(d)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "step %d", i)
		}
		genome = append(genome, gene)
	}
	return genome, nil
}

// GenomeFromPoints. steps between consecutive points of a drawn path; the first point only anchors the steps
func GenomeFromPoints(points []geo.Point) (Genome, error) {
	if len(points) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrConfiguration, "path without points")
	}
	steps := datastructure.NewDisplacementSequence()
	for i := 1; i < len(points); i++ {
		steps.Add(datastructure.DisplacementBetween(points[i-1], points[i]))
	}
	return NewGenome(steps)
}

// RandomGenome. length genes with a uniform bearing and a length in (0, maxStep] degrees
func RandomGenome(rd *rand.Rand, length int, maxStep float64) Genome {
	genome := make(Genome, length)
	for i := range genome {
		d := datastructure.NewPolarDisplacement(maxStep*(1-rd.Float64()), rd.Float64()*360)
		genome[i] = Gene{d: d, valid: true}
	}
	return genome
}

// ToDisplacementSequence. ErrConfiguration naming the first slot without a displacement
func (g Genome) ToDisplacementSequence() (*datastructure.DisplacementSequence, error) {
	ds := datastructure.NewDisplacementSequence()
	for i, gene := range g {
		d, ok := gene.Displacement()
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrConfiguration, "gene %d does not carry a displacement", i)
		}
		ds.Add(d)
	}
	return ds, nil
}

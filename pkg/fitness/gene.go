package fitness

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/util"
)

// Gene. one genome slot; always carries a finite Displacement unless it is the zero Gene
type Gene struct {
	d     datastructure.Displacement
	valid bool
}

func NewGene(dLat, dLon float64) (Gene, error) {
	return GeneFromDisplacement(datastructure.NewDisplacement(dLat, dLon))
}

func GeneFromDisplacement(d datastructure.Displacement) (Gene, error) {
	if !d.IsFinite() {
		return Gene{}, util.WrapErrorf(nil, util.ErrConfiguration, "gene displacement %s is not finite", d)
	}
	return Gene{d: d, valid: true}, nil
}

// Displacement. false for a Gene that was never built through a constructor
func (g Gene) Displacement() (datastructure.Displacement, bool) {
	return g.d, g.valid
}

func (g Gene) String() string {
	if !g.valid {
		return "Gene<empty>"
	}
	return fmt.Sprintf("Gene%s", g.d)
}

type geneJSON struct {
	DLat *float64 `json:"dlat" validate:"required"`
	DLon *float64 `json:"dlon" validate:"required"`
}

var geneValidate = validator.New()

func (g Gene) MarshalJSON() ([]byte, error) {
	if !g.valid {
		return nil, util.WrapErrorf(nil, util.ErrConfiguration, "cannot encode an empty gene")
	}
	dLat, dLon := g.d.DLat(), g.d.DLon()
	return json.Marshal(geneJSON{DLat: &dLat, DLon: &dLon})
}

// UnmarshalJSON. both dlat and dlon are required
func (g *Gene) UnmarshalJSON(data []byte) error {
	var raw geneJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "gene is not a displacement object")
	}
	if err := geneValidate.Struct(raw); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "gene is missing its displacement")
	}
	gene, err := NewGene(*raw.DLat, *raw.DLon)
	if err != nil {
		return err
	}
	*g = gene
	return nil
}

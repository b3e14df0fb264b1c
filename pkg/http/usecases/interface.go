package usecases

import (
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/fitness"
	"github.com/lintang-b-s/evotrack/pkg/trackerror"
)

type Evaluator interface {
	Context() *fitness.Context
	ReconstructTrack(genome fitness.Genome) (*datastructure.Track, error)
	Score(genome fitness.Genome) (float64, *trackerror.TrackError, error)
}

package controllers

import (
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/fitness"
	"github.com/lintang-b-s/evotrack/pkg/trackerror"
)

type TrackService interface {
	ReconstructTrack(genome fitness.Genome) (*datastructure.Track, error)
	Evaluate(genome fitness.Genome) (float64, *trackerror.TrackError, error)
	TrainingTargets() []datastructure.Position
}

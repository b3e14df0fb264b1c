package fitness

import (
	"errors"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/trackerror"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"go.uber.org/zap"
)

// Evaluator. genome -> track -> track error -> fitness. stateless apart from its read-only context.
type Evaluator struct {
	ctx *Context
	agg *trackerror.Aggregator
	log *zap.Logger
}

func NewEvaluator(ctx *Context, weights trackerror.Weights, variant trackerror.SegmentErrorVariant,
	log *zap.Logger) (*Evaluator, error) {
	if ctx == nil {
		return nil, util.WrapErrorf(nil, util.ErrData, "missing training context")
	}
	agg, err := trackerror.NewAggregator(weights, variant)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{
		ctx: ctx,
		agg: agg,
		log: log,
	}, nil
}

func (e *Evaluator) Context() *Context {
	return e.ctx
}

// ReconstructTrack. track of genome from the context start position at the reference speed
func (e *Evaluator) ReconstructTrack(genome Genome) (*datastructure.Track, error) {
	steps, err := genome.ToDisplacementSequence()
	if err != nil {
		return nil, err
	}
	return datastructure.Reconstruct(e.ctx.start, steps, e.ctx.referenceSpeed)
}

// ComputeTrackError. reconstructed track of genome and its error against the training targets
func (e *Evaluator) ComputeTrackError(genome Genome) (*datastructure.Track, *trackerror.TrackError, error) {
	track, err := e.ReconstructTrack(genome)
	if err != nil {
		return nil, nil, err
	}
	te, err := trackerror.Compute(track, e.ctx.targets)
	if err != nil {
		return nil, nil, err
	}
	return track, te, nil
}

// Score. fitness of genome, -(weighted error)
func (e *Evaluator) Score(genome Genome) (float64, *trackerror.TrackError, error) {
	_, te, err := e.ComputeTrackError(genome)
	if err != nil {
		return 0, nil, err
	}
	return -e.agg.Combine(te), te, nil
}

/*
Evaluate. score ind once. an individual already marked evaluated keeps its fitness.
errors are fatal for the run: they carry the candidate id and generation and are never turned
into a poor score.
*/
func (e *Evaluator) Evaluate(ind *Individual) (float64, error) {
	if ind == nil {
		return 0, util.WrapErrorf(nil, util.ErrConfiguration, "nil individual")
	}
	if ind.Fitness == nil {
		err := util.WrapErrorf(nil, util.ErrConfiguration, "individual %s (generation %d) has no fitness container",
			ind.ID, ind.Generation)
		e.log.Error("evaluation aborted", zap.String("id", ind.ID.String()), zap.Int("generation", ind.Generation),
			zap.Error(err))
		return 0, err
	}
	if ind.Evaluated {
		return ind.Fitness.Value, nil
	}

	fitness, te, err := e.Score(ind.Genome)
	if err != nil {
		err = util.WrapErrorf(err, errorCode(err), "evaluating individual %s (generation %d)", ind.ID, ind.Generation)
		e.log.Error("evaluation aborted", zap.String("id", ind.ID.String()), zap.Int("generation", ind.Generation),
			zap.Error(err))
		return 0, err
	}

	ind.Fitness.Value = fitness
	ind.Evaluated = true
	e.log.Debug("individual evaluated", zap.String("id", ind.ID.String()), zap.Int("generation", ind.Generation),
		zap.Float64("fitness", fitness), zap.Float64("coverage", te.CoverageError))
	return fitness, nil
}

// errorCode. code of a coded error, ErrComputation for anything else
func errorCode(err error) error {
	var coded *util.Error
	if errors.As(err, &coded) && coded.Code() != nil {
		return coded.Code()
	}
	return util.ErrComputation
}

package engine

import (
	"context"
	"io"

	"github.com/lintang-b-s/evotrack/pkg/config"
	"github.com/lintang-b-s/evotrack/pkg/fitness"
	"github.com/lintang-b-s/evotrack/pkg/source"
	"go.uber.org/zap"
)

// Engine. the fitness function ready for use: training data loaded, context frozen, evaluator built
type Engine struct {
	training  *source.TrainingSet
	evaluator *fitness.Evaluator
}

func (e *Engine) GetEvaluator() *fitness.Evaluator {
	return e.evaluator
}

func (e *Engine) GetTrainingSet() *source.TrainingSet {
	return e.training
}

func NewEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	src, err := source.New(cfg.Source, logger)
	if err != nil {
		return nil, err
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}
	return NewEngineFromSource(ctx, cfg, src, logger)
}

func NewEngineFromSource(ctx context.Context, cfg *config.Config, src source.PositionSource,
	logger *zap.Logger) (*Engine, error) {

	logger.Info("Starting track fitness engine...")

	logger.Info("Reading training positions", zap.String("source", src.Name()))
	training, err := source.BuildTrainingSet(ctx, src, cfg.Source, cfg.ReferenceSpeedKnots, logger)
	if err != nil {
		return nil, err
	}

	fctx, err := fitness.NewContext(training.Targets, cfg.StartOffsetLat, cfg.ReferenceSpeedKnots)
	if err != nil {
		return nil, err
	}
	logger.Info("Training context initialized", zap.Int("targets", fctx.NumTargets()),
		zap.Int("voyages", len(training.Voyages)), zap.String("start", fctx.Start().String()),
		zap.Float64("reference_speed_knots", fctx.ReferenceSpeed()))

	evaluator, err := fitness.NewEvaluator(fctx, cfg.Weights, cfg.SegmentErrorVariant(), logger)
	if err != nil {
		return nil, err
	}
	return &Engine{
		training:  training,
		evaluator: evaluator,
	}, nil
}

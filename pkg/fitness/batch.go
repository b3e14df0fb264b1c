package fitness

import (
	"context"

	"github.com/lintang-b-s/evotrack/pkg/concurrent"
	"go.uber.org/zap"
)

// EvaluateAll. evaluate every individual on workers goroutines; the first error stops the batch
func (e *Evaluator) EvaluateAll(ctx context.Context, inds []*Individual, workers int) error {
	wp := concurrent.NewWorkerPool[*Individual, float64](ctx, workers, len(inds))
	wp.Start(e.Evaluate)

	for _, ind := range inds {
		if !wp.AddJob(ind) {
			break
		}
	}
	wp.Close()

	if err := wp.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.log.Info("batch evaluated", zap.Int("individuals", len(inds)), zap.Int("workers", workers))
	return nil
}

// Best. evaluated individual with the highest fitness, nil if none is evaluated
func Best(inds []*Individual) *Individual {
	var best *Individual
	for _, ind := range inds {
		if ind == nil || !ind.Evaluated || ind.Fitness == nil {
			continue
		}
		if best == nil || ind.Fitness.Value > best.Fitness.Value {
			best = ind
		}
	}
	return best
}

package main

import (
	"context"
	"flag"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/config"
	"github.com/lintang-b-s/evotrack/pkg/engine"
	"github.com/lintang-b-s/evotrack/pkg/fitness"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/logger"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	configPath  = flag.String("config", "", "config file; ./data/config.yaml when empty")
	generations = flag.Int("generations", 1, "number of random populations to score")
)

// sampler. scores random populations against the training targets and reports the fittest track
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	ctx := context.Background()

	fitnessEngine, err := engine.NewEngine(ctx, cfg, logger)
	if err != nil {
		panic(err)
	}
	evaluator := fitnessEngine.GetEvaluator()

	rd := rand.New(rand.NewSource(cfg.Evaluation.Seed))
	var best *fitness.Individual
	for gen := 0; gen < *generations; gen++ {
		population := make([]*fitness.Individual, cfg.Evaluation.Population)
		for i := range population {
			genome := fitness.RandomGenome(rd, cfg.Evaluation.GenomeLength, cfg.Evaluation.MaxStep)
			population[i] = fitness.NewIndividual(genome, gen)
		}

		start := time.Now()
		if err := evaluator.EvaluateAll(ctx, population, cfg.Evaluation.Workers); err != nil {
			panic(err)
		}
		genBest := fitness.Best(population)
		logger.Info("generation scored", zap.Int("generation", gen), zap.Int("population", len(population)),
			zap.Float64("best_fitness", genBest.Fitness.Value), zap.Duration("took", time.Since(start)))

		if best == nil || genBest.Fitness.Value > best.Fitness.Value {
			best = genBest
		}
	}
	if best == nil {
		logger.Info("nothing sampled")
		return
	}

	track, te, err := evaluator.ComputeTrackError(best.Genome)
	if err != nil {
		panic(err)
	}
	points := make([]geo.Point, 0, track.Len())
	for _, pos := range track.Positions() {
		points = append(points, pos.Point())
	}
	logger.Info("best individual", zap.String("individual", best.String()),
		zap.Any("errors", te.Metrics(cfg.SegmentErrorVariant())),
		zap.Int("assigned", te.Assigned), zap.Int("unassigned", te.Unassigned),
		zap.Float64("length_nm", util.RoundFloat(track.LengthInMiles(), 2)),
		zap.String("polyline", geo.PolylineFromPoints(points)))
	logger.Sugar().Infof("best track error: %s", te)
}

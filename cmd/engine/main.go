package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/evotrack/pkg/config"
	"github.com/lintang-b-s/evotrack/pkg/engine"
	"github.com/lintang-b-s/evotrack/pkg/http"
	"github.com/lintang-b-s/evotrack/pkg/http/usecases"
	"github.com/lintang-b-s/evotrack/pkg/logger"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "config file; ./data/config.yaml when empty")
	rateLimit  = flag.Bool("rate_limit", false, "rate limit the api (overrides api.rate_limit when set)")
)

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
	if *rateLimit {
		cfg.API.RateLimit = true
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	fitnessEngine, err := engine.NewEngine(ctx, cfg, logger)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	trackService, err := usecases.NewTrackService(logger, fitnessEngine.GetEvaluator(), cfg.API.CacheSize)
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, cfg.API, trackService)

	signal := http.GracefulShutdown()

	logger.Info("Evotrack Track Fitness Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

package main

import (
	"context"
	"flag"
	"io"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/config"
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/logger"
	"github.com/lintang-b-s/evotrack/pkg/source"
	"go.uber.org/zap"
)

var (
	configPath  = flag.String("config", "", "config file; ./data/config.yaml when empty")
	voyagesOut  = flag.String("voyages", "./data/voyages.csv.bz2", "output file for the mined voyages")
	targetsOut  = flag.String("targets", "./data/targets.csv", "output file for the merged training targets")
	dbOut       = flag.String("db", "", "sqlite database the voyages are also stored in; skipped when empty")
	defaultArea = flag.Float64("area_radius", 1.0, "half size in degrees of the departure/arrival boxes built from -from/-to")
	fromLat     = flag.Float64("from_lat", 36.0, "departure area center latitude, used when source.departure is not configured")
	fromLon     = flag.Float64("from_lon", -5.5, "departure area center longitude")
	toLat       = flag.Float64("to_lat", 31.5, "arrival area center latitude, used when source.arrival is not configured")
	toLon       = flag.Float64("to_lon", 32.3, "arrival area center longitude")
)

// miner. cuts voyages between two areas out of the configured position source and saves them as training data
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

	if cfg.Source.Departure == nil || cfg.Source.Arrival == nil {
		dep := geo.NewBox(geo.NewPoint(*fromLat+*defaultArea, *fromLon-*defaultArea),
			geo.NewPoint(*fromLat-*defaultArea, *fromLon+*defaultArea))
		arr := geo.NewBox(geo.NewPoint(*toLat+*defaultArea, *toLon-*defaultArea),
			geo.NewPoint(*toLat-*defaultArea, *toLon+*defaultArea))
		cfg.Source.Departure, cfg.Source.Arrival = &dep, &arr
	}

	src, err := source.New(cfg.Source, logger)
	if err != nil {
		panic(err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}

	start := time.Now()
	training, err := source.BuildTrainingSet(ctx, src, cfg.Source, cfg.ReferenceSpeedKnots, logger)
	if err != nil {
		panic(err)
	}
	logger.Info("voyages mined", zap.Int("voyages", len(training.Voyages)), zap.Int("targets", len(training.Targets)),
		zap.String("departure", cfg.Source.Departure.String()), zap.String("arrival", cfg.Source.Arrival.String()),
		zap.Float64("avg_length_nm", source.AverageLengthInMiles(training.Voyages)),
		zap.Duration("took", time.Since(start)))

	if err := source.WriteCSV(*voyagesOut, training.Voyages...); err != nil {
		panic(err)
	}

	targets, err := datastructure.NewTrack("targets", training.Targets)
	if err != nil {
		panic(err)
	}
	if err := source.WriteCSV(*targetsOut, targets); err != nil {
		panic(err)
	}

	if *dbOut != "" {
		db, err := source.OpenDBSource(*dbOut, logger)
		if err != nil {
			panic(err)
		}
		defer db.Close()
		if err := db.InsertTracks(ctx, training.Voyages...); err != nil {
			panic(err)
		}
	}

	logger.Sugar().Infof("Mining completed successfully.")
}

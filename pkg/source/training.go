package source

import (
	"context"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"go.uber.org/zap"
)

// TrainingSet. the voyages the targets come from, and the targets: their positions merged by time
type TrainingSet struct {
	Voyages []*datastructure.Track
	Targets []datastructure.Position
}

/*
BuildTrainingSet. load tracks from src, keep the voyages between the configured areas (when both are
set), move them to a common reference start and speed (when normalize_time is on) and merge them.
*/
func BuildTrainingSet(ctx context.Context, src PositionSource, cfg Config, referenceSpeed float64,
	log *zap.Logger) (*TrainingSet, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tracks, err := src.Tracks(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("tracks loaded", zap.String("source", src.Name()), zap.Int("tracks", len(tracks)))

	if cfg.Departure != nil && cfg.Arrival != nil {
		period, err := ParseYearPeriod(cfg.YearPeriod)
		if err != nil {
			return nil, err
		}
		miner := NewVoyageMiner(*cfg.Departure, *cfg.Arrival, period,
			time.Duration(cfg.MaxVoyageDays)*24*time.Hour, cfg.MaxVessels, log)
		tracks = miner.Mine(tracks)
		log.Info("average voyage length", zap.Float64("length_nm", AverageLengthInMiles(tracks)))
	}

	if cfg.NormalizeTime {
		refStart, err := time.Parse(ReferenceStartLayout, cfg.ReferenceStart)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "invalid reference start %q", cfg.ReferenceStart)
		}
		for i, track := range tracks {
			tracks[i], err = track.NormalizeTime(datastructure.NewTimestamp(refStart), referenceSpeed)
			if err != nil {
				return nil, err
			}
		}
	}

	targets := datastructure.MergeByTime(tracks...)
	if len(targets) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrData, "no training positions from %s", src.Name())
	}
	return &TrainingSet{
		Voyages: tracks,
		Targets: targets,
	}, nil
}

package source

import (
	"context"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"go.uber.org/zap"
)

// PositionSource. provider of observed vessel tracks, one track per vessel, time ordered
type PositionSource interface {
	Name() string
	Tracks(ctx context.Context) ([]*datastructure.Track, error)
}

type Kind string

const (
	SYNTHETIC Kind = "synthetic"
	FILE      Kind = "file"
	DATABASE  Kind = "database"
)

const ReferenceStartLayout = time.RFC3339

type Config struct {
	Kind     Kind   `mapstructure:"kind" validate:"required,oneof=synthetic file database"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Kind file"`
	DBPath   string `mapstructure:"db_path" validate:"required_if=Kind database"`

	// voyage mining, enabled when both boxes are set
	YearPeriod    string   `mapstructure:"year_period" validate:"omitempty,oneof=WINTER SPRING SUMMER AUTUMN"`
	Departure     *geo.Box `mapstructure:"departure"`
	Arrival       *geo.Box `mapstructure:"arrival"`
	MaxVoyageDays int      `mapstructure:"max_voyage_days" validate:"gte=0"`
	MaxVessels    int      `mapstructure:"max_vessels" validate:"gte=0"`

	NormalizeTime  bool   `mapstructure:"normalize_time"`
	ReferenceStart string `mapstructure:"reference_start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`

	SyntheticVessels int     `mapstructure:"synthetic_vessels" validate:"gte=1"`
	SyntheticNoiseKm float64 `mapstructure:"synthetic_noise_km" validate:"gte=0"`
	Seed             uint64  `mapstructure:"seed"`
}

// New. position source of the configured kind
func New(cfg Config, log *zap.Logger) (PositionSource, error) {
	switch cfg.Kind {
	case SYNTHETIC:
		return NewSyntheticSource(DefaultWaypoints(), cfg.SyntheticVessels, cfg.SyntheticNoiseKm, cfg.Seed), nil
	case FILE:
		return NewFileSource(cfg.FilePath), nil
	case DATABASE:
		return OpenDBSource(cfg.DBPath, log)
	}
	return nil, util.WrapErrorf(nil, util.ErrConfiguration, "unknown position source kind %q", cfg.Kind)
}

package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/evotrack/pkg/source"
	"github.com/lintang-b-s/evotrack/pkg/trackerror"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"github.com/spf13/viper"
)

const envPrefix = "EVOTRACK"

type Config struct {
	ReferenceSpeedKnots float64            `mapstructure:"reference_speed_knots" validate:"gt=0"`
	StartOffsetLat      float64            `mapstructure:"start_offset_lat" validate:"gte=-10,lte=10"`
	SegmentError        string             `mapstructure:"segment_error" validate:"oneof=total average"`
	Weights             trackerror.Weights `mapstructure:"weights"`
	Source              source.Config      `mapstructure:"source"`
	Evaluation          EvaluationConfig   `mapstructure:"evaluation"`
	API                 APIConfig          `mapstructure:"api"`
}

type EvaluationConfig struct {
	Workers      int     `mapstructure:"workers" validate:"gte=1"`
	Population   int     `mapstructure:"population" validate:"gte=1"`
	GenomeLength int     `mapstructure:"genome_length" validate:"gte=1"`
	MaxStep      float64 `mapstructure:"max_step" validate:"gt=0"` // degrees
	Seed         uint64  `mapstructure:"seed"`
}

type APIConfig struct {
	Port      int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit bool          `mapstructure:"rate_limit"`
	CacheSize int           `mapstructure:"cache_size" validate:"gte=1"` // evaluations kept by the track service
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reference_speed_knots", 10.0)
	v.SetDefault("start_offset_lat", 0.1)
	v.SetDefault("segment_error", "total")

	w := trackerror.DefaultWeights()
	v.SetDefault("weights.coverage", w.Coverage)
	v.SetDefault("weights.segment", w.Segment)
	v.SetDefault("weights.heading", w.Heading)
	v.SetDefault("weights.destination", w.Destination)

	v.SetDefault("source.kind", string(source.SYNTHETIC))
	v.SetDefault("source.file_path", "")
	v.SetDefault("source.db_path", "")
	v.SetDefault("source.year_period", "")
	v.SetDefault("source.max_voyage_days", 10)
	v.SetDefault("source.max_vessels", 0)
	v.SetDefault("source.normalize_time", true)
	v.SetDefault("source.reference_start", "2000-01-03T00:00:00Z")
	v.SetDefault("source.synthetic_vessels", 3)
	v.SetDefault("source.synthetic_noise_km", 5.0)
	v.SetDefault("source.seed", 1)

	v.SetDefault("evaluation.workers", runtime.NumCPU())
	v.SetDefault("evaluation.population", 200)
	v.SetDefault("evaluation.genome_length", 20)
	v.SetDefault("evaluation.max_step", 1.0)
	v.SetDefault("evaluation.seed", 42)

	v.SetDefault("api.port", 6060)
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.rate_limit", false)
	v.SetDefault("api.cache_size", 1024)
}

/*
Load. read the configuration. path names a config file; when empty, config.yaml is looked up in ./data/
and defaults are used if it does not exist. every key can be overridden by an EVOTRACK_ prefixed
environment variable, e.g. EVOTRACK_WEIGHTS_SEGMENT or EVOTRACK_API_PORT.
*/
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./data/")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "fatal error config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "invalid config: %s", describe(err))
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if (c.Source.Departure == nil) != (c.Source.Arrival == nil) {
		return util.WrapErrorf(nil, util.ErrConfiguration, "invalid config: source.departure and source.arrival go together")
	}
	return nil
}

// SegmentErrorVariant. parsed segment_error
func (c *Config) SegmentErrorVariant() trackerror.SegmentErrorVariant {
	v, _ := trackerror.ParseSegmentErrorVariant(c.SegmentError)
	return v
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}

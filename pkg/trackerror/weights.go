package trackerror

import (
	"github.com/lintang-b-s/evotrack/pkg/util"
)

// Weights. contribution of each metric to the scalar error
type Weights struct {
	Coverage    float64 `mapstructure:"coverage" json:"coverage" validate:"gte=0"`
	Segment     float64 `mapstructure:"segment" json:"segment" validate:"gte=0"`
	Heading     float64 `mapstructure:"heading" json:"heading" validate:"gte=0"`
	Destination float64 `mapstructure:"destination" json:"destination" validate:"gte=0"`
}

// DefaultWeights. coverage only
func DefaultWeights() Weights {
	return Weights{Coverage: 1}
}

func (w Weights) Of(m Metric) float64 {
	switch m {
	case COVERAGE:
		return w.Coverage
	case SEGMENT:
		return w.Segment
	case HEADING:
		return w.Heading
	case DESTINATION:
		return w.Destination
	}
	return 0
}

func (w Weights) Validate() error {
	sum := 0.0
	for _, m := range AllMetrics {
		v := w.Of(m)
		if !util.IsFinite(v) || v < 0 {
			return util.WrapErrorf(nil, util.ErrConfiguration, "weight of %s must be a non-negative number, got %v", m, v)
		}
		sum += v
	}
	if sum == 0 {
		return util.WrapErrorf(nil, util.ErrConfiguration, "at least one metric weight must be positive")
	}
	return nil
}

// Aggregator. weighted sum of the track error metrics
type Aggregator struct {
	Weights      Weights
	SegmentError SegmentErrorVariant
}

func NewAggregator(w Weights, variant SegmentErrorVariant) (*Aggregator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{Weights: w, SegmentError: variant}, nil
}

// Combine. non-negative scalar error; metrics with zero weight are skipped
func (a *Aggregator) Combine(te *TrackError) float64 {
	var total float64
	for _, m := range AllMetrics {
		w := a.Weights.Of(m)
		if w == 0 {
			continue
		}
		total += w * te.Value(m, a.SegmentError)
	}
	return total
}

package trackerror

import (
	"strings"

	"github.com/lintang-b-s/evotrack/pkg/util"
)

// Metric. one independently computed term of a TrackError
type Metric uint8

const (
	COVERAGE Metric = iota
	SEGMENT
	HEADING
	DESTINATION
)

var AllMetrics = []Metric{COVERAGE, SEGMENT, HEADING, DESTINATION}

func (m Metric) String() string {
	switch m {
	case COVERAGE:
		return "coverage"
	case SEGMENT:
		return "segment"
	case HEADING:
		return "heading"
	case DESTINATION:
		return "destination"
	}
	return "unknown"
}

// SegmentErrorVariant. how per-segment average squared distances are folded into one value
type SegmentErrorVariant uint8

const (
	TOTAL_SEGMENT_ERROR   SegmentErrorVariant = iota // sum of segment averages
	AVERAGE_SEGMENT_ERROR                            // sum divided by segment count
)

func (v SegmentErrorVariant) String() string {
	if v == AVERAGE_SEGMENT_ERROR {
		return "average"
	}
	return "total"
}

func ParseSegmentErrorVariant(s string) (SegmentErrorVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total":
		return TOTAL_SEGMENT_ERROR, nil
	case "average":
		return AVERAGE_SEGMENT_ERROR, nil
	}
	return 0, util.WrapErrorf(nil, util.ErrConfiguration, "unknown segment error variant %q", s)
}

package source

import (
	"strings"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/util"
)

// YearPeriod. meteorological season of the northern hemisphere
type YearPeriod uint8

const (
	ANY_PERIOD YearPeriod = iota
	WINTER
	SPRING
	SUMMER
	AUTUMN
)

func ParseYearPeriod(s string) (YearPeriod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return ANY_PERIOD, nil
	case "WINTER":
		return WINTER, nil
	case "SPRING":
		return SPRING, nil
	case "SUMMER":
		return SUMMER, nil
	case "AUTUMN":
		return AUTUMN, nil
	}
	return ANY_PERIOD, util.WrapErrorf(nil, util.ErrConfiguration, "unknown year period %q", s)
}

func (yp YearPeriod) String() string {
	switch yp {
	case WINTER:
		return "WINTER"
	case SPRING:
		return "SPRING"
	case SUMMER:
		return "SUMMER"
	case AUTUMN:
		return "AUTUMN"
	}
	return "ANY"
}

// Contains. true if ts falls in the period; december counts as winter
func (yp YearPeriod) Contains(ts datastructure.Timestamp) bool {
	if yp == ANY_PERIOD {
		return true
	}
	switch ts.Time().Month() {
	case time.December, time.January, time.February:
		return yp == WINTER
	case time.March, time.April, time.May:
		return yp == SPRING
	case time.June, time.July, time.August:
		return yp == SUMMER
	default:
		return yp == AUTUMN
	}
}

package shared

import (
	"fmt"
	"strconv"
)

// Timeframe represents the market data time period.
type Timeframe int

const (
	OneDay Timeframe = iota
	OneWeek
	OneHour
	FiveMinute
)

// String stringifies the provided timeframe.
func (t Timeframe) String() string {
	switch t {
	case OneDay:
		return "1d"
	case OneWeek:
		return "1wk"
	case OneHour:
		return "1h"
	case FiveMinute:
		return "5m"
	default:
		return "unknown"
	}
}

// ParseTimeframe parses a timeframe from its string form.
func ParseTimeframe(timeframe string) (Timeframe, error) {
	switch timeframe {
	case "1d":
		return OneDay, nil
	case "1wk":
		return OneWeek, nil
	case "1h":
		return OneHour, nil
	case "5m":
		return FiveMinute, nil
	default:
		return 0, fmt.Errorf("no timeframe matches '%s'", timeframe)
	}
}

// MarshalJSON encodes the timeframe in its string form.
func (t Timeframe) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON decodes the timeframe from its string form.
func (t *Timeframe) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("unquoting timeframe: %v", err)
	}

	timeframe, err := ParseTimeframe(unquoted)
	if err != nil {
		return err
	}

	*t = timeframe
	return nil
}

// MarketKey generates the lookup key for the provided market and timeframe.
func MarketKey(market string, timeframe Timeframe) string {
	return fmt.Sprintf("%s:%s", market, timeframe.String())
}

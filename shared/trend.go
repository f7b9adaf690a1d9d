package shared

import (
	"fmt"
	"strconv"
)

// Trend represents the overall direction of a wave sequence.
type Trend int

const (
	Neutral Trend = iota
	Bullish
	Bearish
)

// String stringifies the provided trend.
func (t Trend) String() string {
	switch t {
	case Neutral:
		return "neutral"
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the trend in its string form.
func (t Trend) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON decodes the trend from its string form.
func (t *Trend) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("unquoting trend: %v", err)
	}

	switch unquoted {
	case "neutral":
		*t = Neutral
	case "bullish":
		*t = Bullish
	case "bearish":
		*t = Bearish
	default:
		return fmt.Errorf("no trend matches '%s'", unquoted)
	}

	return nil
}

package shared

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tidwall/gjson"
)

// ErrInvalidInput flags input the engine cannot produce a meaningful
// analysis from, like a bars payload whose root is not an array.
var ErrInvalidInput = errors.New("invalid input")

// PriceBar represents a unit OHLCV bar for a market.
type PriceBar struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64

	// Metadata fields.
	Market    string
	Timeframe Timeframe
}

// Time returns the bar timestamp as a utc time.
func (b *PriceBar) Time() time.Time {
	return time.Unix(b.Timestamp, 0).UTC()
}

// ParsePriceBars parses price bars for the provided market from the given
// json entries. Entries missing a timestamp or any ohlc field are counted
// as skipped, never fatal to the batch.
func ParsePriceBars(data []gjson.Result, market string, timeframe Timeframe) ([]PriceBar, int) {
	bars := make([]PriceBar, 0, len(data))

	var skipped int
	for idx := range data {
		entry := data[idx]
		switch {
		case !entry.Get("timestamp").Exists(), !entry.Get("open").Exists(),
			!entry.Get("high").Exists(), !entry.Get("low").Exists(),
			!entry.Get("close").Exists():
			skipped++
			continue
		}

		bars = append(bars, PriceBar{
			Timestamp: entry.Get("timestamp").Int(),
			Open:      entry.Get("open").Float(),
			High:      entry.Get("high").Float(),
			Low:       entry.Get("low").Float(),
			Close:     entry.Get("close").Float(),
			Volume:    entry.Get("volume").Float(),
			Market:    market,
			Timeframe: timeframe,
		})
	}

	return bars, skipped
}

// ParseBarsPayload parses price bars for the provided market from a raw
// json payload. The payload root must be an array of bar objects.
func ParseBarsPayload(payload []byte, market string, timeframe Timeframe) ([]PriceBar, int, error) {
	if !gjson.ValidBytes(payload) {
		return nil, 0, fmt.Errorf("%w: bars payload for %s is not valid json", ErrInvalidInput, market)
	}

	data := gjson.ParseBytes(payload)
	if !data.IsArray() {
		return nil, 0, fmt.Errorf("%w: bars payload for %s is not an array", ErrInvalidInput, market)
	}

	bars, skipped := ParsePriceBars(data.Array(), market, timeframe)

	return bars, skipped, nil
}

// EarliestBar returns the bar with the smallest timestamp in the series,
// scanning the whole series rather than trusting sort order.
func EarliestBar(bars []PriceBar) (PriceBar, bool) {
	if len(bars) == 0 {
		return PriceBar{}, false
	}

	earliest := bars[0]
	for idx := range bars {
		if bars[idx].Timestamp < earliest.Timestamp {
			earliest = bars[idx]
		}
	}

	return earliest, true
}

// EnsureAscending returns the series sorted ascending by timestamp. An
// already sorted series is returned as is, otherwise a sorted copy is
// returned and the input left untouched.
func EnsureAscending(bars []PriceBar) []PriceBar {
	if slices.IsSortedFunc(bars, compareBarTimes) {
		return bars
	}

	clone := slices.Clone(bars)
	slices.SortFunc(clone, compareBarTimes)

	return clone
}

// compareBarTimes orders bars ascending by timestamp.
func compareBarTimes(a PriceBar, b PriceBar) int {
	switch {
	case a.Timestamp < b.Timestamp:
		return -1
	case a.Timestamp > b.Timestamp:
		return 1
	default:
		return 0
	}
}

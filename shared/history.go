package shared

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// MarketHistoryConfig represents the market history source configuration.
type MarketHistoryConfig struct {
	// FilePath is the filepath to the market's historical price data.
	FilePath string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Ensure MarketHistory implements the HistorySource interface.
var _ HistorySource = (*MarketHistory)(nil)

// MarketHistory represents historical price data for a market, loaded from
// a file keyed by timeframe. It is the in process stand in for the
// historical data collaborator.
type MarketHistory struct {
	cfg        *MarketHistoryConfig
	market     string
	bars       map[Timeframe][]PriceBar
	timeframes []Timeframe
}

// loadHistoryPayload loads the history payload from the provided file path.
func loadHistoryPayload(filepath string) (*gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading market history from file with path '%s': %v", filepath, err)
	}

	if !gjson.ValidBytes(readb) {
		return nil, fmt.Errorf("%w: market history file '%s' is not valid json", ErrInvalidInput, filepath)
	}

	b := gjson.ParseBytes(readb)

	return &b, nil
}

// NewMarketHistory initializes a new market history source.
func NewMarketHistory(cfg *MarketHistoryConfig) (*MarketHistory, error) {
	b, err := loadHistoryPayload(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading market history: %v", err)
	}

	market := b.Get("market").String()
	if market == "" {
		return nil, fmt.Errorf("market history file '%s' has no market field", cfg.FilePath)
	}

	history := MarketHistory{
		cfg:    cfg,
		market: market,
		bars:   make(map[Timeframe][]PriceBar),
	}

	timeframes := []Timeframe{OneDay, OneWeek, OneHour, FiveMinute}
	for idx := range timeframes {
		timeframe := timeframes[idx]

		section := b.Get(timeframe.String())
		if !section.Exists() {
			continue
		}

		if !section.IsArray() {
			cfg.Logger.Warn().Msgf("market history section [%s] for %s is not an array, skipping",
				timeframe.String(), market)
			continue
		}

		bars, skipped := ParsePriceBars(section.Array(), market, timeframe)
		if skipped > 0 {
			cfg.Logger.Warn().Msgf("skipped %d malformed bar entries for %s [%s]",
				skipped, market, timeframe.String())
		}

		if len(bars) == 0 {
			continue
		}

		history.bars[timeframe] = EnsureAscending(bars)
		history.timeframes = append(history.timeframes, timeframe)
	}

	if len(history.timeframes) == 0 {
		return nil, fmt.Errorf("market history file '%s' has no price data", cfg.FilePath)
	}

	return &history, nil
}

// FetchMarket returns the market the history covers.
func (h *MarketHistory) FetchMarket() string {
	return h.market
}

// FetchTimeframes returns the timeframes the history carries data for.
func (h *MarketHistory) FetchTimeframes() []Timeframe {
	timeframes := make([]Timeframe, len(h.timeframes))
	copy(timeframes, h.timeframes)

	return timeframes
}

// FetchBars returns the bars covering the provided timeframe. The returned
// slice is the caller's own copy.
func (h *MarketHistory) FetchBars(timeframe Timeframe) ([]PriceBar, error) {
	bars, ok := h.bars[timeframe]
	if !ok {
		return nil, fmt.Errorf("no %s price data loaded for %s", timeframe.String(), h.market)
	}

	clone := make([]PriceBar, len(bars))
	copy(clone, bars)

	return clone, nil
}

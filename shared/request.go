package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinAnalysisBars is the number of bars below which pivot detection has
	// insufficient data to work with.
	MinAnalysisBars = 11
	// TimeoutDuration is the maximum time to wait before timing out.
	TimeoutDuration = time.Second * 4
)

// AnalysisRequest represents a request to analyze a market's price history
// for elliott wave structure.
type AnalysisRequest struct {
	ID        string
	Market    string
	Timeframe Timeframe
	Bars      []PriceBar
	// Insight is an optional externally generated analysis payload, either
	// structured wave json or freeform text.
	Insight  []byte
	Response chan *WaveAnalysisResult
}

// NewAnalysisRequest initializes a new analysis request.
func NewAnalysisRequest(market string, timeframe Timeframe, bars []PriceBar, insight []byte) *AnalysisRequest {
	return &AnalysisRequest{
		ID:        uuid.New().String(),
		Market:    market,
		Timeframe: timeframe,
		Bars:      bars,
		Insight:   insight,
		Response:  make(chan *WaveAnalysisResult, 1),
	}
}

// LastResultRequest represents a request to fetch the most recent analysis
// result for a market.
type LastResultRequest struct {
	Market    string
	Timeframe Timeframe
	Response  chan *WaveAnalysisResult
}

// NewLastResultRequest initializes a new last result request.
func NewLastResultRequest(market string, timeframe Timeframe) *LastResultRequest {
	return &LastResultRequest{
		Market:    market,
		Timeframe: timeframe,
		Response:  make(chan *WaveAnalysisResult, 1),
	}
}

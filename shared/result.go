package shared

import (
	"github.com/google/uuid"
)

// WaveAnalysisResult represents the outcome of analyzing a market's price
// history for elliott wave structure. Results are immutable snapshots, the
// collections they carry are never shared with engine internals.
type WaveAnalysisResult struct {
	ID                string      `json:"id"`
	Market            string      `json:"market"`
	Timeframe         Timeframe   `json:"timeframe"`
	Waves             []Wave      `json:"waves"`
	InvalidWaves      []Wave      `json:"invalidWaves"`
	CurrentWave       *Wave       `json:"currentWave"`
	FibTargets        []FibTarget `json:"fibTargets"`
	Trend             Trend       `json:"trend"`
	ImpulsePattern    bool        `json:"impulsePattern"`
	CorrectivePattern bool        `json:"correctivePattern"`
	Analysis          string      `json:"analysis,omitempty"`
}

// NewWaveAnalysisResult initializes an empty analysis result for the
// provided market. Collections start out empty rather than nil so the json
// form always carries arrays.
func NewWaveAnalysisResult(market string, timeframe Timeframe) *WaveAnalysisResult {
	return &WaveAnalysisResult{
		ID:           uuid.New().String(),
		Market:       market,
		Timeframe:    timeframe,
		Waves:        []Wave{},
		InvalidWaves: []Wave{},
		FibTargets:   []FibTarget{},
		Trend:        Neutral,
	}
}

// Clone returns a deep copy of the result.
func (r *WaveAnalysisResult) Clone() *WaveAnalysisResult {
	clone := *r

	clone.Waves = CloneWaves(r.Waves)
	clone.InvalidWaves = CloneWaves(r.InvalidWaves)

	if r.CurrentWave != nil {
		current := r.CurrentWave.Clone()
		clone.CurrentWave = &current
	}

	if r.FibTargets != nil {
		clone.FibTargets = make([]FibTarget, len(r.FibTargets))
		copy(clone.FibTargets, r.FibTargets)
	}

	return &clone
}

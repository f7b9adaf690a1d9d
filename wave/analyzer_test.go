package wave

import (
	"testing"

	"github.com/dnldd/elliott/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

// setupAnalyzer initializes an analyzer for testing.
func setupAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	cfg := &AnalyzerConfig{
		Logger: &log.Logger,
	}

	return NewAnalyzer(cfg)
}

func TestAnalyzeInsufficientData(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues([]float64{100, 102, 104, 101, 99})
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, nil)

	// Ensure series below the analysis minimum yield an empty result.
	result := analyzer.Analyze(req)
	assert.Equal(t, result.Market, testMarket)
	assert.Equal(t, result.Timeframe, shared.OneDay)
	assert.Equal(t, len(result.Waves), 0)
	assert.Equal(t, len(result.InvalidWaves), 0)
	assert.Equal(t, len(result.FibTargets), 0)
	assert.Nil(t, result.CurrentWave)
	assert.Equal(t, result.Trend, shared.Neutral)
}

func TestAnalyzeFlatSeries(t *testing.T) {
	analyzer := setupAnalyzer(t)
	values := make([]float64, 100)
	for idx := range values {
		values[idx] = 50
	}
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, barsFromValues(values), nil)

	// Ensure a flat series yields no wave pattern rather than an error.
	result := analyzer.Analyze(req)
	assert.Equal(t, len(result.Waves), 0)
	assert.Nil(t, result.CurrentWave)
	assert.Equal(t, result.Trend, shared.Neutral)
}

func TestAnalyzeDetectsWaves(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues(vShapeValues())
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, nil)

	// Ensure a recovery off a single bottom yields one developing wave.
	result := analyzer.Analyze(req)
	assert.Equal(t, len(result.Waves), 1)
	assert.Equal(t, result.Waves[0].Number, shared.W1)
	assert.False(t, result.Waves[0].IsComplete)
	assert.Equal(t, result.Waves[0].StartPrice, float64(80))
	assert.Equal(t, result.Waves[0].EndPrice, float64(120))

	assert.NotNil(t, result.CurrentWave)
	assert.Equal(t, result.CurrentWave.Number, shared.W1)

	// A developing wave cannot anchor fibonacci targets.
	assert.Equal(t, len(result.FibTargets), 0)
	assert.Equal(t, result.Trend, shared.Bullish)
	assert.False(t, result.ImpulsePattern)
	assert.False(t, result.CorrectivePattern)
}

func TestAnalyzeFullCycle(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues(zigzagValues())
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, nil)

	// Ensure an oscillating series yields a full labeled cycle with both
	// patterns flagged and fibonacci targets anchored on the most recent
	// completed impulse wave.
	result := analyzer.Analyze(req)
	assert.Equal(t, len(result.Waves), 11)
	assert.Equal(t, result.Waves[0].Number, shared.W1)
	assert.Equal(t, result.Waves[10].Number, shared.W3)
	assert.True(t, result.ImpulsePattern)
	assert.True(t, result.CorrectivePattern)
	assert.Equal(t, result.Trend, shared.Bearish)

	assert.Equal(t, len(result.FibTargets), 9)
	critical := result.FibTargets[3]
	assert.Equal(t, critical.Label, "61.8% retracement")
	assert.True(t, critical.IsCritical)
	assert.True(t, priceNear(critical.Price, 118.54))
}

func TestAnalyzeFreeformInsight(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues(vShapeValues())
	insight := []byte("Stock looks bearish going forward.")
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, insight)

	// Ensure freeform commentary yields a minimal result relaying the
	// commentary and its stated bias.
	result := analyzer.Analyze(req)
	assert.Equal(t, result.Analysis, "Stock looks bearish going forward.")
	assert.Equal(t, result.Trend, shared.Bearish)
	assert.Equal(t, len(result.Waves), 0)
	assert.Equal(t, len(result.FibTargets), 0)
	assert.Nil(t, result.CurrentWave)
}

func TestAnalyzeExternalInsight(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues(vShapeValues())
	insight := []byte(`{
		"analysis": "Impulse advancing off the low.",
		"waves": [
			{"number": "1", "startTimestamp": 1700086400, "startPrice": 100, "endTimestamp": 1700518400, "endPrice": 130},
			{"number": "2", "startTimestamp": 1700518400, "startPrice": 130}
		]
	}`)
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, insight)

	// Ensure externally supplied waves take precedence over locally
	// detected ones.
	result := analyzer.Analyze(req)
	assert.Equal(t, result.Analysis, "Impulse advancing off the low.")
	assert.Equal(t, len(result.Waves), 2)
	assert.Equal(t, result.Waves[0].Number, shared.W1)
	assert.True(t, result.Waves[0].IsComplete)
	assert.Equal(t, result.Waves[1].Number, shared.W2)
	assert.False(t, result.Waves[1].IsComplete)

	assert.NotNil(t, result.CurrentWave)
	assert.Equal(t, result.CurrentWave.Number, shared.W2)

	// The developing second wave has no end data, so the trend is
	// neutral and targets anchor on the completed first wave.
	assert.Equal(t, result.Trend, shared.Neutral)
	assert.Equal(t, len(result.FibTargets), 9)
	assert.True(t, priceNear(result.FibTargets[3].Price, 111.46))
}

func TestAnalyzeExternalReanchors(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues(vShapeValues())
	insight := []byte(`[
		{"number": "1", "startTimestamp": 1697408000, "startPrice": 95, "endTimestamp": 1700518400, "endPrice": 130}
	]`)
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, insight)

	// Ensure a lone external wave starting before the series is re
	// anchored to the earliest bar instead of being discarded.
	result := analyzer.Analyze(req)
	assert.Equal(t, len(result.Waves), 1)
	assert.Equal(t, result.Waves[0].StartTimestamp, bars[0].Timestamp)
	assert.Equal(t, result.Waves[0].StartPrice, bars[0].Close)
	assert.Equal(t, result.Waves[0].EndPrice, float64(130))
}

func TestAnalyzeExternalUnusableFallsBack(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues(vShapeValues())
	insight := []byte(`[{"startPrice": 5}, {"endPrice": 9}]`)
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, insight)

	// Ensure an external payload with no usable records falls back to the
	// locally detected waves.
	result := analyzer.Analyze(req)
	assert.Equal(t, len(result.Waves), 1)
	assert.Equal(t, result.Waves[0].Number, shared.W1)
	assert.Equal(t, result.Waves[0].StartPrice, float64(80))
	assert.Equal(t, result.Waves[0].EndPrice, float64(120))
}

func TestAnalyzeTracksInvalidation(t *testing.T) {
	analyzer := setupAnalyzer(t)
	bars := barsFromValues(vShapeValues())
	insight := []byte(`[
		{"number": "1", "startTimestamp": 1700000000, "startPrice": 100, "endTimestamp": 1701728000, "endPrice": 120, "invalidationPrice": 85}
	]`)
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, insight)

	// Ensure a wave whose invalidation price is crossed moves to the
	// invalidated set with the breaching bar's timestamp.
	result := analyzer.Analyze(req)
	assert.Equal(t, len(result.Waves), 0)
	assert.Equal(t, len(result.InvalidWaves), 1)
	assert.True(t, result.InvalidWaves[0].IsInvalid)
	assert.Equal(t, result.InvalidWaves[0].InvalidationTimestamp, bars[8].Timestamp)
	assert.Nil(t, result.CurrentWave)
	assert.Equal(t, result.Trend, shared.Neutral)
}

package wave

import (
	"github.com/dnldd/elliott/insight"
	"github.com/dnldd/elliott/shared"
	"github.com/rs/zerolog"
)

// AnalyzerConfig represents the analyzer configuration.
type AnalyzerConfig struct {
	// Progress relays wave analysis progress updates.
	Progress ProgressFunc
	// Logger is the analyzer logger.
	Logger *zerolog.Logger
}

// Analyzer runs elliott wave analysis on market price data.
type Analyzer struct {
	cfg *AnalyzerConfig
}

// NewAnalyzer initializes a new analyzer.
func NewAnalyzer(cfg *AnalyzerConfig) *Analyzer {
	return &Analyzer{
		cfg: cfg,
	}
}

// Analyze generates a wave analysis result for the provided request.
// Price derived waves are merged with any external insight carried by the
// request, external waves take precedence when both are available.
func (a *Analyzer) Analyze(req *shared.AnalysisRequest) *shared.WaveAnalysisResult {
	result := shared.NewWaveAnalysisResult(req.Market, req.Timeframe)

	bars := shared.EnsureAscending(req.Bars)
	if len(bars) < shared.MinAnalysisBars {
		a.cfg.Logger.Info().Msgf("insufficient data for %s [%s]: %d of %d bars",
			req.Market, req.Timeframe.String(), len(bars), shared.MinAnalysisBars)

		return result
	}

	pivots := DetectPivots(bars, a.cfg.Progress)
	local := insight.NewLocal(LabelWaves(pivots, bars))
	localWaves, _, _ := ValidateBounds(local.Normalize(), bars)

	var externalWaves []shared.Wave
	if len(req.Insight) > 0 {
		src := insight.ParsePayload(req.Insight, a.cfg.Logger)
		switch src := src.(type) {
		case *insight.Freeform:
			// Freeform commentary carries no wave structure, the result
			// relays the commentary and its stated bias only.
			result.Analysis = src.Text
			result.Trend = src.Trend()

			return result

		case *insight.External:
			if src.Skipped > 0 {
				a.cfg.Logger.Warn().Msgf("skipped %d unusable external wave records for %s [%s]",
					src.Skipped, req.Market, req.Timeframe.String())
			}

			result.Analysis = src.Analysis

			validated, dropped, reanchored := ValidateBounds(src.Normalize(), bars)
			if dropped > 0 {
				a.cfg.Logger.Warn().Msgf("dropped %d out of range external waves for %s [%s]",
					dropped, req.Market, req.Timeframe.String())
			}
			if reanchored {
				a.cfg.Logger.Warn().Msgf("re-anchored external wave start to the earliest bar for %s [%s]",
					req.Market, req.Timeframe.String())
			}

			externalWaves = validated
		}
	}

	waves := MergeWaves(localWaves, externalWaves)
	live, invalid := TrackInvalidation(waves, bars)

	if len(live) > 0 {
		result.Waves = shared.CloneWaves(live)
		current := live[len(live)-1].Clone()
		result.CurrentWave = &current
	}
	if len(invalid) > 0 {
		result.InvalidWaves = shared.CloneWaves(invalid)
	}

	result.FibTargets = FibTargets(SelectReference(live))
	result.Trend = ClassifyTrend(live)
	result.ImpulsePattern = HasImpulsePattern(live)
	result.CorrectivePattern = HasCorrectivePattern(live)

	return result
}

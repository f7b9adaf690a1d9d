package wave

import (
	"github.com/dnldd/elliott/shared"
)

const (
	// minImpulseWaves is the impulse wave count needed to flag an impulse
	// pattern.
	minImpulseWaves = 3
	// minCorrectiveWaves is the corrective wave count needed to flag a
	// corrective pattern.
	minCorrectiveWaves = 2
)

// ClassifyTrend derives the overall trend from the last wave of the
// provided sequence. Empty sequences and waves without end prices are
// neutral. A developing wave classifies with its provisional end price.
func ClassifyTrend(waves []shared.Wave) shared.Trend {
	if len(waves) == 0 {
		return shared.Neutral
	}

	last := waves[len(waves)-1]
	if last.EndPrice == 0 {
		return shared.Neutral
	}

	switch {
	case last.EndPrice > last.StartPrice:
		return shared.Bullish
	case last.EndPrice < last.StartPrice:
		return shared.Bearish
	default:
		return shared.Neutral
	}
}

// HasImpulsePattern reports whether the sequence carries at least three
// impulse waves. Invalidated waves do not count.
func HasImpulsePattern(waves []shared.Wave) bool {
	var count int
	for idx := range waves {
		if waves[idx].IsInvalid {
			continue
		}
		if waves[idx].Type == shared.Impulse {
			count++
		}
	}

	return count >= minImpulseWaves
}

// HasCorrectivePattern reports whether the sequence carries at least two
// corrective waves. Invalidated waves do not count.
func HasCorrectivePattern(waves []shared.Wave) bool {
	var count int
	for idx := range waves {
		if waves[idx].IsInvalid {
			continue
		}
		if waves[idx].Type == shared.Corrective {
			count++
		}
	}

	return count >= minCorrectiveWaves
}

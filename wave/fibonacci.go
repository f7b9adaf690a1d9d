package wave

import (
	"fmt"

	"github.com/dnldd/elliott/shared"
)

const (
	// criticalRetracement is the retracement ratio conventionally treated
	// as a primary decision level.
	criticalRetracement = 0.618
	// criticalExtension is the extension ratio conventionally treated as a
	// primary decision level.
	criticalExtension = 1.618
)

var (
	// retracementRatios are the standard ratios applied within the
	// reference wave's range.
	retracementRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
	// extensionRatios are the standard ratios projected beyond the
	// reference wave's end.
	extensionRatios = []float64{1.272, 1.618, 2.0, 2.618}
)

// FibTargets computes retracement and extension price targets from the
// provided reference wave. Retracements project backward from the wave's
// end toward its start, extensions project beyond the end in the direction
// of the move. A degenerate reference with no price range yields no
// targets.
func FibTargets(ref *shared.Wave) []shared.FibTarget {
	targets := make([]shared.FibTarget, 0, len(retracementRatios)+len(extensionRatios))
	if ref == nil {
		return targets
	}

	diff := ref.EndPrice - ref.StartPrice
	if diff == 0 {
		return targets
	}

	for idx := range retracementRatios {
		ratio := retracementRatios[idx]
		targets = append(targets, shared.FibTarget{
			Label:       fibLabel(ratio, false),
			Price:       ref.EndPrice - ratio*diff,
			IsExtension: false,
			IsCritical:  ratio == criticalRetracement,
		})
	}

	for idx := range extensionRatios {
		ratio := extensionRatios[idx]
		targets = append(targets, shared.FibTarget{
			Label:       fibLabel(ratio, true),
			Price:       ref.StartPrice + ratio*diff,
			IsExtension: true,
			IsCritical:  ratio == criticalExtension,
		})
	}

	return targets
}

// SelectReference picks the wave fibonacci targets derive from, the most
// recently completed impulse wave, falling back to the most recently
// completed wave of any type.
func SelectReference(waves []shared.Wave) *shared.Wave {
	for idx := len(waves) - 1; idx >= 0; idx-- {
		if waves[idx].IsComplete && waves[idx].Type == shared.Impulse {
			return &waves[idx]
		}
	}

	for idx := len(waves) - 1; idx >= 0; idx-- {
		if waves[idx].IsComplete {
			return &waves[idx]
		}
	}

	return nil
}

// fibLabel formats the display label for the provided ratio.
func fibLabel(ratio float64, extension bool) string {
	kind := "retracement"
	if extension {
		kind = "extension"
	}

	return fmt.Sprintf("%.1f%% %s", ratio*100, kind)
}

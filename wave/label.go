package wave

import (
	"github.com/dnldd/elliott/shared"
)

// LabelWaves converts the provided pivots into an ordered, labeled wave
// sequence. Labels advance exactly one cycle step per adjacent pivot pair,
// with prices taken from the pivot extremes, the low of a trough starting
// an up leg and the high of a peak starting a down leg, mirrored at the
// ending pivot. When the final pivot is not the final bar a trailing in
// progress wave is appended, running from the final pivot to the last bar
// with provisional end data.
func LabelWaves(pivots []Pivot, bars []shared.PriceBar) []shared.Wave {
	waves := make([]shared.Wave, 0, len(pivots))
	if len(pivots) == 0 || len(bars) == 0 {
		return waves
	}

	label := shared.W1
	for idx := 0; idx < len(pivots)-1; idx++ {
		start := pivots[idx]
		end := pivots[idx+1]

		wave := shared.NewWave(label, start.Timestamp, start.Price)
		wave.EndTimestamp = end.Timestamp
		wave.EndPrice = end.Price
		wave.IsComplete = true

		waves = append(waves, *wave)
		label = label.Next()
	}

	last := pivots[len(pivots)-1]
	lastBar := bars[len(bars)-1]
	if last.Index < len(bars)-1 {
		wave := shared.NewWave(label, last.Timestamp, last.Price)
		wave.EndTimestamp = lastBar.Timestamp

		// The developing leg runs toward the opposite extreme of its
		// starting pivot.
		switch last.Kind {
		case Trough:
			wave.EndPrice = lastBar.High
		default:
			wave.EndPrice = lastBar.Low
		}

		waves = append(waves, *wave)
	}

	return waves
}

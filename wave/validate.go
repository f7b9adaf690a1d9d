package wave

import (
	"github.com/dnldd/elliott/shared"
)

// ValidateBounds applies the two tier bounds policy to the provided waves.
// Waves starting before the earliest bar are dropped, unless dropping them
// would empty the sequence, in which case the first wave is re anchored to
// the earliest bar's timestamp and close price and the rest kept as is.
// The returned count reports the out of range waves and the flag reports
// whether the sequence was re anchored. Inputs are never mutated, a re
// anchored sequence is a fresh copy.
func ValidateBounds(waves []shared.Wave, bars []shared.PriceBar) ([]shared.Wave, int, bool) {
	if len(waves) == 0 || len(bars) == 0 {
		return waves, 0, false
	}

	earliest, _ := shared.EarliestBar(bars)

	kept := make([]shared.Wave, 0, len(waves))
	for idx := range waves {
		if waves[idx].StartTimestamp < earliest.Timestamp {
			continue
		}

		kept = append(kept, waves[idx])
	}

	dropped := len(waves) - len(kept)
	if len(kept) > 0 {
		return kept, dropped, false
	}

	// Re anchor the first wave rather than discarding an otherwise valid
	// sequence outright.
	reanchored := shared.CloneWaves(waves)
	reanchored[0].StartTimestamp = earliest.Timestamp
	reanchored[0].StartPrice = earliest.Close

	return reanchored, dropped, true
}

// TrackInvalidation splits the provided waves into live and invalidated
// sequences. A wave carrying an invalidation price is invalidated once a
// bar at or after its start crosses that price against the wave's
// direction, a bar low breaching an up wave and a bar high breaching a
// down wave. Waves arriving already flagged stay invalidated.
func TrackInvalidation(waves []shared.Wave, bars []shared.PriceBar) ([]shared.Wave, []shared.Wave) {
	live := make([]shared.Wave, 0, len(waves))
	invalid := make([]shared.Wave, 0)

	for idx := range waves {
		wave := waves[idx]

		if wave.IsInvalid {
			invalid = append(invalid, wave)
			continue
		}

		if wave.InvalidationPrice == nil {
			live = append(live, wave)
			continue
		}

		breach, ok := findBreach(&wave, bars)
		if !ok {
			live = append(live, wave)
			continue
		}

		wave.Invalidate(breach)
		invalid = append(invalid, wave)
	}

	return live, invalid
}

// findBreach returns the timestamp of the first bar at or after the wave's
// start crossing its invalidation price against the wave's direction. The
// provided bars are expected in ascending order.
func findBreach(wave *shared.Wave, bars []shared.PriceBar) (int64, bool) {
	level := *wave.InvalidationPrice
	up := wave.IsUpLeg()

	for idx := range bars {
		bar := bars[idx]
		if bar.Timestamp < wave.StartTimestamp {
			continue
		}

		if up && bar.Low < level {
			return bar.Timestamp, true
		}

		if !up && bar.High > level {
			return bar.Timestamp, true
		}
	}

	return 0, false
}

// MergeWaves picks between the locally detected and externally supplied
// sequences. An external sequence with at least one wave left after
// normalization and bounds validation takes precedence, the local sequence
// is the fallback.
func MergeWaves(local []shared.Wave, external []shared.Wave) []shared.Wave {
	if len(external) > 0 {
		return external
	}

	return local
}

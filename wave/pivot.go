package wave

import (
	"github.com/dnldd/elliott/shared"
)

const (
	// PivotWindow is the number of bars flanking a candidate bar on each
	// side when testing for a swing extremum.
	PivotWindow = 5
	// progressInterval is the number of detected pivots between progress
	// report invocations.
	progressInterval = 5
)

// PivotKind represents the kind of a detected swing point.
type PivotKind int

const (
	Peak PivotKind = iota
	Trough
)

// String stringifies the provided pivot kind.
func (k PivotKind) String() string {
	switch k {
	case Peak:
		return "peak"
	case Trough:
		return "trough"
	default:
		return "unknown"
	}
}

// Pivot represents a swing point in a price series.
type Pivot struct {
	Kind      PivotKind
	Index     int
	Timestamp int64
	Price     float64
}

// ProgressFunc reports the number of pivots detected so far while a series
// is being scanned. It is a reporting affordance only, detection stays on
// the calling goroutine.
type ProgressFunc func(pivots int)

// DetectPivots scans the provided series for swing highs and lows using a
// fixed window on each side of the candidate bar. Series shorter than
// shared.MinAnalysisBars yield no pivots. The optional progress function is
// invoked after every five detected pivots.
func DetectPivots(bars []shared.PriceBar, progress ProgressFunc) []Pivot {
	pivots := make([]Pivot, 0)
	if len(bars) < shared.MinAnalysisBars {
		return pivots
	}

	report := func() {
		if progress != nil && len(pivots)%progressInterval == 0 {
			progress(len(pivots))
		}
	}

	for idx := PivotWindow; idx < len(bars)-PivotWindow; idx++ {
		if isPeak(bars, idx) {
			pivots = append(pivots, Pivot{
				Kind:      Peak,
				Index:     idx,
				Timestamp: bars[idx].Timestamp,
				Price:     bars[idx].High,
			})
			report()
		}

		if isTrough(bars, idx) {
			pivots = append(pivots, Pivot{
				Kind:      Trough,
				Index:     idx,
				Timestamp: bars[idx].Timestamp,
				Price:     bars[idx].Low,
			})
			report()
		}
	}

	return pivots
}

// isPeak reports whether the bar at idx is a swing high. The candidate high
// must be at least as high as every flanking high, with a strictly lower
// high on each side so flat stretches do not register.
func isPeak(bars []shared.PriceBar, idx int) bool {
	candidate := bars[idx].High

	var roseInto, fellOff bool
	for before := idx - PivotWindow; before < idx; before++ {
		if bars[before].High > candidate {
			return false
		}
		if bars[before].High < candidate {
			roseInto = true
		}
	}

	for after := idx + 1; after <= idx+PivotWindow; after++ {
		if bars[after].High > candidate {
			return false
		}
		if bars[after].High < candidate {
			fellOff = true
		}
	}

	return roseInto && fellOff
}

// isTrough reports whether the bar at idx is a swing low, mirroring the
// swing high test over bar lows.
func isTrough(bars []shared.PriceBar, idx int) bool {
	candidate := bars[idx].Low

	var fellInto, roseOff bool
	for before := idx - PivotWindow; before < idx; before++ {
		if bars[before].Low < candidate {
			return false
		}
		if bars[before].Low > candidate {
			fellInto = true
		}
	}

	for after := idx + 1; after <= idx+PivotWindow; after++ {
		if bars[after].Low < candidate {
			return false
		}
		if bars[after].Low > candidate {
			roseOff = true
		}
	}

	return fellInto && roseOff
}

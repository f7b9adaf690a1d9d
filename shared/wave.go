package shared

// Wave represents a single labeled price swing in an elliott wave sequence.
type Wave struct {
	Number                WaveLabel `json:"number"`
	Type                  WaveType  `json:"type"`
	StartTimestamp        int64     `json:"startTimestamp"`
	StartPrice            float64   `json:"startPrice"`
	EndTimestamp          int64     `json:"endTimestamp,omitempty"`
	EndPrice              float64   `json:"endPrice,omitempty"`
	IsComplete            bool      `json:"isComplete"`
	IsInvalid             bool      `json:"isInvalid"`
	InvalidationPrice     *float64  `json:"invalidationPrice,omitempty"`
	InvalidationTimestamp int64     `json:"invalidationTimestamp,omitempty"`
	Subwaves              []Wave    `json:"subwaves,omitempty"`
}

// NewWave initializes a wave with the provided label, anchored at the
// provided start point. The wave type always follows from the label.
func NewWave(label WaveLabel, startTimestamp int64, startPrice float64) *Wave {
	return &Wave{
		Number:         label,
		Type:           label.Type(),
		StartTimestamp: startTimestamp,
		StartPrice:     startPrice,
	}
}

// HasEnd reports whether the wave carries end data. A wave without end data
// is still in progress and cannot be complete.
func (w *Wave) HasEnd() bool {
	return w.EndTimestamp != 0
}

// IsUpLeg reports whether the wave moves upward. A wave without end data
// falls back to the side of its invalidation price, which sits below the
// start of an upward wave.
func (w *Wave) IsUpLeg() bool {
	if w.HasEnd() {
		return w.EndPrice > w.StartPrice
	}

	if w.InvalidationPrice != nil {
		return *w.InvalidationPrice < w.StartPrice
	}

	return true
}

// Invalidate flags the wave as invalidated by the bar at the provided
// timestamp.
func (w *Wave) Invalidate(timestamp int64) {
	w.IsInvalid = true
	w.InvalidationTimestamp = timestamp
}

// Clone returns a deep copy of the wave.
func (w *Wave) Clone() Wave {
	clone := *w

	if w.InvalidationPrice != nil {
		price := *w.InvalidationPrice
		clone.InvalidationPrice = &price
	}

	if len(w.Subwaves) > 0 {
		clone.Subwaves = make([]Wave, len(w.Subwaves))
		for idx := range w.Subwaves {
			clone.Subwaves[idx] = w.Subwaves[idx].Clone()
		}
	}

	return clone
}

// CloneWaves returns a deep copy of the provided wave sequence.
func CloneWaves(waves []Wave) []Wave {
	if waves == nil {
		return nil
	}

	clones := make([]Wave, len(waves))
	for idx := range waves {
		clones[idx] = waves[idx].Clone()
	}

	return clones
}

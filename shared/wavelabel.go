package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// WaveType represents the canonical classification of a wave.
type WaveType int

const (
	Impulse WaveType = iota
	Corrective
)

// String stringifies the provided wave type.
func (t WaveType) String() string {
	switch t {
	case Impulse:
		return "impulse"
	case Corrective:
		return "corrective"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the wave type in its string form.
func (t WaveType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON decodes the wave type from its string form.
func (t *WaveType) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("unquoting wave type: %v", err)
	}

	switch unquoted {
	case "impulse":
		*t = Impulse
	case "corrective":
		*t = Corrective
	default:
		return fmt.Errorf("no wave type matches '%s'", unquoted)
	}

	return nil
}

// WaveLabel represents a state in the eight step elliott wave label cycle.
type WaveLabel int

const (
	W1 WaveLabel = iota
	W2
	W3
	W4
	W5
	WA
	WB
	WC
)

// Next returns the label following the provided one in the cycle. The cycle
// restarts at wave 1 after wave C, and unknown labels reset to wave 1.
func (l WaveLabel) Next() WaveLabel {
	if l < W1 || l >= WC {
		return W1
	}

	return l + 1
}

// Type returns the canonical type for the label. Waves 1, 3, 5 and B are
// impulsive, waves 2, 4, A and C are corrective.
func (l WaveLabel) Type() WaveType {
	switch l {
	case W1, W3, W5, WB:
		return Impulse
	default:
		return Corrective
	}
}

// String stringifies the provided wave label.
func (l WaveLabel) String() string {
	switch l {
	case W1:
		return "1"
	case W2:
		return "2"
	case W3:
		return "3"
	case W4:
		return "4"
	case W5:
		return "5"
	case WA:
		return "A"
	case WB:
		return "B"
	case WC:
		return "C"
	default:
		return "unknown"
	}
}

// ParseWaveLabel parses a wave label from its numeric or letter form.
func ParseWaveLabel(value string) (WaveLabel, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "1":
		return W1, nil
	case "2":
		return W2, nil
	case "3":
		return W3, nil
	case "4":
		return W4, nil
	case "5":
		return W5, nil
	case "A":
		return WA, nil
	case "B":
		return WB, nil
	case "C":
		return WC, nil
	default:
		return 0, fmt.Errorf("no wave label matches '%s'", value)
	}
}

// MarshalJSON encodes the label in its wire form, numeric for waves 1
// through 5 and quoted letters for waves A through C.
func (l WaveLabel) MarshalJSON() ([]byte, error) {
	switch l {
	case W1, W2, W3, W4, W5:
		return []byte(l.String()), nil
	case WA, WB, WC:
		return []byte(strconv.Quote(l.String())), nil
	default:
		return nil, fmt.Errorf("no wire form for wave label %d", int(l))
	}
}

// UnmarshalJSON decodes the label from its numeric or letter wire form.
func (l *WaveLabel) UnmarshalJSON(b []byte) error {
	label, err := ParseWaveLabel(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}

	*l = label
	return nil
}

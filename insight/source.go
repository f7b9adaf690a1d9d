package insight

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/elliott/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Source is the set of insight variants an analysis payload can resolve to.
type Source interface {
	// Normalize converts the source into canonical waves.
	Normalize() []shared.Wave
}

// Local represents wave insight derived from price data.
type Local struct {
	Waves []shared.Wave
}

// NewLocal initializes a local insight source from the provided waves.
func NewLocal(waves []shared.Wave) *Local {
	return &Local{
		Waves: waves,
	}
}

// Normalize converts the source into canonical waves.
func (l *Local) Normalize() []shared.Wave {
	return shared.CloneWaves(l.Waves)
}

// External represents structured wave insight supplied by an external
// analysis provider.
type External struct {
	Records  []ExternalWaveRecord
	Analysis string
	Skipped  int
}

// Normalize converts the source into canonical waves.
func (e *External) Normalize() []shared.Wave {
	return normalizeRecords(e.Records)
}

// Freeform represents unstructured analysis commentary, it carries no
// usable wave data.
type Freeform struct {
	Text string
}

// Normalize converts the source into canonical waves.
func (f *Freeform) Normalize() []shared.Wave {
	return nil
}

// Trend scans the commentary for a market bias.
func (f *Freeform) Trend() shared.Trend {
	return ScanTrend(f.Text)
}

// ScanTrend scans the provided text for a stated market bias. The first
// bias mentioned in reading order wins, text stating neither is neutral.
func ScanTrend(text string) shared.Trend {
	lowered := strings.ToLower(text)

	bullish := strings.Index(lowered, "bullish")
	bearish := strings.Index(lowered, "bearish")

	switch {
	case bullish == -1 && bearish == -1:
		return shared.Neutral
	case bearish == -1 || (bullish != -1 && bullish < bearish):
		return shared.Bullish
	default:
		return shared.Bearish
	}
}

// parseRecords parses wave records from the provided json array, skipping
// entries too sparse to use.
func parseRecords(entries []gjson.Result, logger *zerolog.Logger) ([]ExternalWaveRecord, int) {
	records := make([]ExternalWaveRecord, 0, len(entries))

	skipped := 0
	for idx := range entries {
		record, ok := ParseRecord(entries[idx])
		if !ok {
			logger.Warn().Msgf("skipping external wave record with no number or timestamps at index %d", idx)
			logger.Debug().Msg(spew.Sdump(entries[idx].Value()))
			skipped++

			continue
		}

		records = append(records, record)
	}

	return records, skipped
}

// ParsePayload resolves the provided analysis payload into an insight
// source. Structured payloads resolve to an external source, anything that
// is not valid json or carries no wave structure resolves to freeform
// commentary.
func ParsePayload(payload []byte, logger *zerolog.Logger) Source {
	text := string(payload)

	if !gjson.Valid(text) {
		logger.Warn().Msg("external insight payload is not valid json, treating as freeform commentary")

		return &Freeform{Text: strings.TrimSpace(text)}
	}

	root := gjson.Parse(text)

	switch {
	case root.IsArray():
		records, skipped := parseRecords(root.Array(), logger)

		return &External{Records: records, Skipped: skipped}

	case root.IsObject():
		external := &External{
			Analysis: strings.TrimSpace(root.Get("analysis").String()),
		}

		if waves := root.Get("waves"); waves.IsArray() {
			external.Records, external.Skipped = parseRecords(waves.Array(), logger)
		}

		return external

	default:
		// Scalar payloads carry commentary only.
		return &Freeform{Text: strings.TrimSpace(root.String())}
	}
}

package insight

import (
	"strconv"
	"strings"
	"time"

	"github.com/dnldd/elliott/shared"
	"github.com/tidwall/gjson"
)

// keyReplacer strips the separators external sources mix into field names,
// so startTime, start_time and start-time all resolve to the same key.
var keyReplacer = strings.NewReplacer("_", "", "-", "", " ", "")

// timeLayouts are the accepted layouts for time fields supplied as strings.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ExternalWaveRecord represents a single wave record parsed from an external
// analysis payload, with fields coalesced from the alternate spellings
// external sources use.
type ExternalWaveRecord struct {
	Number                string
	StartTimestamp        int64
	StartPrice            float64
	EndTimestamp          int64
	EndPrice              float64
	IsComplete            *bool
	IsInvalid             bool
	InvalidationPrice     *float64
	InvalidationTimestamp int64
	Subwaves              []ExternalWaveRecord
}

// normalizeKeys flattens the provided record entry into a lookup of its
// fields keyed by their lowercased, separator stripped names.
func normalizeKeys(entry gjson.Result) map[string]gjson.Result {
	fields := make(map[string]gjson.Result)
	entry.ForEach(func(key gjson.Result, value gjson.Result) bool {
		normalized := keyReplacer.Replace(strings.ToLower(strings.TrimSpace(key.String())))
		if normalized != "" {
			fields[normalized] = value
		}

		return true
	})

	return fields
}

// lookupField returns the first present field among the provided alternate
// key spellings.
func lookupField(fields map[string]gjson.Result, keys ...string) gjson.Result {
	for idx := range keys {
		if value, ok := fields[keys[idx]]; ok {
			return value
		}
	}

	return gjson.Result{}
}

// parseFlexibleTime extracts a unix timestamp from a field holding epoch
// seconds, an epoch string or an iso-8601 time string.
func parseFlexibleTime(value gjson.Result) int64 {
	switch value.Type {
	case gjson.Number:
		return value.Int()
	case gjson.String:
		raw := strings.TrimSpace(value.String())
		if raw == "" {
			return 0
		}

		if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return ts
		}

		for idx := range timeLayouts {
			if parsed, err := time.Parse(timeLayouts[idx], raw); err == nil {
				return parsed.UTC().Unix()
			}
		}
	}

	return 0
}

// ParseRecord parses a wave record from the provided json entry. The boolean
// reports whether the entry carried enough fields to be usable, a record
// missing both a number and any timestamp is unusable.
func ParseRecord(entry gjson.Result) (ExternalWaveRecord, bool) {
	fields := normalizeKeys(entry)

	record := ExternalWaveRecord{
		Number:                strings.TrimSpace(lookupField(fields, "number", "wave", "label").String()),
		StartTimestamp:        parseFlexibleTime(lookupField(fields, "starttimestamp", "starttime")),
		StartPrice:            lookupField(fields, "startprice").Float(),
		EndTimestamp:          parseFlexibleTime(lookupField(fields, "endtimestamp", "endtime")),
		EndPrice:              lookupField(fields, "endprice").Float(),
		InvalidationTimestamp: parseFlexibleTime(lookupField(fields, "invalidationtimestamp", "invalidationtime")),
		IsInvalid:             lookupField(fields, "isinvalid", "isinvalidated", "invalidated").Bool(),
	}

	if complete := lookupField(fields, "iscomplete", "complete"); complete.Exists() {
		value := complete.Bool()
		record.IsComplete = &value
	}

	if level := lookupField(fields, "invalidationprice", "invalidationlevel"); level.Exists() {
		value := level.Float()
		record.InvalidationPrice = &value
	}

	if subwaves := lookupField(fields, "subwaves"); subwaves.IsArray() {
		entries := subwaves.Array()
		for idx := range entries {
			subrecord, ok := ParseRecord(entries[idx])
			if !ok {
				continue
			}

			record.Subwaves = append(record.Subwaves, subrecord)
		}
	}

	usable := record.Number != "" || record.StartTimestamp != 0 || record.EndTimestamp != 0

	return record, usable
}

// wave converts the record into a canonical wave carrying the provided
// label. Records without end data are in progress and cannot be complete,
// records carrying end data default to complete unless flagged otherwise.
func (r *ExternalWaveRecord) wave(label shared.WaveLabel) shared.Wave {
	wave := shared.NewWave(label, r.StartTimestamp, r.StartPrice)
	wave.EndTimestamp = r.EndTimestamp
	wave.EndPrice = r.EndPrice
	wave.IsInvalid = r.IsInvalid
	wave.InvalidationPrice = r.InvalidationPrice
	wave.InvalidationTimestamp = r.InvalidationTimestamp
	wave.Subwaves = normalizeRecords(r.Subwaves)

	switch {
	case !wave.HasEnd():
		wave.IsComplete = false
	case r.IsComplete != nil:
		wave.IsComplete = *r.IsComplete
	default:
		wave.IsComplete = true
	}

	return *wave
}

// normalizeRecords converts the provided records into canonical waves.
// Records carrying a parsable number keep it, the rest continue the label
// cycle from the preceding record.
func normalizeRecords(records []ExternalWaveRecord) []shared.Wave {
	if len(records) == 0 {
		return nil
	}

	waves := make([]shared.Wave, 0, len(records))

	label := shared.W1
	for idx := range records {
		record := &records[idx]

		if parsed, err := shared.ParseWaveLabel(record.Number); err == nil {
			label = parsed
		}

		waves = append(waves, record.wave(label))
		label = label.Next()
	}

	return waves
}

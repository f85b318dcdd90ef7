// Package codec converts the field list and entry store to and from the
// string form kept in the durable key/value store.
//
// Decoding is total: corrupted or hand-edited input never produces an error,
// it degrades to the valid subset or to an empty structure.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// Storage keys of the two independent channels
const (
	FieldsKey  = "trackerFields"
	EntriesKey = "trackerEntries"
)

// EncodeFields serializes the field list
func EncodeFields(fields []field.Field) (string, error) {
	if fields == nil {
		fields = []field.Field{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return string(data), nil
}

// EncodeEntries serializes the entry store
func EncodeEntries(store entry.Store) (string, error) {
	if store == nil {
		store = entry.Store{}
	}
	data, err := json.Marshal(store)
	if err != nil {
		return "", fmt.Errorf("encode entries: %w", err)
	}
	return string(data), nil
}

// DecodeFields parses a stored field list. Elements that fail structural
// validation are dropped, the rest keep their order. Anything that is not a
// JSON array yields an empty list.
func DecodeFields(raw string) []field.Field {
	fields := []field.Field{}

	parsed, err := field.DecodeRaw([]byte(raw))
	if err != nil {
		return fields
	}
	items, ok := parsed.([]any)
	if !ok {
		return fields
	}

	for _, item := range items {
		if f, ok := field.Validate(item); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// DecodeEntries parses a stored entry store. Invalid per-field values are
// dropped and dates left without any valid value are omitted. Anything that
// is not a JSON object yields an empty store.
func DecodeEntries(raw string) entry.Store {
	store := entry.Store{}

	parsed, err := field.DecodeRaw([]byte(raw))
	if err != nil {
		return store
	}
	days, ok := parsed.(map[string]any)
	if !ok {
		return store
	}

	for date, rawDay := range days {
		values, ok := rawDay.(map[string]any)
		if !ok {
			continue
		}
		day := entry.DailyEntry{}
		for fieldID, rawValue := range values {
			if v, ok := field.ValidateValue(rawValue); ok {
				day[fieldID] = v
			}
		}
		if len(day) > 0 {
			store[date] = day
		}
	}
	return store
}

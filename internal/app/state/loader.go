package state

import (
	"context"
	"fmt"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
	"github.com/YoshitsuguKoike/habittrack/internal/application/port/output"
	"github.com/YoshitsuguKoike/habittrack/internal/infra/codec"
)

// Load seeds a container from the durable store. Malformed stored values
// degrade to empty state; only a failure to read the store is an error,
// since seeding empty state would overwrite the stored data on the first
// mutation.
func Load(ctx context.Context, store output.KeyValueStore) (*Container, error) {
	rawFields, ok, err := store.GetItem(ctx, codec.FieldsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", codec.FieldsKey, err)
	}
	fields := codec.DecodeFields("")
	if ok {
		fields = codec.DecodeFields(rawFields)
	}

	rawEntries, ok, err := store.GetItem(ctx, codec.EntriesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", codec.EntriesKey, err)
	}
	entries := codec.DecodeEntries("")
	if ok {
		entries = codec.DecodeEntries(rawEntries)
	}

	app.GetLogger().Debug("Loaded %d fields and %d dated entries", len(fields), len(entries))
	return NewContainer(fields, entries), nil
}

package state

import (
	"context"
	"sync"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
	"github.com/YoshitsuguKoike/habittrack/internal/application/port/output"
	"github.com/YoshitsuguKoike/habittrack/internal/infra/codec"
)

// Mirror flushes every state change to the durable store. Write failures
// are logged and remembered but never propagated to the mutating caller,
// so in-memory editing keeps working when the store does not.
type Mirror struct {
	ctx   context.Context
	store output.KeyValueStore

	mu      sync.Mutex
	lastErr error
	flushes int
}

// NewMirror creates a mirror writing to store
func NewMirror(ctx context.Context, store output.KeyValueStore) *Mirror {
	return &Mirror{ctx: ctx, store: store}
}

// Attach subscribes a new mirror to c and returns it with its unsubscribe
// function
func Attach(ctx context.Context, c *Container, store output.KeyValueStore) (*Mirror, func()) {
	m := NewMirror(ctx, store)
	return m, c.Subscribe(m.Handle)
}

// Handle writes the changed channel. It is a Listener.
func (m *Mirror) Handle(ch Change) {
	var (
		key string
		raw string
		err error
	)

	switch ch.Kind {
	case FieldsChanged:
		key = codec.FieldsKey
		raw, err = codec.EncodeFields(ch.Fields)
	case EntriesChanged:
		key = codec.EntriesKey
		raw, err = codec.EncodeEntries(ch.Entries)
	default:
		app.GetLogger().Error("Ignoring change of unknown kind %d", int(ch.Kind))
		return
	}

	if err == nil {
		err = m.store.SetItem(m.ctx, key, raw)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastErr = err
		app.GetLogger().Error("Failed to persist %s: %v", ch.Kind, err)
		return
	}
	m.flushes++
	app.GetLogger().Debug("Persisted %s (%d bytes)", key, len(raw))
}

// Err returns the most recent flush error, if any
func (m *Mirror) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Flushes returns the number of successful writes
func (m *Mirror) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// Package state owns the session-lifetime tracker state: the field list and
// the entry store. Persistence is a mirror attached as a listener; the
// container is the only source of truth while a session is open.
package state

import (
	"sync"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/entry"
	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// ChangeKind identifies which part of the state was replaced
type ChangeKind int

const (
	FieldsChanged ChangeKind = iota
	EntriesChanged
)

func (k ChangeKind) String() string {
	switch k {
	case FieldsChanged:
		return "fields"
	case EntriesChanged:
		return "entries"
	default:
		return "unknown"
	}
}

// Change is delivered to listeners after a setter replaced part of the state
type Change struct {
	Kind    ChangeKind
	Fields  []field.Field
	Entries entry.Store
}

// Listener reacts to state changes. Listeners run synchronously on the
// goroutine that performed the mutation.
type Listener func(Change)

// Container holds the field list and entry store.
//
// Values handed out by the getters are shared, not copied: callers must treat
// them as read-only and publish modifications through SetFields/SetEntries
// with a new slice or map.
type Container struct {
	mu        sync.RWMutex
	fields    []field.Field
	entries   entry.Store
	listeners map[int]Listener
	nextID    int
}

// NewContainer seeds a container with initial state
func NewContainer(fields []field.Field, entries entry.Store) *Container {
	if fields == nil {
		fields = []field.Field{}
	}
	if entries == nil {
		entries = entry.Store{}
	}
	return &Container{
		fields:    fields,
		entries:   entries,
		listeners: make(map[int]Listener),
	}
}

// Fields returns the current field list
func (c *Container) Fields() []field.Field {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fields
}

// Entries returns the current entry store
func (c *Container) Entries() entry.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries
}

// SetFields replaces the field list and notifies listeners
func (c *Container) SetFields(fields []field.Field) {
	if fields == nil {
		fields = []field.Field{}
	}
	c.mu.Lock()
	c.fields = fields
	entries := c.entries
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, Change{Kind: FieldsChanged, Fields: fields, Entries: entries})
}

// SetEntries replaces the entry store and notifies listeners
func (c *Container) SetEntries(entries entry.Store) {
	if entries == nil {
		entries = entry.Store{}
	}
	c.mu.Lock()
	c.entries = entries
	fields := c.fields
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, Change{Kind: EntriesChanged, Fields: fields, Entries: entries})
}

// Subscribe registers l for future changes and returns a function that
// removes it
func (c *Container) Subscribe(l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = l

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// snapshotListeners returns listeners in subscription order; caller holds mu
func (c *Container) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(c.listeners))
	for id := 0; id < c.nextID; id++ {
		if l, ok := c.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func notify(listeners []Listener, ch Change) {
	for _, l := range listeners {
		l(ch)
	}
}

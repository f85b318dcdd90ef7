package output

import "context"

// KeyValueStore is the durable string store that mirrors tracker state.
// It holds one string value per key and has last-write-wins semantics.
type KeyValueStore interface {
	// GetItem returns the value stored under key. ok is false when the key
	// has never been written.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem replaces the value stored under key
	SetItem(ctx context.Context, key, value string) error

	// Close releases resources held by the store
	Close() error
}

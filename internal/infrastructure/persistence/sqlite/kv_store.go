package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YoshitsuguKoike/habittrack/internal/application/port/output"
)

// KeyValueStore keeps tracker state in a single SQLite table
type KeyValueStore struct {
	db *sql.DB
}

var _ output.KeyValueStore = (*KeyValueStore)(nil)

// Open opens (creating if needed) the database at path and applies the schema
func Open(path string) (*KeyValueStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps :memory: databases shared across calls
	db.SetMaxOpenConns(1)

	if err := NewMigrator(db).Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &KeyValueStore{db: db}, nil
}

// NewKeyValueStore wraps an already migrated database
func NewKeyValueStore(db *sql.DB) *KeyValueStore {
	return &KeyValueStore{db: db}
}

// GetItem returns the value stored under key
func (s *KeyValueStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_items WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %s failed: %w", key, err)
	}
	return value, true, nil
}

// SetItem replaces the value stored under key
func (s *KeyValueStore) SetItem(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_items (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set item %s failed: %w", key, err)
	}
	return nil
}

// Close closes the underlying database
func (s *KeyValueStore) Close() error {
	return s.db.Close()
}

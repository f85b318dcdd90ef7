package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/habittrack/internal/application/port/output"
)

// ErrInvalidKey is returned for keys that cannot be mapped to a file name
var ErrInvalidKey = errors.New("invalid storage key")

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// KeyValueStore keeps each key in its own file under a directory.
// Writes are atomic per key.
type KeyValueStore struct {
	FS  afero.Fs
	Dir string
}

var _ output.KeyValueStore = (*KeyValueStore)(nil)

// NewKeyValueStore creates a file-backed store rooted at dir
func NewKeyValueStore(fs afero.Fs, dir string) *KeyValueStore {
	return &KeyValueStore{FS: fs, Dir: dir}
}

// GetItem reads the value stored under key
func (s *KeyValueStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}

	data, err := afero.ReadFile(s.FS, path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem atomically replaces the value stored under key
func (s *KeyValueStore) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.FS, path, []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file store
func (s *KeyValueStore) Close() error {
	return nil
}

func (s *KeyValueStore) pathFor(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key+".json"), nil
}

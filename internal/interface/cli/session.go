package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/habittrack/internal/app/config"
	"github.com/YoshitsuguKoike/habittrack/internal/app/state"
	"github.com/YoshitsuguKoike/habittrack/internal/application/port/output"
	"github.com/YoshitsuguKoike/habittrack/internal/infra/persistence/file"
	"github.com/YoshitsuguKoike/habittrack/internal/infrastructure/persistence/sqlite"
)

// ErrNotPersisted is returned when a session ends with unsaved changes
var ErrNotPersisted = errors.New("changes were not saved")

// session is one load-edit-mirror cycle against the configured store
type session struct {
	store  output.KeyValueStore
	state  *state.Container
	mirror *state.Mirror
	detach func()
}

// openStore opens the key/value store selected by the configuration
func openStore(cfg config.Config) (output.KeyValueStore, error) {
	switch cfg.StorageBackend() {
	case config.BackendFile, "":
		return file.NewKeyValueStore(afero.NewOsFs(), cfg.StorageDir()), nil
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", cfg.DatabasePath(), err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend())
	}
}

func openSession(ctx context.Context, cfg config.Config) (*session, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	c, err := state.Load(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	mirror, detach := state.Attach(ctx, c, store)
	return &session{store: store, state: c, mirror: mirror, detach: detach}, nil
}

// Close detaches the mirror and closes the store. A mirror that failed to
// write at any point is reported as ErrNotPersisted.
func (s *session) Close() error {
	s.detach()

	var errs []error
	if err := s.mirror.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrNotPersisted, err))
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

// withSession runs fn inside a session opened from the global configuration
func withSession(ctx context.Context, fn func(*session) error) (err error) {
	cfg := globalConfig
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	return fn(s)
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
	"github.com/YoshitsuguKoike/habittrack/internal/app/config"
	infraConfig "github.com/YoshitsuguKoike/habittrack/internal/infra/config"
)

func newInitCmd() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the habittrack home with a default setting.json",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			backend = strings.ToLower(strings.TrimSpace(backend))
			if backend != config.BackendFile && backend != config.BackendSQLite {
				return fmt.Errorf("%w: %q", infraConfig.ErrUnknownBackend, backend)
			}

			paths := app.ResolvePaths()
			if err := os.MkdirAll(paths.Storage, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", paths.Storage, err)
			}

			settings := infraConfig.DefaultSettings(paths.Home)
			settings.StorageBackend = &backend
			data, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}

			created, err := writeIfNotExists(paths.Setting, append(data, '\n'))
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", paths.Setting, err)
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "Initialized %s:\n", paths.Home)
			if created {
				fmt.Fprintf(out, "  %s\n", paths.Setting)
			} else {
				fmt.Fprintf(out, "  %s (kept existing)\n", paths.Setting)
			}
			fmt.Fprintf(out, "  %s\n", filepath.Clean(paths.Storage)+string(filepath.Separator))
			return nil
		},
	}
	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "Storage backend: file|sqlite")
	return cmd
}

// writeIfNotExists never overwrites an existing file
func writeIfNotExists(path string, b []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	return true, os.WriteFile(path, b, 0o644)
}

package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
	"github.com/YoshitsuguKoike/habittrack/internal/app/config"
	infraConfig "github.com/YoshitsuguKoike/habittrack/internal/infra/config"
	"github.com/YoshitsuguKoike/habittrack/internal/interface/cli/version"
)

// globalConfig holds the loaded configuration for all commands
var globalConfig config.Config

// nowFunc is the clock used to pick today's date
var nowFunc = time.Now

func defaultConfig(paths app.Paths) *config.AppConfig {
	return config.NewAppConfig(
		paths.Home, config.BackendFile, paths.Storage, paths.Database,
		"warn",
		"default", "",
	)
}

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "habittrack",
		Short:        "Track custom daily habits",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Priority: setting.json > defaults
			paths := app.ResolvePaths()

			cfg, err := infraConfig.LoadSettings(paths.Home)
			if errors.Is(err, infraConfig.ErrUnknownBackend) {
				return err
			}
			if err != nil {
				// Continue with defaults if the file cannot be parsed
				GetLogger().Warn("Ignoring settings: %v", err)
				cfg = defaultConfig(paths)
			}
			globalConfig = cfg

			logger := NewLogger(LogLevelFromString(cfg.StderrLevel()), cmd.ErrOrStderr())
			globalLogger = logger
			InitializeLoggers(logger)
			logger.Debug("Loaded configuration from %s (backend %s)", cfg.ConfigSource(), cfg.StorageBackend())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = GetLogger().Sync()
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newFieldCmd())
	cmd.AddCommand(newEntryCmd())
	cmd.AddCommand(newWeekCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(version.NewCommand())
	return cmd
}

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/habittrack/internal/app/config"
	"github.com/YoshitsuguKoike/habittrack/internal/buildinfo"
)

// EffectiveConfig represents the final applied configuration for serialization
type EffectiveConfig struct {
	Meta    EffectiveConfigMeta    `json:"meta" yaml:"meta"`
	Storage EffectiveConfigStorage `json:"storage" yaml:"storage"`
	Logging EffectiveConfigLogging `json:"logging" yaml:"logging"`
}

// EffectiveConfigMeta contains metadata about the configuration
type EffectiveConfigMeta struct {
	Home        string `json:"home" yaml:"home"`
	Source      string `json:"source" yaml:"source"`
	SettingPath string `json:"setting_path" yaml:"setting_path"`
	Version     string `json:"version" yaml:"version"`
	TsUTC       string `json:"ts_utc" yaml:"ts_utc"`
}

// EffectiveConfigStorage describes where tracker state is kept
type EffectiveConfigStorage struct {
	Backend      string `json:"backend" yaml:"backend"`
	Dir          string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`
}

// EffectiveConfigLogging represents logging configuration
type EffectiveConfigLogging struct {
	StderrLevel string `json:"stderr_level" yaml:"stderr_level"`
}

func newConfigCmd() *cobra.Command {
	var (
		format  string
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runPrintEffectiveConfig(globalConfig, format, compact, c.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: json|yaml")
	cmd.Flags().BoolVar(&compact, "compact", false, "Single-line JSON")
	return cmd
}

// runPrintEffectiveConfig prints the effective configuration
func runPrintEffectiveConfig(cfg config.Config, format string, compact bool, out io.Writer) error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	effective := buildEffectiveConfig(cfg, time.Now())

	var (
		output []byte
		err    error
	)
	switch format {
	case "yaml":
		output, err = yaml.Marshal(effective)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
	case "json":
		if compact {
			output, err = json.Marshal(effective)
		} else {
			output, err = json.MarshalIndent(effective, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		// Ensure newline at end
		if !bytes.HasSuffix(output, []byte("\n")) {
			output = append(output, '\n')
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	_, err = out.Write(output)
	return err
}

// buildEffectiveConfig converts the loaded Config for output. Only the
// path of the active backend is reported.
func buildEffectiveConfig(cfg config.Config, now time.Time) *EffectiveConfig {
	effective := &EffectiveConfig{
		Meta: EffectiveConfigMeta{
			Home:        cfg.Home(),
			Source:      cfg.ConfigSource(),
			SettingPath: cfg.SettingPath(),
			Version:     buildinfo.GetVersion(),
			TsUTC:       now.UTC().Format(time.RFC3339Nano),
		},
		Storage: EffectiveConfigStorage{Backend: cfg.StorageBackend()},
		Logging: EffectiveConfigLogging{StderrLevel: cfg.StderrLevel()},
	}

	switch cfg.StorageBackend() {
	case config.BackendSQLite:
		effective.Storage.DatabasePath = cfg.DatabasePath()
	default:
		effective.Storage.Dir = cfg.StorageDir()
	}
	return effective
}

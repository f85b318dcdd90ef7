package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
	"github.com/YoshitsuguKoike/habittrack/internal/app/config"
)

// ErrUnknownBackend is returned for a storage_backend other than file or sqlite
var ErrUnknownBackend = errors.New("unknown storage backend")

// RawSettings represents the structure of setting.json file.
// JSON tags are used for marshaling/unmarshaling.
type RawSettings struct {
	// Core settings
	Home *string `json:"home"`

	// Storage
	StorageBackend *string `json:"storage_backend"`
	StorageDir     *string `json:"storage_dir"`
	DatabasePath   *string `json:"database_path"`

	// Logging
	StderrLevel *string `json:"stderr_level"`
}

// LoadSettings loads configuration from <baseDir>/setting.json.
// Priority: setting.json > defaults
func LoadSettings(baseDir string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	jsonPath := filepath.Join(baseDir, "setting.json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
		configSource = "json"
		settingPath = jsonPath
	}

	if settings.Home == nil {
		settings.Home = &baseDir
	}
	applyDefaults(settings)

	backend := strings.ToLower(strings.TrimSpace(*settings.StorageBackend))
	switch backend {
	case config.BackendFile, config.BackendSQLite:
		settings.StorageBackend = &backend
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, *settings.StorageBackend)
	}

	return buildAppConfig(settings, configSource, settingPath), nil
}

// applyDefaults fills in default values for any nil fields. Storage paths
// default to the layout below home.
func applyDefaults(settings *RawSettings) {
	if settings.Home == nil {
		v := ".habittrack"
		settings.Home = &v
	}
	paths := app.PathsFor(*settings.Home)

	if settings.StorageBackend == nil {
		v := config.BackendFile
		settings.StorageBackend = &v
	}
	if settings.StorageDir == nil {
		v := paths.Storage
		settings.StorageDir = &v
	}
	if settings.DatabasePath == nil {
		v := paths.Database
		settings.DatabasePath = &v
	}

	if settings.StderrLevel == nil {
		v := "warn" // Default to WARN level
		settings.StderrLevel = &v
	}
}

// buildAppConfig converts RawSettings to AppConfig
func buildAppConfig(settings *RawSettings, configSource, settingPath string) *config.AppConfig {
	return config.NewAppConfig(
		*settings.Home,
		*settings.StorageBackend,
		*settings.StorageDir,
		*settings.DatabasePath,
		*settings.StderrLevel,
		configSource,
		settingPath,
	)
}

// DefaultSettings returns settings with every default applied for home
func DefaultSettings(home string) *RawSettings {
	settings := &RawSettings{Home: &home}
	applyDefaults(settings)
	return settings
}

// CreateDefaultSettings creates a default setting.json content
func CreateDefaultSettings(home string) []byte {
	data, _ := json.MarshalIndent(DefaultSettings(home), "", "  ")
	return data
}

package config

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config provides read-only access to application configuration.
// The app layer only sees this interface, never the setting.json layout.
type Config interface {
	// Core settings
	Home() string // Base directory for habittrack (HABITTRACK_HOME)

	// Storage
	StorageBackend() string // "file" or "sqlite"
	StorageDir() string     // Directory of the file backend
	DatabasePath() string   // Database file of the sqlite backend

	// Logging
	StderrLevel() string // Stderr log level

	// Metadata
	ConfigSource() string // Source of configuration: "json" or "default"
	SettingPath() string  // Path to setting.json if loaded from file
}

// AppConfig is the concrete implementation of Config
type AppConfig struct {
	home string

	storageBackend string
	storageDir     string
	databasePath   string

	stderrLevel string

	configSource string
	settingPath  string
}

// Home returns the base directory for habittrack
func (c *AppConfig) Home() string {
	return c.home
}

// StorageBackend returns the configured key/value store backend
func (c *AppConfig) StorageBackend() string {
	return c.storageBackend
}

// StorageDir returns the file backend directory
func (c *AppConfig) StorageDir() string {
	return c.storageDir
}

// DatabasePath returns the sqlite database path
func (c *AppConfig) DatabasePath() string {
	return c.databasePath
}

// StderrLevel returns the stderr log level
func (c *AppConfig) StderrLevel() string {
	return c.stderrLevel
}

// ConfigSource returns the source of configuration
func (c *AppConfig) ConfigSource() string {
	return c.configSource
}

// SettingPath returns the path to setting.json if loaded from file
func (c *AppConfig) SettingPath() string {
	return c.settingPath
}

// NewAppConfig creates a new AppConfig with all values
func NewAppConfig(
	home string,
	storageBackend string,
	storageDir string,
	databasePath string,
	stderrLevel string,
	configSource string,
	settingPath string,
) *AppConfig {
	return &AppConfig{
		home:           home,
		storageBackend: storageBackend,
		storageDir:     storageDir,
		databasePath:   databasePath,
		stderrLevel:    stderrLevel,
		configSource:   configSource,
		settingPath:    settingPath,
	}
}

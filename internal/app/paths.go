package app

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the default home directory
const HomeEnv = "HABITTRACK_HOME"

// Paths holds all resolved paths for the habittrack home layout
type Paths struct {
	Home    string // .habittrack
	Var     string // .habittrack/var
	Storage string // .habittrack/var/storage

	// Key files
	Setting  string // .habittrack/setting.json
	Database string // .habittrack/var/habittrack.db
}

// ResolvePaths returns all paths based on the HABITTRACK_HOME environment variable
func ResolvePaths() Paths {
	home := os.Getenv(HomeEnv)
	if home == "" {
		home = ".habittrack"
	}
	return PathsFor(home)
}

// PathsFor derives the layout below an explicit home directory
func PathsFor(home string) Paths {
	p := Paths{
		Home: home,
		Var:  filepath.Join(home, "var"),
	}
	p.Storage = filepath.Join(p.Var, "storage")
	p.Setting = filepath.Join(home, "setting.json")
	p.Database = filepath.Join(p.Var, "habittrack.db")
	return p
}

package config

import (
	"os"
	"path/filepath"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	Home       string // ~/.autoscroll
	ConfigPath string // ~/.autoscroll/config.json
	LogsDir    string // ~/.autoscroll/logs
}

// DefaultPaths returns the default paths configuration. AUTOSCROLL_HOME
// overrides the home directory.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("AUTOSCROLL_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(home, ".autoscroll")
	}
	return PathsAt(root), nil
}

// PathsAt lays out the paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Home:       root,
		ConfigPath: filepath.Join(root, "config.json"),
		LogsDir:    filepath.Join(root, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/autoscroll/internal/config"
	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/scroll"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	itemsPath  string
	direction  string
	steep      float64
	logLevel   string
	json       bool

	cmd *cobra.Command
}

func (g *globalFlags) register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Config file (.json, .yaml); default ~/.autoscroll/config.json")
	pf.StringVarP(&g.itemsPath, "items", "i", "", "Items file (text lines, JSON or YAML list)")
	pf.StringVarP(&g.direction, "direction", "d", "", "Scroll direction: top, bottom, left or right")
	pf.Float64Var(&g.steep, "steep", 0, "Distance advanced per frame")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.BoolVar(&g.json, "json", false, "Print a JSON envelope instead of human output")
	g.cmd = root
}

// settings is a loaded, validated config with its items.
type settings struct {
	cfg       *config.Config
	items     []config.Item
	notes     []string
	overrides func(*config.Config)
}

// overrides returns the flag values that replace config values. It is
// reapplied when the TUI reloads an edited config.
func (g *globalFlags) overrides() (func(*config.Config), error) {
	changed := func(name string) bool {
		return g.cmd != nil && g.cmd.PersistentFlags().Changed(name)
	}
	var dir scroll.Direction
	if changed("direction") {
		d, err := scroll.ParseDirection(g.direction)
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if changed("log-level") {
		if _, err := logging.ParseLevel(g.logLevel); err != nil {
			return nil, err
		}
	}
	var itemsPath string
	if g.itemsPath != "" {
		abs, err := filepath.Abs(g.itemsPath)
		if err != nil {
			return nil, fmt.Errorf("items path: %w", err)
		}
		itemsPath = abs
	}
	steep := g.steep
	level := g.logLevel
	return func(c *config.Config) {
		if changed("direction") {
			c.Scroll.Direction = dir
		}
		if changed("steep") {
			c.Scroll.Steep = steep
		}
		if changed("log-level") {
			c.LogLevel = level
		}
		if itemsPath != "" {
			c.ItemsPath = itemsPath
		}
	}, nil
}

// load reads the config named by --config, or the default one, applies
// the flag overrides and loads the items.
func (g *globalFlags) load() (*settings, error) {
	over, err := g.overrides()
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	over(cfg)
	notes := cfg.Validate()
	items, err := cfg.LoadedItems()
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return &settings{cfg: cfg, items: items, notes: notes, overrides: over}, nil
}

func (s *settings) logLevel() logging.Level {
	level, err := logging.ParseLevel(s.cfg.LogLevel)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

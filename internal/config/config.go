package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/scroll"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// Config holds the application configuration
type Config struct {
	Paths  *Paths
	Scroll scroll.Options

	// Name is shown in the pane title.
	Name string
	// Items are inline items; ItemsPath, when set, replaces them.
	Items     []Item
	ItemsPath string
	// ItemKey names the item field used for stable keys.
	ItemKey string

	// Gap is the blank space between items, in rows or cells.
	Gap int
	// WheelStep scales one wheel notch into an offset delta.
	WheelStep float64
	LogLevel  string

	KeyMap KeyMapConfig
	UI     UISettings

	// Source is the file the config was read from, empty for defaults.
	Source string

	// loadNotes holds values dropped while decoding; Validate reports them.
	loadNotes []string
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths:     paths,
		Scroll:    scroll.DefaultOptions(),
		Name:      "autoscroll",
		Gap:       0,
		WheelStep: 1,
		LogLevel:  "info",
		KeyMap:    KeyMapConfig{},
		UI:        defaultUISettings(),
	}, nil
}

// rawConfig mirrors the file format. Pointers distinguish "absent" from
// zero so a file only overrides what it names. Delays are milliseconds.
type rawConfig struct {
	Name *string `json:"name" yaml:"name"`

	Steep                *float64 `json:"steep" yaml:"steep"`
	ScrollDirection      *string  `json:"scrollDirection" yaml:"scrollDirection"`
	IsRoller             *bool    `json:"isRoller" yaml:"isRoller"`
	RollerScrollDistance *float64 `json:"rollerScrollDistance" yaml:"rollerScrollDistance"`
	IsHoverStop          *bool    `json:"isHoverStop" yaml:"isHoverStop"`
	AutoPlay             *bool    `json:"autoPlay" yaml:"autoPlay"`
	AutoPlayDelay        *float64 `json:"autoPlayDelay" yaml:"autoPlayDelay"`
	ForceScroll          *bool    `json:"forceScroll" yaml:"forceScroll"`
	IsSingleStep         *bool    `json:"isSingleStep" yaml:"isSingleStep"`
	SingleStepDistance   *float64 `json:"singleStepDistance" yaml:"singleStepDistance"`
	SingleStepDelay      *float64 `json:"singleStepDelay" yaml:"singleStepDelay"`
	Seamless             *bool    `json:"seamless" yaml:"seamless"`
	WheelResumeDelay     *float64 `json:"wheelResumeDelay" yaml:"wheelResumeDelay"`
	AlwaysStop           *bool    `json:"alwaysStop" yaml:"alwaysStop"`
	FrameInterval        *float64 `json:"frameInterval" yaml:"frameInterval"`

	List      []Item   `json:"list" yaml:"list"`
	ItemsFile *string  `json:"itemsFile" yaml:"itemsFile"`
	ItemKey   *string  `json:"itemKey" yaml:"itemKey"`
	Gap       *int     `json:"gap" yaml:"gap"`
	WheelStep *float64 `json:"wheelStep" yaml:"wheelStep"`
	LogLevel  *string  `json:"logLevel" yaml:"logLevel"`

	KeyMap KeyMapConfig `json:"keymap" yaml:"keymap"`
	UI     rawUI        `json:"ui" yaml:"ui"`
}

type rawUI struct {
	ShowKeymapHints *bool   `json:"show_keymap_hints" yaml:"show_keymap_hints"`
	Theme           *string `json:"theme" yaml:"theme"`
}

// Load loads config overrides from ~/.autoscroll/config.json if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.merge(cfg.Paths.ConfigPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads defaults overridden by path. The format follows the
// extension: .yaml and .yml are YAML, anything else JSON.
func LoadFile(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw rawConfig
	if err := decode(path, data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.apply(raw, filepath.Dir(path)); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func decode(path string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}

func (c *Config) apply(raw rawConfig, baseDir string) error {
	o := &c.Scroll
	if raw.Name != nil {
		c.Name = *raw.Name
	}
	if raw.Steep != nil {
		o.Steep = *raw.Steep
	}
	if raw.ScrollDirection != nil {
		d, err := scroll.ParseDirection(*raw.ScrollDirection)
		if err != nil {
			return err
		}
		o.Direction = d
	}
	setBool(&o.IsRoller, raw.IsRoller)
	setFloat(&o.RollerScrollDistance, raw.RollerScrollDistance)
	setBool(&o.IsHoverStop, raw.IsHoverStop)
	setBool(&o.AutoPlay, raw.AutoPlay)
	c.setMillis("autoPlayDelay", &o.AutoPlayDelay, raw.AutoPlayDelay)
	setBool(&o.ForceScroll, raw.ForceScroll)
	setBool(&o.IsSingleStep, raw.IsSingleStep)
	setFloat(&o.SingleStepDistance, raw.SingleStepDistance)
	c.setMillis("singleStepDelay", &o.SingleStepDelay, raw.SingleStepDelay)
	setBool(&o.Seamless, raw.Seamless)
	c.setMillis("wheelResumeDelay", &o.WheelResumeDelay, raw.WheelResumeDelay)
	setBool(&o.AlwaysStop, raw.AlwaysStop)
	c.setMillis("frameInterval", &o.FrameInterval, raw.FrameInterval)

	if raw.List != nil {
		c.Items = raw.List
	}
	if raw.ItemsFile != nil {
		c.ItemsPath = *raw.ItemsFile
		if c.ItemsPath != "" && !filepath.IsAbs(c.ItemsPath) {
			c.ItemsPath = filepath.Join(baseDir, c.ItemsPath)
		}
	}
	if raw.ItemKey != nil {
		c.ItemKey = *raw.ItemKey
	}
	if raw.Gap != nil {
		c.Gap = *raw.Gap
	}
	setFloat(&c.WheelStep, raw.WheelStep)
	if raw.LogLevel != nil {
		c.LogLevel = *raw.LogLevel
	}
	if len(raw.KeyMap.Bindings) > 0 {
		c.KeyMap = raw.KeyMap
	}
	setBool(&c.UI.ShowKeymapHints, raw.UI.ShowKeymapHints)
	if raw.UI.Theme != nil {
		c.UI.Theme = *raw.UI.Theme
	}
	return nil
}

// Validate normalises values the engine would treat as degenerate and
// reports what it changed. Nothing here is fatal.
func (c *Config) Validate() []string {
	notes := c.loadNotes
	c.loadNotes = nil
	o := &c.Scroll
	def := scroll.DefaultOptions()
	for _, f := range []struct {
		name string
		v    *float64
		def  float64
	}{
		{"steep", &o.Steep, def.Steep},
		{"rollerScrollDistance", &o.RollerScrollDistance, def.RollerScrollDistance},
		{"singleStepDistance", &o.SingleStepDistance, def.SingleStepDistance},
		{"wheelStep", &c.WheelStep, 1},
	} {
		if !finite(*f.v) {
			notes = append(notes, fmt.Sprintf("%s %v is not a finite number, using %v", f.name, *f.v, f.def))
			*f.v = f.def
		}
	}
	if o.Steep < 0 {
		notes = append(notes, fmt.Sprintf("steep %v is negative, using 0", o.Steep))
		o.Steep = 0
	}
	if o.RollerScrollDistance < 0 {
		notes = append(notes, "rollerScrollDistance is negative, using 0")
		o.RollerScrollDistance = 0
	}
	if o.SingleStepDistance < 0 {
		notes = append(notes, "singleStepDistance is negative, using one item")
		o.SingleStepDistance = 0
	}
	for _, d := range []struct {
		name string
		v    *time.Duration
	}{
		{"autoPlayDelay", &o.AutoPlayDelay},
		{"singleStepDelay", &o.SingleStepDelay},
		{"wheelResumeDelay", &o.WheelResumeDelay},
	} {
		if *d.v < 0 {
			notes = append(notes, d.name+" is negative, using 0")
			*d.v = 0
		}
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = scroll.DefaultFrameInterval
	}
	if c.Gap < 0 {
		notes = append(notes, "gap is negative, using 0")
		c.Gap = 0
	}
	if c.WheelStep <= 0 {
		c.WheelStep = 1
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		notes = append(notes, err.Error()+", using info")
		c.LogLevel = "info"
	}
	notes = append(notes, o.Conflicts()...)
	return notes
}

// LoadedItems returns the configured items, reading ItemsPath when set.
func (c *Config) LoadedItems() ([]Item, error) {
	if c.ItemsPath == "" {
		return c.Items, nil
	}
	return LoadItems(c.ItemsPath)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// maxMillis is the longest delay a time.Duration can hold.
const maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// setMillis converts a millisecond count, fractions included. Values a
// Duration cannot represent keep the default and leave a note.
func (c *Config) setMillis(name string, dst *time.Duration, v *float64) {
	if v == nil {
		return
	}
	ms := *v
	if !finite(ms) || math.Abs(ms) > maxMillis {
		c.loadNotes = append(c.loadNotes, fmt.Sprintf("%s %v is out of range, using %v", name, ms, *dst))
		return
	}
	*dst = time.Duration(ms * float64(time.Millisecond))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/autoscroll/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionToggle  Action = "toggle"
	ActionReset   Action = "reset"
	ActionCopy    Action = "copy"
	ActionBack    Action = "nudge_back"
	ActionForward Action = "nudge_forward"
	ActionHelp    Action = "help"
	ActionQuit    Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Copy    key.Binding
	Back    key.Binding
	Forward key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var defaults = []bindingDef{
	{action: ActionToggle, keys: []string{"space", "p"}, desc: "start/stop"},
	{action: ActionReset, keys: []string{"r"}, desc: "restart"},
	{action: ActionCopy, keys: []string{"y"}, desc: "copy item"},
	{action: ActionBack, keys: []string{"k", "up", "h", "left"}, desc: "scroll back"},
	{action: ActionForward, keys: []string{"j", "down", "l", "right"}, desc: "scroll on"},
	{action: ActionHelp, keys: []string{"?"}, desc: "help"},
	{action: ActionQuit, keys: []string{"q", "ctrl+c"}, desc: "quit"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	b := make(map[Action]key.Binding, len(defaults))
	for _, def := range defaults {
		b[def.action] = bindingFromDef(cfg, def)
	}
	return KeyMap{
		Toggle:  b[ActionToggle],
		Reset:   b[ActionReset],
		Copy:    b[ActionCopy],
		Back:    b[ActionBack],
		Forward: b[ActionForward],
		Help:    b[ActionHelp],
		Quit:    b[ActionQuit],
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok || len(keys) == 0 {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	key := PrimaryKey(binding)
	if key == "" {
		return binding.Help().Key
	}
	return key
}

// PairHint joins two bindings with a slash using their primary keys.
func PairHint(a, b key.Binding) string {
	left := BindingHint(a)
	right := BindingHint(b)
	if left == "" {
		return right
	}
	if right == "" {
		return left
	}
	return left + "/" + right
}

// ShortHelp returns the bindings shown in the hint bar, in order.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Copy, k.Back, k.Forward, k.Help, k.Quit}
}

package app

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/autoscroll/internal/config"
	"github.com/andyrewlee/autoscroll/internal/keymap"
	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/messages"
	"github.com/andyrewlee/autoscroll/internal/perf"
	"github.com/andyrewlee/autoscroll/internal/ui/common"
	"github.com/andyrewlee/autoscroll/internal/ui/ticker"
)

// Options tunes an App beyond its config.
type Options struct {
	// Overrides is reapplied to every reloaded config, so command line
	// flags survive edits to the config file.
	Overrides func(*config.Config)
	// Watch enables reloading the config and items files on change.
	Watch bool
}

// App is the root Bubbletea model
type App struct {
	config *config.Config
	opts   Options

	ticker *ticker.Model
	toast  *common.ToastModel
	zone   *zone.Manager
	keymap keymap.KeyMap
	styles common.Styles

	width    int
	height   int
	ready    bool
	quitting bool
	err      error

	watcher    *config.Watcher
	watcherErr error
	fileCh     chan messages.FileChanged
	cancel     context.CancelFunc

	shutdownOnce sync.Once
}

// New creates the app for cfg showing items.
func New(cfg *config.Config, items []config.Item, opts Options) *App {
	if opts.Overrides != nil {
		opts.Overrides(cfg)
	}
	a := &App{
		config: cfg,
		opts:   opts,
		toast:  common.NewToastModel(),
		zone:   zone.New(),
		keymap: keymap.New(cfg.KeyMap),
		fileCh: make(chan messages.FileChanged, 8),
	}
	a.styles = common.NewStyles(common.GetTheme(cfg.UI.Theme))
	a.toast.SetStyles(a.styles)

	a.ticker = ticker.New(ticker.OptionsFromConfig(cfg), a.keymap)
	a.ticker.SetZone(a.zone)
	a.ticker.SetStyles(a.styles)
	a.ticker.SetItems(items)

	if opts.Watch {
		a.startWatcher()
	}
	return a
}

// Init starts the ticker timers and the file change listener.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.ticker.Init(),
		a.listenForChanges(),
	}
	if a.watcherErr != nil {
		cmds = append(cmds, a.toast.Show("File watching disabled; edits need a restart", messages.ToastWarning))
	}
	return common.SafeBatch(cmds...)
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer perf.Time("update")()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		cmd := a.ticker.SetSize(a.width, max(a.height-1, 0))
		if !a.ready {
			// First layout counts as the mount: honour the autoplay delay.
			a.ready = true
			cmd = common.SafeBatch(cmd, a.ticker.InitData())
		}
		return a, cmd

	case tea.KeyPressMsg:
		return a, a.handleKeyPress(msg)

	case messages.ToggleHelp:
		return a, a.toggleHelp()

	case messages.Toast, common.ToastDismissed:
		var cmd tea.Cmd
		a.toast, cmd = a.toast.Update(msg)
		return a, cmd

	case messages.Copied:
		return a, a.toast.Show("Copied "+truncateForToast(msg.Text), messages.ToastSuccess)

	case messages.Error:
		return a, a.handleErrorMessage(msg)

	case messages.FileChanged:
		return a, common.SafeBatch(a.handleFileChanged(msg), a.listenForChanges())

	case messages.ItemsLoaded:
		return a, a.handleItemsLoaded(msg)

	case messages.ConfigLoaded:
		return a, a.handleConfigLoaded(msg)
	}

	var cmd tea.Cmd
	a.ticker, cmd = a.ticker.Update(msg)
	return a, cmd
}

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.config }

// Ticker returns the ticker pane.
func (a *App) Ticker() *ticker.Model { return a.ticker }

// Err returns the last reported error.
func (a *App) Err() error { return a.err }

func truncateForToast(s string) string {
	const limit = 40
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func (a *App) handleErrorMessage(msg messages.Error) tea.Cmd {
	if msg.Err == nil {
		return nil
	}
	a.err = msg.Err
	if !msg.Logged {
		logging.Error("Error in %s: %v", msg.Context, msg.Err)
	}
	return nil
}

package app

import (
	"context"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/autoscroll/internal/config"
	"github.com/andyrewlee/autoscroll/internal/keymap"
	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/messages"
	"github.com/andyrewlee/autoscroll/internal/safego"
	"github.com/andyrewlee/autoscroll/internal/ui/common"
	"github.com/andyrewlee/autoscroll/internal/ui/ticker"
)

// watchedPaths are the files whose edits are reloaded live.
func (a *App) watchedPaths() []string {
	var paths []string
	if a.config.Source != "" {
		paths = append(paths, a.config.Source)
	}
	if a.config.ItemsPath != "" {
		paths = append(paths, a.config.ItemsPath)
	}
	return paths
}

func (a *App) startWatcher() {
	paths := a.watchedPaths()
	if len(paths) == 0 {
		return
	}
	w, err := config.NewWatcher(a.enqueueFileChange, config.WatchDebounce, paths...)
	if err != nil {
		logging.Warn("File watcher unavailable: %v", err)
		a.watcherErr = err
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.watcher = w
	a.cancel = cancel
	safego.GoContext(ctx, "config-watcher", w.Run)
	logging.Info("Watching %v", paths)
}

// enqueueFileChange runs on the watcher's timer goroutine. A full queue
// already holds a pending reload, so the event is dropped.
func (a *App) enqueueFileChange(path string) {
	select {
	case a.fileCh <- messages.FileChanged{Path: path}:
	default:
		logging.Debug("file change queue full; dropping %s", path)
	}
}

// listenForChanges waits for the next file change. It is re-issued after
// each delivery.
func (a *App) listenForChanges() tea.Cmd {
	if a.watcher == nil || a.fileCh == nil {
		return nil
	}
	ch := a.fileCh
	return func() tea.Msg {
		return <-ch
	}
}

func samePath(a, b string) bool {
	return a != "" && b != "" && filepath.Clean(a) == filepath.Clean(b)
}

func (a *App) handleFileChanged(msg messages.FileChanged) tea.Cmd {
	switch {
	case samePath(msg.Path, a.config.Source):
		return a.reloadConfig(a.config.Source)
	case samePath(msg.Path, a.config.ItemsPath):
		return a.reloadItems(a.config.ItemsPath)
	}
	return nil
}

func (a *App) reloadConfig(path string) tea.Cmd {
	overrides := a.opts.Overrides
	return common.SafeCmd(func() tea.Msg {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return messages.Error{Err: err, Context: "reload config"}
		}
		if overrides != nil {
			overrides(cfg)
		}
		notes := cfg.Validate()
		return messages.ConfigLoaded{Config: cfg, Notes: notes}
	})
}

func (a *App) reloadItems(path string) tea.Cmd {
	return common.SafeCmd(func() tea.Msg {
		items, err := config.LoadItems(path)
		if err != nil {
			return messages.Error{Err: err, Context: "reload items"}
		}
		return messages.ItemsLoaded{Items: items, Path: path}
	})
}

func (a *App) handleItemsLoaded(msg messages.ItemsLoaded) tea.Cmd {
	logging.Info("Loaded %d items from %s", len(msg.Items), msg.Path)
	return common.SafeBatch(
		a.ticker.SetItems(msg.Items),
		a.toast.Show(fmt.Sprintf("Loaded %d items", len(msg.Items)), messages.ToastInfo),
	)
}

// handleConfigLoaded swaps in a reloaded config. Items follow the new
// config: inline items apply directly and an items file is read again.
func (a *App) handleConfigLoaded(msg messages.ConfigLoaded) tea.Cmd {
	cfg := msg.Config
	if cfg == nil {
		return nil
	}
	for _, note := range msg.Notes {
		logging.Warn("config: %s", note)
	}
	if !samePath(cfg.ItemsPath, a.config.ItemsPath) && cfg.ItemsPath != "" {
		logging.Warn("items file changed to %s; it is not watched until restart", cfg.ItemsPath)
	}
	a.config = cfg
	a.keymap = keymap.New(cfg.KeyMap)
	a.styles = common.NewStyles(common.GetTheme(cfg.UI.Theme))
	a.toast.SetStyles(a.styles)
	a.ticker.SetKeyMap(a.keymap)
	a.ticker.SetStyles(a.styles)

	cmds := []tea.Cmd{a.ticker.Configure(ticker.OptionsFromConfig(cfg))}
	if cfg.ItemsPath != "" {
		cmds = append(cmds, a.reloadItems(cfg.ItemsPath))
	} else {
		cmds = append(cmds, a.ticker.SetItems(cfg.Items))
	}
	toast := "Config reloaded"
	level := messages.ToastSuccess
	if len(msg.Notes) > 0 {
		toast = msg.Notes[0]
		level = messages.ToastWarning
	}
	cmds = append(cmds, a.toast.Show(toast, level))
	return common.SafeBatch(cmds...)
}

package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/autoscroll/internal/ui/common"
)

func (a *App) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		a.quitting = true
		a.Shutdown()
		return tea.Quit
	case key.Matches(msg, a.keymap.Help):
		return a.toggleHelp()
	}
	var cmd tea.Cmd
	a.ticker, cmd = a.ticker.Update(msg)
	return cmd
}

// toggleHelp flips the key hint row and persists the choice.
func (a *App) toggleHelp() tea.Cmd {
	show := !a.ticker.ShowHelp()
	a.config.UI.ShowKeymapHints = show
	cmd := a.ticker.SetShowHelp(show)
	cfg := a.config
	save := common.SafeCmd(func() tea.Msg {
		if err := cfg.SaveUISettings(); err != nil {
			return common.ReportError("save settings", err, "Could not save settings")()
		}
		return nil
	})
	return common.SafeBatch(cmd, save)
}

package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/autoscroll/internal/perf"
)

// View renders the ticker pane with a status line below it.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.WindowTitle = a.config.Name

	if a.quitting {
		view.SetContent("")
		return view
	}
	if !a.ready {
		view.SetContent("Loading...")
		return view
	}

	view.SetContent(a.zone.Scan(a.render()))
	return view
}

func (a *App) render() string {
	return a.ticker.View() + "\n" + a.statusLine()
}

// statusLine shows the current toast, or the item under the leading edge.
func (a *App) statusLine() string {
	var line string
	if a.toast.Visible() {
		line = a.toast.View()
	} else if item, ok := a.ticker.CurrentItem(); ok {
		first, _, _ := strings.Cut(item.Text, "\n")
		line = a.styles.Muted.Render(first)
	}
	w := ansi.StringWidth(line)
	if w > a.width {
		return ansi.Truncate(line, a.width, "…")
	}
	return line + strings.Repeat(" ", a.width-w)
}

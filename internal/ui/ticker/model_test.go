package ticker

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/autoscroll/internal/config"
	"github.com/andyrewlee/autoscroll/internal/keymap"
	"github.com/andyrewlee/autoscroll/internal/scroll"
)

func testItems(n int) []config.Item {
	items := make([]config.Item, n)
	for i := range items {
		items[i] = config.Item{Text: fmt.Sprintf("item %d", i)}
	}
	return items
}

func newTestModel(t *testing.T, mutate func(*Options)) *Model {
	t.Helper()
	opts := Options{Name: "news", Scroll: scroll.DefaultOptions(), WheelStep: 1}
	if mutate != nil {
		mutate(&opts)
	}
	m := New(opts, keymap.New(config.KeyMapConfig{}))
	m.SetSize(20, 7)
	m.SetItems(testItems(10))
	return m
}

// fireNext delivers the earliest live timer, as the tea runtime would.
func fireNext(t *testing.T, m *Model) {
	t.Helper()
	if len(m.sched.live) == 0 {
		t.Fatalf("no live timers")
	}
	ids := make([]uint64, 0, len(m.sched.live))
	for id := range m.sched.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	m.Update(timerFiredMsg{Owner: m.owner, ID: ids[0]})
}

func running(t *testing.T, m *Model, frames int) {
	t.Helper()
	fireNext(t, m)
	if m.Phase() != scroll.PhaseRunning {
		t.Fatalf("expected running after autoplay, got %s", m.Phase())
	}
	for i := 0; i < frames; i++ {
		fireNext(t, m)
	}
}

func TestLayoutAndView(t *testing.T) {
	m := newTestModel(t, nil)
	if m.Phase() != scroll.PhaseWaiting {
		t.Fatalf("expected waiting after mount, got %s", m.Phase())
	}
	region := m.Viewport()
	if region.X != 1 || region.Y != 2 || region.Width != 18 || region.Height != 4 {
		t.Fatalf("unexpected viewport %+v", region)
	}

	running(t, m, 3)
	if m.Offset() != 3 {
		t.Fatalf("expected offset 3, got %v", m.Offset())
	}
	view := m.View()
	if h := lipgloss.Height(view); h != 7 {
		t.Fatalf("expected 7 rows, got %d", h)
	}
	lines := strings.Split(ansi.Strip(view), "\n")
	if !strings.Contains(lines[1], "news") || !strings.Contains(lines[1], "running") {
		t.Fatalf("unexpected title row %q", lines[1])
	}
	if !strings.Contains(lines[2], "item 3") || !strings.Contains(lines[5], "item 6") {
		t.Fatalf("unexpected window:\n%s", ansi.Strip(view))
	}
	if item, ok := m.CurrentItem(); !ok || item.Text != "item 3" {
		t.Fatalf("unexpected current item %+v", item)
	}
}

func TestHoverPausesTicker(t *testing.T) {
	m := newTestModel(t, nil)
	running(t, m, 2)

	m.Update(tea.MouseMotionMsg{X: 5, Y: 3})
	if !m.Hovered() || m.Phase() != scroll.PhasePaused {
		t.Fatalf("expected paused on hover, got %s", m.Phase())
	}
	m.Update(tea.MouseMotionMsg{X: 6, Y: 4})
	m.Update(tea.MouseMotionMsg{X: 0, Y: 0})
	if m.Hovered() || m.Phase() != scroll.PhaseRunning {
		t.Fatalf("expected running after leave, got %s", m.Phase())
	}
	if m.Offset() != 2 {
		t.Fatalf("hover moved the offset: %v", m.Offset())
	}
}

func TestWheelNudgesInsideViewport(t *testing.T) {
	m := newTestModel(t, nil)
	running(t, m, 2)

	m.Update(tea.MouseWheelMsg{X: 0, Y: 0, Button: tea.MouseWheelDown})
	if m.Phase() != scroll.PhaseRunning {
		t.Fatalf("wheel outside the viewport should be ignored")
	}
	m.Update(tea.MouseWheelMsg{X: 3, Y: 3, Button: tea.MouseWheelDown})
	if m.Phase() != scroll.PhasePaused || m.Offset() != 3 {
		t.Fatalf("expected paused at 3, got %s %v", m.Phase(), m.Offset())
	}
	m.Update(tea.MouseWheelMsg{X: 3, Y: 3, Button: tea.MouseWheelUp})
	if m.Offset() != 2 {
		t.Fatalf("expected offset 2, got %v", m.Offset())
	}
}

func TestWheelFollowsBackwardDirection(t *testing.T) {
	m := newTestModel(t, func(o *Options) {
		o.Scroll.Direction = scroll.DirectionBottom
		o.WheelStep = 2
	})
	running(t, m, 0)

	m.Update(tea.MouseWheelMsg{X: 3, Y: 3, Button: tea.MouseWheelDown})
	if m.Offset() != 8 {
		t.Fatalf("expected offset to wrap to 8, got %v", m.Offset())
	}
}

func TestKeysControlTicker(t *testing.T) {
	m := newTestModel(t, nil)
	running(t, m, 4)

	m.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if m.Phase() != scroll.PhaseStopped {
		t.Fatalf("expected stopped, got %s", m.Phase())
	}
	m.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if m.Phase() != scroll.PhaseRunning || m.Offset() != 4 {
		t.Fatalf("expected running from 4, got %s %v", m.Phase(), m.Offset())
	}

	m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if m.Offset() != 5 || m.Phase() != scroll.PhasePaused {
		t.Fatalf("expected keyboard nudge to pause at 5, got %s %v", m.Phase(), m.Offset())
	}

	m.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if m.Offset() != 0 || m.Phase() != scroll.PhaseWaiting {
		t.Fatalf("expected reset, got %s %v", m.Phase(), m.Offset())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatalf("copy should return a command")
	}
}

func TestShortContentStaysIdle(t *testing.T) {
	m := New(Options{Name: "short", Scroll: scroll.DefaultOptions()}, keymap.New(config.KeyMapConfig{}))
	m.SetSize(20, 10)
	m.SetItems(testItems(3))
	if m.Phase() != scroll.PhaseIdle {
		t.Fatalf("expected idle, got %s", m.Phase())
	}
	if len(m.sched.live) != 0 {
		t.Fatalf("idle ticker armed timers")
	}

	m.SetSize(20, 4)
	if m.Phase() != scroll.PhaseRunning {
		t.Fatalf("expected running after shrinking, got %s", m.Phase())
	}
}

func TestConfigureSwitchesAxis(t *testing.T) {
	m := newTestModel(t, nil)
	opts := m.opts
	opts.Scroll.Direction = scroll.DirectionLeft
	opts.Gap = 2
	m.Configure(opts)

	if got := m.scroller.Geometry().Axis; got != scroll.AxisHorizontal {
		t.Fatalf("expected horizontal axis, got %s", got)
	}
	if got := m.scroller.Geometry().ContentExtent; got != 80 {
		t.Fatalf("expected 10 items of 6 cells plus gap 2, got %v", got)
	}
}

func TestHelpRowShrinksViewport(t *testing.T) {
	m := newTestModel(t, nil)
	m.SetShowHelp(true)
	if h := m.Viewport().Height; h != 3 {
		t.Fatalf("expected viewport height 3 with help, got %d", h)
	}
	if h := lipgloss.Height(m.View()); h != 7 {
		t.Fatalf("expected 7 rows with help, got %d", h)
	}
}

func TestForeignAndStaleTimersIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(timerFiredMsg{Owner: m.owner + 1000, ID: 1})
	if m.Phase() != scroll.PhaseWaiting {
		t.Fatalf("foreign timer changed phase")
	}
	m.Stop()
	m.Update(timerFiredMsg{Owner: m.owner, ID: 1})
	if m.Phase() != scroll.PhaseStopped {
		t.Fatalf("stale timer changed phase")
	}

	m.Close()
	m.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if m.Phase() != scroll.PhaseStopped || len(m.sched.live) != 0 {
		t.Fatalf("closed ticker reacted to input")
	}
}

// Package ticker is the bubbletea component that hosts a scroller: it
// renders items into a TextSurface, turns mouse and key input into
// scroller calls, and runs engine timers as tea.Tick commands.
package ticker

import (
	"errors"
	"strconv"
	"strings"
	"sync/atomic"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/autoscroll/internal/config"
	"github.com/andyrewlee/autoscroll/internal/keymap"
	"github.com/andyrewlee/autoscroll/internal/messages"
	"github.com/andyrewlee/autoscroll/internal/perf"
	"github.com/andyrewlee/autoscroll/internal/scroll"
	"github.com/andyrewlee/autoscroll/internal/ui/common"
)

var nextOwner atomic.Uint64

// Options configures a ticker.
type Options struct {
	Name      string
	Scroll    scroll.Options
	Gap       int
	WheelStep float64
	// ItemKey names the item field used for keys; empty uses the item's
	// own key, then its position.
	ItemKey  string
	ShowHelp bool
}

// OptionsFromConfig extracts the ticker options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Name:      cfg.Name,
		Scroll:    cfg.Scroll,
		Gap:       cfg.Gap,
		WheelStep: cfg.WheelStep,
		ItemKey:   cfg.ItemKey,
		ShowHelp:  cfg.UI.ShowKeymapHints,
	}
}

// Model is the Bubbletea model for the ticker pane.
type Model struct {
	owner    uint64
	opts     Options
	items    []config.Item
	sched    *teaScheduler
	surface  *TextSurface
	scroller *scroll.Scroller[config.Item]

	styles common.Styles
	keymap keymap.KeyMap
	zone   *zone.Manager
	zoneID string

	width  int
	height int
	// viewport is the item window in screen coordinates.
	viewport common.HitRegion
	originX  int
	originY  int
	hovered  bool
	closed   bool
}

// New creates a ticker with no items.
func New(opts Options, km keymap.KeyMap) *Model {
	owner := nextOwner.Add(1)
	m := &Model{
		owner:   owner,
		opts:    opts,
		sched:   newTeaScheduler(owner),
		surface: NewTextSurface(),
		styles:  common.DefaultStyles(),
		keymap:  km,
		zoneID:  "ticker-" + strconv.FormatUint(owner, 10),
	}
	m.scroller = scroll.New[config.Item](scroll.Host{Surface: m.surface, Scheduler: m.sched}, opts.Scroll)
	m.scroller.SetItemKey(m.keyFunc())
	return m
}

// SetZone sets the shared zone manager for the viewport hit target.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetStyles sets the styles for the ticker.
func (m *Model) SetStyles(styles common.Styles) {
	m.styles = styles
	m.relayout()
}

// SetKeyMap replaces the key bindings.
func (m *Model) SetKeyMap(km keymap.KeyMap) { m.keymap = km }

// SetOrigin places the pane on screen, for mouse hit tests.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
	m.relayout()
}

// SetShowHelp toggles the key hint row.
func (m *Model) SetShowHelp(show bool) tea.Cmd {
	m.opts.ShowHelp = show
	return m.resize()
}

// ShowHelp reports whether the key hint row is shown.
func (m *Model) ShowHelp() bool { return m.opts.ShowHelp }

// Init drains timers armed before the program started.
func (m *Model) Init() tea.Cmd {
	return m.sched.drain()
}

// SetSize sets the pane size including its border.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return m.resize()
}

// SetItems replaces the items and restarts the ticker.
func (m *Model) SetItems(items []config.Item) tea.Cmd {
	if m.closed {
		return nil
	}
	m.items = items
	m.renderBlocks()
	m.scroller.SetItems(items)
	return m.sched.drain()
}

// Configure applies new options without recreating the ticker.
func (m *Model) Configure(opts Options) tea.Cmd {
	if m.closed {
		return nil
	}
	m.opts = opts
	m.relayout()
	m.renderBlocks()
	m.scroller.SetItemKey(m.keyFunc())
	m.scroller.Configure(opts.Scroll)
	if !opts.Scroll.IsHoverStop {
		m.hovered = false
	}
	return m.sched.drain()
}

// Start begins or resumes scrolling.
func (m *Model) Start() tea.Cmd {
	m.scroller.Start()
	return m.sched.drain()
}

// Stop halts scrolling until Start.
func (m *Model) Stop() tea.Cmd {
	m.scroller.Stop()
	return m.sched.drain()
}

// InitData rewinds and re-derives the phase.
func (m *Model) InitData() tea.Cmd {
	m.scroller.InitData()
	return m.sched.drain()
}

// Close cancels every timer; pending ticks are dropped when they arrive.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.scroller.Close()
	m.sched.stopAll()
}

// Phase returns the engine phase.
func (m *Model) Phase() scroll.Phase { return m.scroller.Phase() }

// Offset returns the engine offset.
func (m *Model) Offset() float64 { return m.scroller.Offset() }

// Items returns the current items.
func (m *Model) Items() []config.Item { return m.items }

// Hovered reports whether the pointer is over the viewport.
func (m *Model) Hovered() bool { return m.hovered }

// Viewport returns the item window in screen coordinates.
func (m *Model) Viewport() common.HitRegion { return m.viewport }

// CurrentItem returns the item at the leading edge of the viewport.
func (m *Model) CurrentItem() (config.Item, bool) {
	idx := m.surface.ItemAt(m.sequence())
	if idx < 0 || idx >= len(m.items) {
		return config.Item{}, false
	}
	return m.items[idx], true
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case timerFiredMsg:
		if msg.Owner != m.owner {
			return m, nil
		}
		m.sched.fire(msg.ID)
	case tea.MouseMotionMsg:
		m.handleMotion(msg.X, msg.Y)
	case tea.MouseWheelMsg:
		m.handleWheel(msg)
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	}
	return m, common.SafeBatch(cmd, m.sched.drain())
}

func (m *Model) handleMotion(x, y int) {
	inside := m.contains(x, y)
	if inside == m.hovered {
		return
	}
	m.hovered = inside
	if inside {
		m.scroller.HoverEnter()
	} else {
		m.scroller.HoverLeave()
	}
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) {
	if !m.contains(msg.X, msg.Y) {
		return
	}
	var sign float64
	switch msg.Button {
	case tea.MouseWheelDown, tea.MouseWheelRight:
		sign = 1
	case tea.MouseWheelUp, tea.MouseWheelLeft:
		sign = -1
	default:
		return
	}
	m.nudge(sign)
}

// nudge scrolls one wheel step toward (sign > 0) or away from the content
// end. Backward directions grow the offset the other way on screen.
func (m *Model) nudge(sign float64) {
	switch m.opts.Scroll.Direction {
	case scroll.DirectionBottom, scroll.DirectionRight:
		sign = -sign
	}
	step := m.opts.WheelStep
	if step <= 0 {
		step = 1
	}
	m.scroller.Wheel(sign * step)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Toggle):
		switch m.scroller.Phase() {
		case scroll.PhaseWaiting, scroll.PhaseRunning, scroll.PhasePaused:
			m.scroller.Stop()
		default:
			m.scroller.Start()
		}
	case key.Matches(msg, m.keymap.Reset):
		m.scroller.InitData()
	case key.Matches(msg, m.keymap.Back):
		m.nudge(-1)
	case key.Matches(msg, m.keymap.Forward):
		m.nudge(1)
	case key.Matches(msg, m.keymap.Copy):
		return m.copyCurrent()
	}
	return nil
}

func (m *Model) copyCurrent() tea.Cmd {
	item, ok := m.CurrentItem()
	if !ok {
		return common.ReportError("copy", errors.New("nothing to copy"), "Nothing to copy")
	}
	text := item.Text
	return common.SafeCmd(func() tea.Msg {
		if err := common.CopyToClipboard(text); err != nil {
			return messages.Error{Err: err, Context: "copy"}
		}
		return messages.Copied{Text: text}
	})
}

func (m *Model) contains(x, y int) bool {
	if m.zone != nil {
		if z := m.zone.Get(m.zoneID); !z.IsZero() {
			return x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY
		}
	}
	return m.viewport.Contains(x, y)
}

// View renders the pane.
func (m *Model) View() string {
	if m.width < 3 || m.height < 3 {
		return ""
	}
	defer perf.Time("view")()
	innerW := m.width - 2
	body := m.surface.Render(m.sequence(), m.styleItem)
	if m.zone != nil {
		body = m.zone.Mark(m.zoneID, body)
	}
	parts := []string{m.titleLine(innerW), body}
	if m.opts.ShowHelp {
		help := common.RenderHelpBar(m.styles, m.keymap.ShortHelp(), innerW)
		first, _, _ := strings.Cut(help, "\n")
		parts = append(parts, fit(first, innerW))
	}
	return m.styles.Pane.Render(strings.Join(parts, "\n"))
}

func (m *Model) titleLine(width int) string {
	phase := m.scroller.Phase()
	badge := m.phaseStyle(phase).Render(phase.String())
	room := width - lipgloss.Width(badge) - 1
	if room < 1 {
		return fit(badge, width)
	}
	name := runewidth.Truncate(m.opts.Name, room, "…")
	pad := width - runewidth.StringWidth(name) - lipgloss.Width(badge)
	return m.styles.Title.Render(name) + strings.Repeat(" ", max(pad, 1)) + badge
}

func (m *Model) phaseStyle(p scroll.Phase) lipgloss.Style {
	switch p {
	case scroll.PhaseWaiting:
		return m.styles.PhaseWaiting
	case scroll.PhaseRunning:
		return m.styles.PhaseRunning
	case scroll.PhasePaused:
		return m.styles.PhasePaused
	case scroll.PhaseStopped:
		return m.styles.PhaseStopped
	default:
		return m.styles.PhaseIdle
	}
}

func (m *Model) styleItem(_ int, index int, block string) string {
	style := m.styles.Item
	if index%2 == 1 {
		style = m.styles.ItemAlt
	}
	if m.opts.Scroll.Direction.Axis() == scroll.AxisVertical {
		w, _ := m.surface.Viewport()
		return style.Width(w).Render(block)
	}
	return style.Render(block)
}

func (m *Model) sequence() []int {
	rendered := m.scroller.Rendered()
	seq := make([]int, len(rendered))
	for i, r := range rendered {
		seq[i] = r.Index
	}
	return seq
}

// renderBlocks lays out one copy of the items at the current width.
func (m *Model) renderBlocks() {
	w, _ := m.surface.Viewport()
	axis := m.opts.Scroll.Direction.Axis()
	blocks := make([]string, len(m.items))
	for i, it := range m.items {
		if axis == scroll.AxisHorizontal {
			blocks[i] = it.Text
			continue
		}
		lines := strings.Split(it.Text, "\n")
		for j, line := range lines {
			lines[j] = runewidth.Truncate(line, w, "…")
		}
		blocks[i] = strings.Join(lines, "\n")
	}
	m.surface.SetBlocks(blocks, axis, m.opts.Gap)
}

// relayout recomputes the viewport window from the pane size.
func (m *Model) relayout() {
	innerW := max(m.width-2, 0)
	innerH := max(m.height-2-1, 0)
	if m.opts.ShowHelp {
		innerH = max(innerH-1, 0)
	}
	m.surface.SetViewport(innerW, innerH)
	m.viewport = common.HitRegion{
		ID:     m.zoneID,
		X:      m.originX + 1,
		Y:      m.originY + 2,
		Width:  innerW,
		Height: innerH,
	}
}

func (m *Model) resize() tea.Cmd {
	if m.closed {
		return nil
	}
	m.relayout()
	m.renderBlocks()
	m.scroller.Resize()
	return m.sched.drain()
}

func (m *Model) keyFunc() scroll.KeyFunc[config.Item] {
	if fk := scroll.FieldKey[config.Item](m.opts.ItemKey); fk != nil {
		return fk
	}
	return func(it config.Item, index int) string {
		if it.Key != "" {
			return it.Key
		}
		return strconv.Itoa(index)
	}
}

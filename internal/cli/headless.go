package cli

import (
	"strings"

	"github.com/andyrewlee/autoscroll/internal/clock"
	"github.com/andyrewlee/autoscroll/internal/config"
	"github.com/andyrewlee/autoscroll/internal/scroll"
	"github.com/andyrewlee/autoscroll/internal/ui/ticker"
)

// headless hosts a scroller on a plain text surface with no terminal UI.
// It is driven by whichever scheduler owns it: clock.Manual for simulate,
// the driver loop for run.
type headless struct {
	cfg      *config.Config
	surface  *ticker.TextSurface
	scroller *scroll.Scroller[config.Item]
	items    []config.Item
}

func newHeadless(cfg *config.Config, items []config.Item, sched clock.Scheduler, width, height int) *headless {
	h := &headless{
		cfg:     cfg,
		surface: ticker.NewTextSurface(),
	}
	h.surface.SetViewport(width, height)
	h.scroller = scroll.New[config.Item](scroll.Host{Surface: h.surface, Scheduler: sched}, cfg.Scroll)
	if key := scroll.FieldKey[config.Item](cfg.ItemKey); key != nil {
		h.scroller.SetItemKey(key)
	}
	h.setItems(items)
	return h
}

func (h *headless) setItems(items []config.Item) {
	h.items = items
	blocks := make([]string, len(items))
	for i, it := range items {
		blocks[i] = it.Text
	}
	h.surface.SetBlocks(blocks, h.cfg.Scroll.Direction.Axis(), h.cfg.Gap)
	h.scroller.SetItems(items)
}

func (h *headless) resize(width, height int) {
	h.surface.SetViewport(width, height)
	h.scroller.Resize()
}

// wheel applies n wheel notches. Positive notches move toward the content
// end whichever way the content travels.
func (h *headless) wheel(n float64) {
	switch h.cfg.Scroll.Direction {
	case scroll.DirectionBottom, scroll.DirectionRight:
		n = -n
	}
	h.scroller.Wheel(n * h.cfg.WheelStep)
}

func (h *headless) sequence() []int {
	rendered := h.scroller.Rendered()
	seq := make([]int, len(rendered))
	for i, r := range rendered {
		seq[i] = r.Index
	}
	return seq
}

// current returns the item at the leading edge of the viewport.
func (h *headless) current() (config.Item, bool) {
	idx := h.surface.ItemAt(h.sequence())
	if idx < 0 || idx >= len(h.items) {
		return config.Item{}, false
	}
	return h.items[idx], true
}

func (h *headless) currentText() string {
	item, ok := h.current()
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(item.Text, "\n")
	return first
}

func (h *headless) window() string {
	return h.surface.Render(h.sequence(), nil)
}

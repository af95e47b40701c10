package ticker

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/autoscroll/internal/scroll"
)

// TextSurface lays items out in terminal cells and implements
// scroll.Surface. Vertical tickers stack item blocks as rows; horizontal
// tickers put every item on one line. Gap blank rows or cells follow each
// item.
type TextSurface struct {
	width, height int
	axis          scroll.Axis
	gap           int

	blocks  []string
	extents []int
	content int

	placement scroll.Placement
}

// NewTextSurface returns an empty surface.
func NewTextSurface() *TextSurface {
	return &TextSurface{}
}

// SetViewport sets the visible window in cells.
func (s *TextSurface) SetViewport(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// Viewport returns the visible window in cells.
func (s *TextSurface) Viewport() (int, int) {
	return s.width, s.height
}

// SetBlocks replaces the rendered items of one copy. Horizontal layouts
// flatten multi-line blocks to one line.
func (s *TextSurface) SetBlocks(blocks []string, axis scroll.Axis, gap int) {
	s.axis = axis
	s.gap = max(gap, 0)
	s.blocks = make([]string, len(blocks))
	s.extents = make([]int, len(blocks))
	s.content = 0
	for i, b := range blocks {
		if axis == scroll.AxisHorizontal {
			b = strings.Join(strings.Fields(strings.ReplaceAll(b, "\n", " ")), " ")
			s.extents[i] = ansi.StringWidth(b) + s.gap
		} else {
			s.extents[i] = lipgloss.Height(b) + s.gap
		}
		s.blocks[i] = b
		s.content += s.extents[i]
	}
}

// ViewportSize implements scroll.Surface.
func (s *TextSurface) ViewportSize() scroll.Size {
	return scroll.Size{Width: float64(s.width), Height: float64(s.height)}
}

// ContentSize implements scroll.Surface. The cross axis is the viewport's.
func (s *TextSurface) ContentSize() scroll.Size {
	if s.axis == scroll.AxisHorizontal {
		return scroll.Size{Width: float64(s.content), Height: float64(s.height)}
	}
	return scroll.Size{Width: float64(s.width), Height: float64(s.content)}
}

// Apply implements scroll.Surface.
func (s *TextSurface) Apply(p scroll.Placement) {
	s.placement = p
}

// Placement returns the last placement applied.
func (s *TextSurface) Placement() scroll.Placement {
	return s.placement
}

// start is the first visible cell of the rendered sequence.
func (s *TextSurface) start() int {
	return int(math.Floor(s.placement.Start()))
}

// Render draws the visible window of seq, the rendered sequence given as
// item indexes. style, when set, styles each item by its position in seq.
// The result is exactly width x height cells.
func (s *TextSurface) Render(seq []int, style func(pos, index int, block string) string) string {
	if s.width == 0 || s.height == 0 {
		return ""
	}
	if style == nil {
		style = func(_, _ int, block string) string { return block }
	}
	if s.axis == scroll.AxisHorizontal {
		return s.renderHorizontal(seq, style)
	}
	return s.renderVertical(seq, style)
}

func (s *TextSurface) renderVertical(seq []int, style func(int, int, string) string) string {
	from := s.start()
	to := from + s.height
	rows := make([]string, 0, s.height)
	for y := from; y < 0 && y < to; y++ {
		rows = append(rows, "")
	}
	line := 0
	for pos, idx := range seq {
		if line >= to {
			break
		}
		if idx < 0 || idx >= len(s.blocks) {
			continue
		}
		extent := s.extents[idx]
		if line+extent <= from {
			line += extent
			continue
		}
		blockRows := strings.Split(style(pos, idx, s.blocks[idx]), "\n")
		for r := 0; r < extent; r++ {
			y := line + r
			if y < from || y >= to {
				continue
			}
			if r < len(blockRows) {
				rows = append(rows, blockRows[r])
			} else {
				rows = append(rows, "")
			}
		}
		line += extent
	}
	for len(rows) < s.height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = fit(row, s.width)
	}
	return strings.Join(rows, "\n")
}

func (s *TextSurface) renderHorizontal(seq []int, style func(int, int, string) string) string {
	from := s.start()
	to := from + s.width
	var b strings.Builder
	lead := 0
	if from < 0 {
		lead = -from
		b.WriteString(strings.Repeat(" ", min(lead, s.width)))
		from = 0
	}
	col := 0
	gap := strings.Repeat(" ", s.gap)
	for pos, idx := range seq {
		if col >= to {
			break
		}
		if idx < 0 || idx >= len(s.blocks) {
			continue
		}
		extent := s.extents[idx]
		if col+extent <= from {
			col += extent
			continue
		}
		cell := style(pos, idx, s.blocks[idx]) + gap
		b.WriteString(ansi.Cut(cell, max(from-col, 0), min(to-col, extent)))
		col += extent
	}
	row := b.String()
	rows := make([]string, s.height)
	rows[0] = fit(row, s.width)
	for i := 1; i < s.height; i++ {
		rows[i] = strings.Repeat(" ", s.width)
	}
	return strings.Join(rows, "\n")
}

// ItemAt returns the item index of seq under the leading edge of the
// viewport, or -1.
func (s *TextSurface) ItemAt(seq []int) int {
	at := max(s.start(), 0)
	pos := 0
	for _, idx := range seq {
		if idx < 0 || idx >= len(s.extents) {
			continue
		}
		if at < pos+s.extents[idx] {
			return idx
		}
		pos += s.extents[idx]
	}
	return -1
}

// fit truncates or pads line to exactly width cells.
func fit(line string, width int) string {
	w := ansi.StringWidth(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-w)
}

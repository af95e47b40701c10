package common

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
)

// Styles contains all the application styles
type Styles struct {
	Pane  lipgloss.Style
	Title lipgloss.Style
	Muted lipgloss.Style

	// Items alternate between Item and ItemAlt.
	Item    lipgloss.Style
	ItemAlt lipgloss.Style

	// Phase badges in the title bar
	PhaseIdle    lipgloss.Style
	PhaseWaiting lipgloss.Style
	PhaseRunning lipgloss.Style
	PhasePaused  lipgloss.Style
	PhaseStopped lipgloss.Style

	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() Styles {
	return NewStyles(GruvboxTheme())
}

// NewStyles builds the application styles from a theme.
func NewStyles(theme Theme) Styles {
	c := theme.Colors
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(c.Background)
	toast := lipgloss.NewStyle().Padding(0, 1).Foreground(c.Background)
	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Border),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Accent),
		Muted: lipgloss.NewStyle().Foreground(c.Muted),

		Item:    lipgloss.NewStyle().Foreground(c.Foreground),
		ItemAlt: lipgloss.NewStyle().Foreground(c.Foreground).Background(c.Stripe),

		PhaseIdle:    badge.Background(c.Muted),
		PhaseWaiting: badge.Background(c.Info),
		PhaseRunning: badge.Background(c.Success),
		PhasePaused:  badge.Background(c.Warning),
		PhaseStopped: badge.Background(c.Error),

		Help:     lipgloss.NewStyle().Foreground(c.Muted),
		HelpKey:  lipgloss.NewStyle().Foreground(c.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(c.Muted),

		ToastSuccess: toast.Background(c.Success),
		ToastError:   toast.Background(c.Error),
		ToastWarning: toast.Background(c.Warning),
		ToastInfo:    toast.Background(c.Info),
	}
}

// RenderHelpItem renders a single help item for inline help bars
func RenderHelpItem(styles Styles, key, desc string) string {
	return styles.HelpKey.Render(key) + styles.HelpDesc.Render(":"+desc)
}

// RenderHelpBar renders bindings as help items wrapped to width.
func RenderHelpBar(styles Styles, bindings []key.Binding, width int) string {
	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		items = append(items, RenderHelpItem(styles, h.Key, h.Desc))
	}
	return strings.Join(WrapHelpItems(items, width), "\n")
}

// WrapHelpItems wraps pre-rendered help items into multiple lines constrained by width.
func WrapHelpItems(items []string, width int) []string {
	if len(items) == 0 {
		return []string{""}
	}
	const sep = "  "
	if width <= 0 {
		return []string{strings.Join(items, sep)}
	}

	var lines []string
	current := items[0]
	currentWidth := lipgloss.Width(current)
	for _, item := range items[1:] {
		w := lipgloss.Width(item)
		if currentWidth+len(sep)+w <= width {
			current += sep + item
			currentWidth += len(sep) + w
			continue
		}
		lines = append(lines, current)
		current = item
		currentWidth = w
	}
	return append(lines, current)
}

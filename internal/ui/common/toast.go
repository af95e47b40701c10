package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/autoscroll/internal/messages"
)

// Toast represents a notification message
type Toast struct {
	Message string
	Level   messages.ToastLevel
}

// ToastModel manages toast notifications
type ToastModel struct {
	current   *Toast
	showUntil time.Time
	seq       uint64
	styles    Styles
	now       func() time.Time
}

// NewToastModel creates a new toast model
func NewToastModel() *ToastModel {
	return &ToastModel{
		styles: DefaultStyles(),
		now:    time.Now,
	}
}

// SetStyles updates the toast styles (for theme changes).
func (m *ToastModel) SetStyles(styles Styles) {
	m.styles = styles
}

// ToastDismissed is sent when a toast should be dismissed. Seq ties it to
// the toast that scheduled it so a newer toast is not cut short.
type ToastDismissed struct {
	Seq uint64
}

// Show displays a toast notification
func (m *ToastModel) Show(message string, level messages.ToastLevel) tea.Cmd {
	d := toastDuration(level)
	m.seq++
	seq := m.seq
	m.current = &Toast{Message: message, Level: level}
	m.showUntil = m.now().Add(d)
	return SafeTick(d, func(time.Time) tea.Msg {
		return ToastDismissed{Seq: seq}
	})
}

func toastDuration(level messages.ToastLevel) time.Duration {
	switch level {
	case messages.ToastError:
		return 5 * time.Second
	case messages.ToastWarning:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

// Update handles messages
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ToastDismissed:
		if msg.Seq == m.seq {
			m.current = nil
		}
	case messages.Toast:
		return m, m.Show(msg.Message, msg.Level)
	}
	return m, nil
}

// View renders the toast notification
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}

	var style lipgloss.Style
	icon := "i "
	switch m.current.Level {
	case messages.ToastSuccess:
		style = m.styles.ToastSuccess
		icon = "✓ "
	case messages.ToastError:
		style = m.styles.ToastError
		icon = "✗ "
	case messages.ToastWarning:
		style = m.styles.ToastWarning
		icon = "! "
	default:
		style = m.styles.ToastInfo
	}
	return style.Render(icon + m.current.Message)
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.current != nil && m.now().Before(m.showUntil)
}

// Dismiss immediately hides the toast
func (m *ToastModel) Dismiss() {
	m.current = nil
}

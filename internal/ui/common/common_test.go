package common

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/autoscroll/internal/messages"
)

func TestSafeCmdRecoversPanics(t *testing.T) {
	cmd := SafeCmd(func() tea.Msg { panic("boom") })
	msg := cmd()
	errMsg, ok := msg.(messages.Error)
	if !ok {
		t.Fatalf("expected messages.Error, got %T", msg)
	}
	if !errMsg.Logged || !strings.Contains(errMsg.Error(), "boom") {
		t.Fatalf("unexpected error message: %+v", errMsg)
	}
	if SafeCmd(nil) != nil {
		t.Fatalf("SafeCmd(nil) should be nil")
	}
	if SafeBatch(nil, nil) != nil {
		t.Fatalf("SafeBatch of nils should be nil")
	}
}

func TestReportErrorNilIsNoop(t *testing.T) {
	if ReportError("ctx", nil, "") != nil {
		t.Fatalf("expected nil cmd for nil error")
	}
	if ReportError("ctx", errors.New("x"), "") == nil {
		t.Fatalf("expected cmd for error")
	}
}

func TestToastLifecycle(t *testing.T) {
	now := time.Unix(100, 0)
	m := NewToastModel()
	m.now = func() time.Time { return now }

	if cmd := m.Show("saved", messages.ToastSuccess); cmd == nil {
		t.Fatalf("expected dismiss tick")
	}
	if !m.Visible() || !strings.Contains(m.View(), "saved") {
		t.Fatalf("toast should be visible")
	}

	m.Show("second", messages.ToastError)
	m, _ = m.Update(ToastDismissed{Seq: 1})
	if !m.Visible() {
		t.Fatalf("stale dismissal hid the newer toast")
	}
	m, _ = m.Update(ToastDismissed{Seq: 2})
	if m.Visible() || m.View() != "" {
		t.Fatalf("toast should be dismissed")
	}

	m.Show("expires", messages.ToastInfo)
	now = now.Add(4 * time.Second)
	if m.Visible() {
		t.Fatalf("info toast should expire after 3s")
	}
}

func TestToastFromMessage(t *testing.T) {
	m := NewToastModel()
	_, cmd := m.Update(messages.Toast{Message: "hello", Level: messages.ToastWarning})
	if cmd == nil || !m.Visible() {
		t.Fatalf("messages.Toast should show a toast")
	}
}

func TestWrapHelpItems(t *testing.T) {
	items := []string{"aaaa", "bbbb", "cccc"}
	lines := WrapHelpItems(items, 10)
	if len(lines) != 2 || lines[0] != "aaaa  bbbb" || lines[1] != "cccc" {
		t.Fatalf("unexpected wrap: %q", lines)
	}
	if got := WrapHelpItems(items, 0); len(got) != 1 {
		t.Fatalf("width 0 should not wrap: %q", got)
	}
	if got := WrapHelpItems(nil, 10); len(got) != 1 || got[0] != "" {
		t.Fatalf("empty input should yield one empty line: %q", got)
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme(" Nord "); got.ID != ThemeNord {
		t.Fatalf("expected nord, got %s", got.ID)
	}
	if got := GetTheme("missing"); got.ID != ThemeGruvbox {
		t.Fatalf("expected gruvbox fallback, got %s", got.ID)
	}
	for _, theme := range AvailableThemes() {
		_ = NewStyles(theme)
	}
}

func TestHitRegion(t *testing.T) {
	h := HitRegion{X: 2, Y: 3, Width: 4, Height: 2}
	if !h.Contains(2, 3) || !h.Contains(5, 4) || h.Contains(6, 4) || h.Contains(2, 5) {
		t.Fatalf("Contains bounds wrong")
	}
	if x, y := h.Local(5, 4); x != 3 || y != 1 {
		t.Fatalf("Local = %d,%d", x, y)
	}
	if !(HitRegion{Width: 3}).Empty() {
		t.Fatalf("zero height should be empty")
	}
}

func TestCopyToClipboardUsesWriter(t *testing.T) {
	var got string
	old := clipboardWrite
	clipboardWrite = func(s string) error { got = s; return nil }
	defer func() { clipboardWrite = old }()

	if err := CopyToClipboard("ticker"); err != nil {
		t.Fatalf("CopyToClipboard: %v", err)
	}
	if got != "ticker" && got != "" {
		t.Fatalf("unexpected clipboard write %q", got)
	}
}

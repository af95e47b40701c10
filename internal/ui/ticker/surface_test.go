package ticker

import (
	"strings"
	"testing"
	"time"

	"github.com/andyrewlee/autoscroll/internal/scroll"
)

func TestTextSurfaceVertical(t *testing.T) {
	s := NewTextSurface()
	s.SetViewport(3, 2)
	s.SetBlocks([]string{"a", "b\nc", "d"}, scroll.AxisVertical, 0)

	if got := s.ContentSize(); got.Height != 4 || got.Width != 3 {
		t.Fatalf("unexpected content size %+v", got)
	}
	s.Apply(scroll.Placement{Axis: scroll.AxisVertical, Translate: -1})

	seq := []int{0, 1, 2, 0, 1, 2}
	if got := s.Render(seq, nil); got != "b  \nc  " {
		t.Fatalf("unexpected window %q", got)
	}
	if got := s.ItemAt(seq); got != 1 {
		t.Fatalf("expected item 1 at the edge, got %d", got)
	}

	s.Apply(scroll.Placement{Axis: scroll.AxisVertical, Translate: -3})
	if got := s.Render(seq, nil); got != "d  \na  " {
		t.Fatalf("expected wrap into the second copy, got %q", got)
	}
}

func TestTextSurfaceHorizontal(t *testing.T) {
	s := NewTextSurface()
	s.SetViewport(4, 2)
	s.SetBlocks([]string{"ab", "c\nd"}, scroll.AxisHorizontal, 1)

	if got := s.ContentSize().Width; got != 7 {
		t.Fatalf("expected flattened width 7, got %v", got)
	}
	s.Apply(scroll.Placement{Axis: scroll.AxisHorizontal, Translate: -2})
	got := s.Render([]int{0, 1, 0, 1}, nil)
	rows := strings.Split(got, "\n")
	if len(rows) != 2 || rows[0] != " c d" || rows[1] != "    " {
		t.Fatalf("unexpected window %q", got)
	}
}

func TestTextSurfaceStyleAndEmpty(t *testing.T) {
	s := NewTextSurface()
	if s.Render([]int{0}, nil) != "" {
		t.Fatalf("zero viewport should render nothing")
	}
	s.SetViewport(5, 1)
	s.SetBlocks([]string{"x", "y"}, scroll.AxisVertical, 0)
	var positions []int
	got := s.Render([]int{0, 1}, func(pos, index int, block string) string {
		positions = append(positions, pos)
		return strings.ToUpper(block)
	})
	if got != "X    " || len(positions) != 1 || positions[0] != 0 {
		t.Fatalf("unexpected styled render %q %v", got, positions)
	}
	if s.ItemAt(nil) != -1 {
		t.Fatalf("empty sequence has no item")
	}
}

func TestFit(t *testing.T) {
	if got := fit("abcdef", 3); got != "abc" {
		t.Fatalf("fit truncate = %q", got)
	}
	if got := fit("ab", 4); got != "ab  " {
		t.Fatalf("fit pad = %q", got)
	}
}

func TestTeaSchedulerTimers(t *testing.T) {
	s := newTeaScheduler(7)
	fired := 0
	s.AfterFunc(time.Second, func() { fired++ })
	second := s.AfterFunc(time.Second, func() { fired += 10 })

	if cmd := s.drain(); cmd == nil {
		t.Fatalf("expected pending tick commands")
	}
	if s.drain() != nil {
		t.Fatalf("drain should empty the queue")
	}
	if !second.Stop() || second.Stop() {
		t.Fatalf("Stop should succeed exactly once")
	}
	s.fire(2)
	s.fire(1)
	s.fire(1)
	if fired != 1 {
		t.Fatalf("expected one callback, got %d", fired)
	}

	s.AfterFunc(time.Second, func() { fired++ })
	s.stopAll()
	s.fire(3)
	if fired != 1 || s.drain() != nil {
		t.Fatalf("stopAll should drop timers and pending ticks")
	}
}

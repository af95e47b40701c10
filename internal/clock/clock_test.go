package clock

import (
	"testing"
	"time"
)

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(20 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected [a b] after 20ms, got %v", order)
	}
	m.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("expected c at 30ms, got %v", order)
	}
}

func TestManualFiresTimersScheduledDuringAdvance(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := 0
	var tick func()
	tick = func() {
		fired++
		m.AfterFunc(10*time.Millisecond, tick)
	}
	m.AfterFunc(10*time.Millisecond, tick)

	m.Advance(100 * time.Millisecond)
	if fired != 10 {
		t.Fatalf("expected 10 chained firings, got %d", fired)
	}
	if got := m.Now().Sub(time.Unix(0, 0)); got != 100*time.Millisecond {
		t.Fatalf("expected clock at 100ms, got %s", got)
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := false
	timer := m.AfterFunc(5*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Fatalf("expected Stop to report a pending timer")
	}
	if timer.Stop() {
		t.Fatalf("expected second Stop to report false")
	}
	m.Advance(time.Second)
	if fired {
		t.Fatalf("stopped timer fired")
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", m.Pending())
	}
}

func TestManualZeroDelayFiresOnZeroAdvance(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := false
	m.AfterFunc(0, func() { fired = true })
	if d, ok := m.NextDue(); !ok || d != 0 {
		t.Fatalf("expected next due 0, got %s ok=%v", d, ok)
	}
	m.Advance(0)
	if !fired {
		t.Fatalf("expected zero-delay timer to fire")
	}
}

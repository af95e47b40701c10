package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTriggerCollapsesBurst(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{}, 4)
	d := New(30*time.Millisecond, func() {
		calls.Add(1)
		done <- struct{}{}
	})

	d.Trigger()
	d.Trigger()
	d.Trigger()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for debounced call")
	}
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
}

func TestStopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	d := New(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no calls after Stop, got %d", got)
	}
}

func TestLateFireFromSupersededTimerIsDropped(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })
	defer d.Stop()

	d.Trigger()
	d.mu.Lock()
	first := d.gen
	d.mu.Unlock()

	// The first timer fired but lost the race for the lock to a new Trigger.
	d.Trigger()
	d.fire(first)
	if got := calls.Load(); got != 0 {
		t.Fatalf("superseded timer ran fn: %d calls", got)
	}

	d.mu.Lock()
	latest := d.gen
	d.mu.Unlock()
	d.fire(latest)
	d.fire(latest)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 call, got %d", got)
	}
}

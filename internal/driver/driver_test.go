package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andyrewlee/autoscroll/internal/scroll"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	l := New(0)
	l.Start(ctx)
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return l, cancel
}

func TestLoopRunsCommandsInOrder(t *testing.T) {
	l, _ := startLoop(t)
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		if !l.Do(func() { got = append(got, i) }) {
			t.Fatalf("Do rejected command %d", i)
		}
	}
	if err := l.Call(context.Background(), func() {}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("commands ran out of order: %v", got)
		}
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 commands, got %d", len(got))
	}
}

func TestLoopSurvivesPanics(t *testing.T) {
	l, _ := startLoop(t)
	l.Do(func() { panic("boom") })
	ran := false
	if err := l.Call(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Call after panic: %v", err)
	}
	if !ran {
		t.Fatalf("loop stopped after a panicking command")
	}
}

func TestLoopClosedRejectsWork(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()
	<-l.Done()
	if l.Do(func() {}) {
		t.Fatalf("Do accepted work after close")
	}
	if err := l.Call(context.Background(), func() {}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestRunTwiceFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := New(1)
	go func() { _ = l.Run(ctx) }()
	if err := l.Call(ctx, func() {}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if err := l.Run(ctx); err == nil {
		t.Fatalf("expected second Run to fail")
	}
}

func TestAfterFuncDeliversOnLoop(t *testing.T) {
	l, _ := startLoop(t)
	fired := make(chan struct{})
	counter := 0
	l.AfterFunc(5*time.Millisecond, func() {
		counter++
		close(fired)
	})
	stopped := l.AfterFunc(5*time.Millisecond, func() { counter += 100 })
	if !stopped.Stop() {
		t.Fatalf("expected Stop on a pending timer to report true")
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("timer never fired")
	}
	time.Sleep(20 * time.Millisecond)
	var seen int
	if err := l.Call(context.Background(), func() { seen = counter }); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if seen != 1 {
		t.Fatalf("expected only the live timer to fire, counter=%d", seen)
	}
}

type staticSurface struct {
	last scroll.Placement
}

func (s *staticSurface) ViewportSize() scroll.Size { return scroll.Size{Height: 4} }
func (s *staticSurface) ContentSize() scroll.Size  { return scroll.Size{Height: 10} }
func (s *staticSurface) Apply(p scroll.Placement)  { s.last = p }

func TestScrollerRunsOnLoop(t *testing.T) {
	l, _ := startLoop(t)
	surface := &staticSurface{}
	opts := scroll.DefaultOptions()
	opts.FrameInterval = time.Millisecond

	var s *scroll.Scroller[string]
	err := l.Call(context.Background(), func() {
		s = scroll.New[string](scroll.Host{Surface: surface, Scheduler: l}, opts)
		s.SetItems([]string{"a", "b", "c", "d", "e"})
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		var offset float64
		var phase scroll.Phase
		_ = l.Call(context.Background(), func() {
			offset = s.Offset()
			phase = s.Phase()
		})
		if phase == scroll.PhaseRunning && offset > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("scroller never started moving: phase=%s offset=%v", phase, offset)
		}
		time.Sleep(5 * time.Millisecond)
	}

	_ = l.Call(context.Background(), func() { s.Close() })
}

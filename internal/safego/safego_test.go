package safego

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_NoPanic(t *testing.T) {
	var called bool
	Run("test", func() {
		called = true
	})
	if !called {
		t.Error("function was not called")
	}
}

func TestRun_CallsPanicHandler(t *testing.T) {
	var (
		mu           sync.Mutex
		handlerName  string
		handlerValue any
	)

	SetPanicHandler(func(name string, recovered any, stack []byte) {
		mu.Lock()
		handlerName = name
		handlerValue = recovered
		mu.Unlock()
	})
	defer SetPanicHandler(nil)

	Run("frame-loop", func() {
		panic("oops")
	})

	mu.Lock()
	defer mu.Unlock()
	if handlerName != "frame-loop" {
		t.Errorf("expected name 'frame-loop', got %q", handlerName)
	}
	if handlerValue != "oops" {
		t.Errorf("expected recovered value 'oops', got %v", handlerValue)
	}
}

func TestRun_EmptyNameAndHandlerPanic(t *testing.T) {
	var got atomic.Value
	SetPanicHandler(func(name string, recovered any, stack []byte) {
		got.Store(name)
		panic("handler panic")
	})
	defer SetPanicHandler(nil)

	Run("", func() {
		panic("test")
	})

	if name, _ := got.Load().(string); name != "goroutine" {
		t.Errorf("expected default name 'goroutine', got %q", name)
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SetPanicHandler(func(name string, recovered any, stack []byte) {
		close(done)
	})
	defer SetPanicHandler(nil)

	Go("test-panic", func() {
		panic("goroutine panic")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic handler")
	}
}

func TestGoContext_RunsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)

	GoContext(ctx, "watcher", func(ctx context.Context) error {
		<-ctx.Done()
		finished <- ctx.Err()
		return ctx.Err()
	})
	cancel()

	select {
	case err := <-finished:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for goroutine")
	}
}

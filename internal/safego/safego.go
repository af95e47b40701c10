package safego

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/andyrewlee/autoscroll/internal/logging"
)

// PanicHandler receives panic details from recovered goroutines.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// Run executes fn and converts panics into logged errors.
// Runtime-fatal errors (e.g., concurrent map writes) are not recoverable.
func Run(name string, fn func()) {
	defer recoverPanic(name)
	fn()
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}

// GoContext runs fn in a new goroutine with panic recovery and logs any
// error it returns other than context cancellation.
func GoContext(ctx context.Context, name string, fn func(context.Context) error) {
	Go(name, func() {
		err := fn(ctx)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		logging.Warn("%s stopped: %v", name, err)
	})
}

func recoverPanic(name string) {
	r := recover()
	if r == nil {
		return
	}
	label := name
	if label == "" {
		label = "goroutine"
	}
	stack := debug.Stack()
	logging.Error("panic in %s: %v\n%s", label, r, stack)
	panicHandlerMu.RLock()
	handler := panicHandler
	panicHandlerMu.RUnlock()
	if handler != nil {
		func() {
			defer func() { _ = recover() }()
			handler(label, r, stack)
		}()
	}
}

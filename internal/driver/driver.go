// Package driver runs a scroller outside of a TUI. A Loop owns one
// goroutine; every engine call and every timer callback is funnelled
// through it so the engine never sees concurrent access.
package driver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/andyrewlee/autoscroll/internal/clock"
	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/safego"
)

// ErrClosed is returned once the loop has stopped.
var ErrClosed = errors.New("driver: loop closed")

const defaultQueue = 64

// Loop is a single-consumer command queue. It implements clock.Scheduler
// on real time, delivering timer callbacks on the loop goroutine.
type Loop struct {
	cmds chan func()
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	running bool
}

// New returns a loop with room for queue pending commands.
func New(queue int) *Loop {
	if queue <= 0 {
		queue = defaultQueue
	}
	return &Loop{
		cmds: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Run executes queued commands until ctx is done. A panicking command is
// logged and the loop keeps going.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("driver: loop already running")
	}
	l.running = true
	l.mu.Unlock()
	defer l.close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.cmds:
			safego.Run("driver.command", fn)
		}
	}
}

// Start runs the loop on its own goroutine.
func (l *Loop) Start(ctx context.Context) {
	safego.GoContext(ctx, "driver.loop", l.Run)
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Do queues fn. It reports false once the loop is closed.
func (l *Loop) Do(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.cmds <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call queues fn and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Do(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Now returns wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc fires fn on the loop goroutine after d. A callback that finds
// the loop closed is dropped.
func (l *Loop) AfterFunc(d time.Duration, fn func()) clock.Timer {
	return time.AfterFunc(d, func() {
		if !l.Do(fn) {
			logging.Debug("driver: timer fired after close")
		}
	})
}

func (l *Loop) close() {
	l.once.Do(func() { close(l.done) })
}

var _ clock.Scheduler = (*Loop)(nil)

package scroll

import (
	"time"

	"github.com/andyrewlee/autoscroll/internal/clock"
)

// FrameSource delivers a recurring per-frame callback while started.
//
// Hosts with their own frame loop use CallbackFrames; everything else can
// use IntervalFrames on top of a clock.Scheduler.
type FrameSource interface {
	Start(fn func())
	Stop()
}

// IntervalFrames is a FrameSource paced by one-shot timers.
type IntervalFrames struct {
	sched   clock.Scheduler
	every   time.Duration
	fn      func()
	timer   clock.Timer
	gen     uint64
	running bool
}

// NewIntervalFrames returns a frame source firing every interval.
func NewIntervalFrames(sched clock.Scheduler, every time.Duration) *IntervalFrames {
	if every <= 0 {
		every = DefaultFrameInterval
	}
	return &IntervalFrames{sched: sched, every: every}
}

// Start begins delivering frames to fn. Starting a running source is a
// no-op.
func (f *IntervalFrames) Start(fn func()) {
	if f.running {
		return
	}
	f.running = true
	f.fn = fn
	f.gen++
	f.schedule()
}

// Stop halts delivery; a frame already queued by the host is dropped.
func (f *IntervalFrames) Stop() {
	if !f.running {
		return
	}
	f.running = false
	f.gen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// SetInterval changes the pacing from the next scheduled frame on.
func (f *IntervalFrames) SetInterval(every time.Duration) {
	if every <= 0 {
		every = DefaultFrameInterval
	}
	f.every = every
}

// Running reports whether frames are being delivered.
func (f *IntervalFrames) Running() bool {
	return f.running
}

func (f *IntervalFrames) schedule() {
	gen := f.gen
	f.timer = f.sched.AfterFunc(f.every, func() {
		if !f.running || f.gen != gen {
			return
		}
		f.timer = nil
		f.fn()
		if f.running && f.gen == gen {
			f.schedule()
		}
	})
}

// CallbackFrames is a FrameSource for hosts that own a frame loop (a game
// Update, a render callback). The host calls Frame once per frame.
type CallbackFrames struct {
	fn     func()
	active bool
}

// Start arms delivery to fn.
func (c *CallbackFrames) Start(fn func()) {
	c.fn = fn
	c.active = true
}

// Stop disarms delivery.
func (c *CallbackFrames) Stop() {
	c.active = false
}

// Active reports whether Frame would deliver.
func (c *CallbackFrames) Active() bool {
	return c.active
}

// Frame delivers one frame if started.
func (c *CallbackFrames) Frame() {
	if c.active && c.fn != nil {
		c.fn()
	}
}

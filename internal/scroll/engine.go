package scroll

import (
	"math"
	"time"

	"github.com/andyrewlee/autoscroll/internal/clock"
	"github.com/andyrewlee/autoscroll/internal/logging"
	"github.com/andyrewlee/autoscroll/internal/perf"
)

// Phase is the motion state.
type Phase int

const (
	// PhaseIdle: no motion, either nothing overflows or motion was never
	// requested.
	PhaseIdle Phase = iota
	// PhaseWaiting: a delay (autoplay, or the pause before a snap back) is
	// pending.
	PhaseWaiting
	// PhaseRunning: advancing on frames or single steps.
	PhaseRunning
	// PhasePaused: hover or wheel input suspended autonomous motion.
	PhasePaused
	// PhaseStopped: halted until Start.
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type holdReason uint8

const (
	holdHover holdReason = 1 << iota
	holdWheel
)

// Engine is the motion state machine. It owns the offset and phase; the
// Interaction controller and Scroller only request transitions.
type Engine struct {
	opts      Options
	surface   Surface
	sched     clock.Scheduler
	timers    timerSet
	frames    FrameSource
	ownFrames *IntervalFrames

	geom      Geometry
	itemCount int
	measured  bool
	onMeasure func(Geometry)

	offset float64
	phase  Phase

	// wanted is set by AutoPlay or Start and lets Resize bring an Idle
	// engine back into motion.
	wanted bool
	held   holdReason

	// Paused out of Waiting: resume into Waiting with what was left.
	fromWait bool
	waitLeft time.Duration

	exhausted bool
	snapBack  bool
	closed    bool
}

// NewEngine returns an Idle engine. A nil frames uses IntervalFrames on
// sched at opts.FrameInterval.
func NewEngine(opts Options, surface Surface, sched clock.Scheduler, frames FrameSource) *Engine {
	e := &Engine{
		opts:    opts,
		surface: surface,
		sched:   sched,
		frames:  frames,
	}
	e.timers.sched = sched
	if frames == nil {
		e.ownFrames = NewIntervalFrames(sched, opts.FrameInterval)
		e.frames = e.ownFrames
	}
	return e
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Offset returns the unsigned scroll position.
func (e *Engine) Offset() float64 { return e.offset }

// Geometry returns the last measurement.
func (e *Engine) Geometry() Geometry { return e.geom }

// Options returns the active options.
func (e *Engine) Options() Options { return e.opts }

// Exhausted reports whether non-looping content reached its end since the
// last reset or start.
func (e *Engine) Exhausted() bool { return e.exhausted }

// Placement returns what the surface was last told, recomputed.
func (e *Engine) Placement() Placement {
	p := Placement{Axis: e.opts.Direction.Axis(), Offset: e.offset}
	if e.opts.Direction.forward() {
		p.Translate = -e.offset
	} else {
		p.Translate = e.offset - e.span()
	}
	return p
}

// Reset remeasures, rewinds to 0 and re-derives the phase as on first
// mount.
func (e *Engine) Reset(itemCount int) {
	if e.closed {
		return
	}
	e.stopMotion()
	e.timers.cancelAll()
	e.itemCount = itemCount
	e.measure()
	e.offset = 0
	e.exhausted = false
	e.snapBack = false
	e.fromWait = false
	e.held &^= holdWheel
	e.wanted = e.opts.AutoPlay
	e.setPhase(PhaseIdle)
	if e.wanted && e.movable() {
		e.enterWaiting(e.opts.AutoPlayDelay)
	}
	e.apply()
}

// Resize remeasures and keeps offset and phase, except that motion drops
// to Idle when nothing overflows any more and an Idle engine that wants
// motion starts running once something does. Stopped stays Stopped.
func (e *Engine) Resize() {
	if e.closed {
		return
	}
	e.measure()
	e.normalize()
	switch e.phase {
	case PhaseWaiting, PhaseRunning, PhasePaused:
		if !e.movable() {
			e.stopMotion()
			e.timers.cancel(timerAutoplay)
			e.timers.cancel(timerWheel)
			e.held &^= holdWheel
			e.snapBack = false
			e.setPhase(PhaseIdle)
		}
	case PhaseIdle:
		if e.wanted && e.movable() {
			e.enterRunning(false)
		}
	}
	e.apply()
}

// Start resumes motion from Idle or Stopped at the current offset.
// Content that ran out restarts from 0. No-op while moving or paused.
func (e *Engine) Start() {
	if e.closed {
		return
	}
	switch e.phase {
	case PhaseWaiting, PhaseRunning, PhasePaused:
		return
	}
	e.wanted = true
	if !e.measured {
		e.measure()
	}
	if !e.movable() {
		e.setPhase(PhaseIdle)
		return
	}
	if e.exhausted || e.snapBack {
		e.offset = 0
		e.exhausted = false
		e.snapBack = false
	}
	e.enterRunning(true)
	e.apply()
}

// Stop halts motion and cancels every pending timer. The offset is kept.
func (e *Engine) Stop() {
	if e.closed {
		return
	}
	e.stopMotion()
	e.timers.cancelAll()
	e.held &^= holdWheel
	e.snapBack = false
	e.fromWait = false
	e.setPhase(PhaseStopped)
}

// Configure swaps options and rebuilds as InitData does. An engine stopped
// with AlwaysStop in the new options stays stopped.
func (e *Engine) Configure(opts Options) {
	if e.closed {
		return
	}
	keepStopped := e.phase == PhaseStopped && opts.AlwaysStop
	e.opts = opts
	if e.ownFrames != nil {
		e.ownFrames.SetInterval(opts.FrameInterval)
	}
	if !opts.IsHoverStop {
		e.held &^= holdHover
	}
	for _, c := range opts.Conflicts() {
		logging.Debug("autoscroll: %s", c)
	}
	e.Reset(e.itemCount)
	if keepStopped {
		e.Stop()
	}
}

// Close tears the engine down. Nothing is written to the surface and no
// timer runs afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.stopMotion()
	e.timers.cancelAll()
	e.setPhase(PhaseStopped)
	e.closed = true
}

// Tick advances one frame in continuous mode. Frames outside Running are
// ignored.
func (e *Engine) Tick() {
	if e.closed || e.phase != PhaseRunning || e.opts.IsSingleStep {
		return
	}
	defer perf.Time("tick")()
	e.advance(e.opts.Steep)
}

func (e *Engine) measure() {
	e.geom = Measure(e.surface, e.opts.Direction.Axis(), e.itemCount)
	e.measured = true
	if e.onMeasure != nil {
		e.onMeasure(e.geom)
	}
}

// span is the offset at which motion wraps, snaps or ends.
func (e *Engine) span() float64 {
	switch {
	case e.opts.looping():
		return e.geom.ContentExtent
	case e.opts.roller():
		return e.opts.RollerScrollDistance
	default:
		return e.geom.End(e.opts.ForceScroll)
	}
}

func (e *Engine) stepDistance() float64 {
	if positive(e.opts.SingleStepDistance) {
		return e.opts.SingleStepDistance
	}
	return e.geom.ItemExtent()
}

// movable reports whether the geometry and options allow any motion.
// Degenerate sizes and distances resolve to false, never to an error.
func (e *Engine) movable() bool {
	if !e.measured || !e.geom.Movable(e.opts.ForceScroll) {
		return false
	}
	if e.opts.IsSingleStep {
		if !positive(e.stepDistance()) {
			return false
		}
	} else if !positive(e.opts.Steep) {
		return false
	}
	return positive(e.span())
}

// positive reports whether x is a usable distance: finite and above zero.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func (e *Engine) autonomous() bool {
	switch e.phase {
	case PhaseWaiting, PhaseRunning, PhasePaused:
		return true
	}
	return false
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	logging.Debug("autoscroll: %s -> %s offset=%.2f", e.phase, p, e.offset)
	e.phase = p
}

func (e *Engine) apply() {
	if e.closed || e.surface == nil {
		return
	}
	e.surface.Apply(e.Placement())
}

func (e *Engine) stopMotion() {
	e.frames.Stop()
	e.timers.cancel(timerStep)
}

func (e *Engine) enterWaiting(d time.Duration) {
	if e.held != 0 {
		e.fromWait = true
		e.waitLeft = d
		e.setPhase(PhasePaused)
		return
	}
	e.fromWait = false
	e.setPhase(PhaseWaiting)
	e.timers.arm(timerAutoplay, d, e.waitElapsed)
}

func (e *Engine) waitElapsed() {
	if e.snapBack {
		e.snapBack = false
		e.offset = 0
		e.apply()
	}
	e.enterRunning(true)
}

// enterRunning starts frames or steps. fresh single-step entries advance
// immediately; resumptions wait one step delay first.
func (e *Engine) enterRunning(fresh bool) {
	if e.held != 0 {
		e.fromWait = false
		e.setPhase(PhasePaused)
		return
	}
	e.setPhase(PhaseRunning)
	if !e.opts.IsSingleStep {
		e.frames.Start(e.Tick)
		return
	}
	if fresh {
		e.step()
		return
	}
	e.armStep()
}

func (e *Engine) step() {
	e.advance(e.stepDistance())
	if e.phase == PhaseRunning {
		e.armStep()
	}
}

func (e *Engine) armStep() {
	e.timers.arm(timerStep, e.opts.SingleStepDelay, func() {
		if e.phase == PhaseRunning {
			e.step()
		}
	})
}

func (e *Engine) advance(d float64) {
	e.offset += d
	switch {
	case e.opts.looping():
		if e.offset >= e.geom.ContentExtent {
			perf.Count("wrap", 1)
		}
		e.offset = wrapOffset(e.offset, e.geom.ContentExtent)
	case e.opts.roller():
		if e.offset >= e.opts.RollerScrollDistance {
			e.offset = 0
			perf.Count("roller", 1)
		}
	default:
		if end := e.span(); e.offset >= end {
			e.offset = end
			e.apply()
			e.exhaust()
			return
		}
	}
	e.apply()
}

// exhaust handles non-looping content reaching its end: stop for good
// with AlwaysStop, else pause for AutoPlayDelay and snap back to 0.
func (e *Engine) exhaust() {
	e.exhausted = true
	e.stopMotion()
	perf.Count("exhausted", 1)
	if e.opts.AlwaysStop {
		e.timers.cancelAll()
		e.held &^= holdWheel
		e.setPhase(PhaseStopped)
		return
	}
	e.snapBack = true
	e.enterWaiting(e.opts.AutoPlayDelay)
}

func (e *Engine) hold(r holdReason) {
	e.held |= r
	switch e.phase {
	case PhaseRunning:
		e.stopMotion()
		e.fromWait = false
		e.setPhase(PhasePaused)
	case PhaseWaiting:
		e.waitLeft = e.timers.remaining(timerAutoplay)
		e.timers.cancel(timerAutoplay)
		e.fromWait = true
		e.setPhase(PhasePaused)
	}
}

func (e *Engine) release(r holdReason) {
	e.held &^= r
	if e.held != 0 || e.phase != PhasePaused {
		return
	}
	switch {
	case e.opts.AlwaysStop && e.exhausted:
		e.setPhase(PhaseStopped)
	case !e.movable():
		e.setPhase(PhaseIdle)
	case e.fromWait:
		e.enterWaiting(e.waitLeft)
	default:
		e.enterRunning(false)
	}
}

// nudge applies a manual delta under the same wrap rules as autonomous
// motion, except that reaching the end by hand does not exhaust.
func (e *Engine) nudge(delta float64) {
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	perf.Count("wheel", 1)
	e.offset += delta
	switch {
	case e.opts.looping():
		e.offset = wrapOffset(e.offset, e.geom.ContentExtent)
	case e.opts.roller():
		if e.offset < 0 || e.offset >= e.opts.RollerScrollDistance {
			e.offset = 0
		}
	default:
		e.offset = math.Max(0, math.Min(e.offset, e.span()))
	}
	e.apply()
}

// normalize refits the offset after the geometry changed.
func (e *Engine) normalize() {
	switch {
	case e.opts.looping():
		e.offset = wrapOffset(e.offset, e.geom.ContentExtent)
	case e.opts.roller():
		if e.offset >= e.opts.RollerScrollDistance {
			e.offset = 0
		}
	default:
		if end := e.span(); e.offset > end {
			e.offset = end
		}
	}
	if e.offset < 0 {
		e.offset = 0
	}
}

// wrapOffset maps x into [0, n) by whole multiples of n. Overshoot is kept,
// never clamped, so the wrap is invisible.
func wrapOffset(x, n float64) float64 {
	if !positive(n) || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	if x >= n {
		if x < 2*n {
			x -= n
		} else {
			x = math.Mod(x, n)
		}
	}
	if x < 0 {
		x = math.Mod(x, n) + n
	}
	if x >= n {
		x = 0
	}
	return x
}

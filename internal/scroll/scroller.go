package scroll

import "github.com/andyrewlee/autoscroll/internal/clock"

// Host bundles what a hosting runtime provides.
type Host struct {
	Surface   Surface
	Scheduler clock.Scheduler
	// Frames is optional; IntervalFrames on Scheduler is used when nil.
	Frames FrameSource
}

// Scroller is the public control surface: it owns the items, the derived
// rendered sequence, the engine and the interaction controller.
type Scroller[T any] struct {
	items    []T
	key      KeyFunc[T]
	rendered []Rendered[T]
	engine   *Engine
	input    Interaction
}

// New returns an Idle scroller. Call SetItems or InitData to mount it.
func New[T any](host Host, opts Options) *Scroller[T] {
	s := &Scroller[T]{}
	s.engine = NewEngine(opts, host.Surface, host.Scheduler, host.Frames)
	s.engine.onMeasure = s.rebuild
	s.input = Interaction{engine: s.engine}
	return s
}

// Start begins or resumes motion.
func (s *Scroller[T]) Start() { s.engine.Start() }

// Stop halts motion and cancels timers.
func (s *Scroller[T]) Stop() { s.engine.Stop() }

// InitData remeasures, rebuilds the rendered sequence and rewinds.
func (s *Scroller[T]) InitData() { s.engine.Reset(len(s.items)) }

// Resize remeasures, keeping offset and phase where the geometry allows.
func (s *Scroller[T]) Resize() { s.engine.Resize() }

// SetItems replaces the items and rebuilds as InitData does. A scroller
// stopped under AlwaysStop stays stopped.
func (s *Scroller[T]) SetItems(items []T) {
	keepStopped := s.engine.phase == PhaseStopped && s.engine.opts.AlwaysStop
	s.items = items
	s.InitData()
	if keepStopped {
		s.engine.Stop()
	}
}

// SetItemKey changes how rendered keys are derived.
func (s *Scroller[T]) SetItemKey(key KeyFunc[T]) {
	s.key = key
	s.rebuild(s.engine.geom)
}

// Configure re-applies options without recreating the scroller.
func (s *Scroller[T]) Configure(opts Options) { s.engine.Configure(opts) }

// Close unmounts: timers are cancelled and the surface is left alone.
func (s *Scroller[T]) Close() { s.engine.Close() }

// HoverEnter forwards a pointer-enter event.
func (s *Scroller[T]) HoverEnter() { s.input.HoverEnter() }

// HoverLeave forwards a pointer-leave event.
func (s *Scroller[T]) HoverLeave() { s.input.HoverLeave() }

// Wheel forwards a manual scroll delta.
func (s *Scroller[T]) Wheel(delta float64) { s.input.Wheel(delta) }

// Tick delivers one frame to hosts driving frames by hand.
func (s *Scroller[T]) Tick() { s.engine.Tick() }

// Phase returns the engine phase.
func (s *Scroller[T]) Phase() Phase { return s.engine.Phase() }

// Offset returns the current scroll offset along the motion axis.
func (s *Scroller[T]) Offset() float64 { return s.engine.Offset() }

// Placement returns the last placement written to the surface.
func (s *Scroller[T]) Placement() Placement { return s.engine.Placement() }

// Geometry returns the most recent measurement.
func (s *Scroller[T]) Geometry() Geometry { return s.engine.Geometry() }

// Options returns the options in effect.
func (s *Scroller[T]) Options() Options { return s.engine.Options() }

// Items returns the source items as last set.
func (s *Scroller[T]) Items() []T { return s.items }

// Rendered returns the looped items the surface should draw, in order.
func (s *Scroller[T]) Rendered() []Rendered[T] { return s.rendered }

func (s *Scroller[T]) rebuild(g Geometry) {
	s.rendered = BuildLoop(s.items, s.engine.opts.Copies(g), s.key)
}

package scroll

import "math"

// Interaction turns pointer input into engine requests. It keeps no state
// of its own; hover and wheel holds live in the engine.
type Interaction struct {
	engine *Engine
}

// HoverEnter pauses motion while the pointer is over the viewport. Ignored
// unless IsHoverStop is set.
func (c Interaction) HoverEnter() {
	if c.engine.closed || !c.engine.opts.IsHoverStop {
		return
	}
	c.engine.hold(holdHover)
}

// HoverLeave releases the hover pause. Ignored unless IsHoverStop is set.
func (c Interaction) HoverLeave() {
	if c.engine.closed || !c.engine.opts.IsHoverStop {
		return
	}
	c.engine.release(holdHover)
}

// Wheel applies a manual delta. Autonomous motion pauses immediately and
// resumes WheelResumeDelay after the last wheel event; each event
// re-arms the delay.
func (c Interaction) Wheel(delta float64) {
	e := c.engine
	if e.closed || !e.movable() || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	if e.autonomous() {
		e.hold(holdWheel)
		e.timers.arm(timerWheel, e.opts.WheelResumeDelay, func() {
			e.release(holdWheel)
		})
	}
	e.nudge(delta)
}

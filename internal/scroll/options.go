// Package scroll implements the autoscroll engine: geometry measurement,
// looping content derivation and the motion state machine that moves a
// list through its viewport.
//
// Nothing in this package is safe for concurrent use. A host drives one
// Scroller from a single logical thread: a bubbletea Update loop, the
// driver command loop, or a clock.Manual in tests.
package scroll

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Direction is the axis and sign of autonomous motion.
type Direction int

const (
	DirectionTop Direction = iota
	DirectionBottom
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection accepts the wire names top, bottom, left and right.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "up":
		return DirectionTop, nil
	case "bottom", "down":
		return DirectionBottom, nil
	case "left":
		return DirectionLeft, nil
	case "right":
		return DirectionRight, nil
	}
	return DirectionTop, fmt.Errorf("unknown scroll direction %q", s)
}

// Axis returns the axis the direction moves along.
func (d Direction) Axis() Axis {
	if d == DirectionLeft || d == DirectionRight {
		return AxisHorizontal
	}
	return AxisVertical
}

// forward reports whether content moves toward the axis origin (up/left).
func (d Direction) forward() bool {
	return d == DirectionTop || d == DirectionLeft
}

// Axis selects which extent of a Size is relevant.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Options configures a Scroller. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// Steep is the distance advanced per frame in continuous mode.
	Steep     float64
	Direction Direction

	// IsRoller renders a single copy and snaps back to 0 once the offset
	// reaches RollerScrollDistance.
	IsRoller             bool
	RollerScrollDistance float64

	IsHoverStop bool

	AutoPlay      bool
	AutoPlayDelay time.Duration

	// ForceScroll moves content even when it fits the viewport.
	ForceScroll bool

	// IsSingleStep advances SingleStepDistance at once, then waits
	// SingleStepDelay. A non-positive distance means one item's extent.
	// Single step wins over IsRoller when both are set.
	IsSingleStep       bool
	SingleStepDistance float64
	SingleStepDelay    time.Duration

	// Seamless duplicates content so the wrap is invisible. Without it the
	// content stops at its end.
	Seamless bool

	WheelResumeDelay time.Duration

	// AlwaysStop keeps the engine stopped after an explicit Stop or after
	// non-looping content runs out, until Start is called.
	AlwaysStop bool

	// FrameInterval paces the fixed-interval frame source.
	FrameInterval time.Duration
}

// DefaultFrameInterval is roughly one display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// DefaultOptions returns the documented option defaults.
func DefaultOptions() Options {
	return Options{
		Steep:                1,
		Direction:            DirectionTop,
		RollerScrollDistance: 20,
		IsHoverStop:          true,
		AutoPlay:             true,
		SingleStepDelay:      time.Second,
		Seamless:             true,
		WheelResumeDelay:     time.Second,
		FrameInterval:        DefaultFrameInterval,
	}
}

// roller reports whether the roller wrap applies after precedence.
func (o Options) roller() bool {
	return o.IsRoller && !o.IsSingleStep
}

// looping reports whether content is duplicated and wrapped seamlessly.
func (o Options) looping() bool {
	return o.Seamless && !o.roller()
}

// Conflicts describes option combinations resolved by precedence rather
// than honoured as written. It is informational; nothing is rejected.
func (o Options) Conflicts() []string {
	var out []string
	if o.IsSingleStep && o.IsRoller {
		out = append(out, "isSingleStep and isRoller both set: single step wins")
	}
	if o.IsRoller && o.Seamless {
		out = append(out, "isRoller and seamless both set: roller renders one copy")
	}
	return out
}

// MaxCopies bounds the copies rendered for forced scrolling of content
// much shorter than its viewport.
const MaxCopies = 1024

// Copies returns how many back-to-back copies of the items must be
// rendered for geometry g, at most MaxCopies.
func (o Options) Copies(g Geometry) int {
	if !o.looping() || !positive(g.ContentExtent) {
		return 1
	}
	if g.ContentExtent >= g.ViewportExtent {
		return 2
	}
	ratio := math.Ceil(g.ViewportExtent / g.ContentExtent)
	if !(ratio < MaxCopies) {
		return MaxCopies
	}
	return int(ratio) + 1
}

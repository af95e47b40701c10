package scroll

// Size is a two-dimensional extent in host units (pixels, cells, rows).
type Size struct {
	Width  float64
	Height float64
}

// Along returns the extent on axis a.
func (s Size) Along(a Axis) float64 {
	if a == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

// Placement is what the engine writes back to the host: the unsigned
// offset and the signed translation to apply to the rendered content.
type Placement struct {
	Axis      Axis
	Offset    float64
	Translate float64
}

// Start is the position, in rendered content coordinates, at the leading
// edge of the viewport.
func (p Placement) Start() float64 {
	return -p.Translate
}

// Surface is the host rendering surface.
type Surface interface {
	// ViewportSize is the visible window.
	ViewportSize() Size
	// ContentSize is the size of one copy of the original items.
	ContentSize() Size
	// Apply receives every offset change.
	Apply(p Placement)
}

// Geometry is the result of measuring a surface along one axis.
type Geometry struct {
	Axis           Axis
	ViewportExtent float64
	ContentExtent  float64
	ItemCount      int
	Overflowing    bool
}

// Measure reads the surface extents along axis. A non-positive content
// extent is reported as not overflowing.
func Measure(s Surface, axis Axis, itemCount int) Geometry {
	g := Geometry{Axis: axis, ItemCount: itemCount}
	if s == nil {
		return g
	}
	g.ViewportExtent = s.ViewportSize().Along(axis)
	g.ContentExtent = s.ContentSize().Along(axis)
	if g.ViewportExtent < 0 {
		g.ViewportExtent = 0
	}
	if g.ContentExtent < 0 {
		g.ContentExtent = 0
	}
	g.Overflowing = g.ContentExtent > 0 && g.ContentExtent > g.ViewportExtent
	return g
}

// ItemExtent is the mean extent of one item, or 0 without items.
func (g Geometry) ItemExtent() float64 {
	if g.ItemCount <= 0 || g.ContentExtent <= 0 {
		return 0
	}
	return g.ContentExtent / float64(g.ItemCount)
}

// Movable reports whether there is anything to scroll.
func (g Geometry) Movable(force bool) bool {
	if g.ContentExtent <= 0 {
		return false
	}
	return g.Overflowing || force
}

// End is the last offset of non-looping content: the point where the
// content's trailing edge meets the viewport's. Forced scrolling of short
// content runs the whole content out of view instead.
func (g Geometry) End(force bool) float64 {
	end := g.ContentExtent - g.ViewportExtent
	if end <= 0 && force {
		return g.ContentExtent
	}
	if end < 0 {
		return 0
	}
	return end
}

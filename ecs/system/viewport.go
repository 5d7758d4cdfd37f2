package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs/component"
)

// Viewport is the laid-out size of the animated region and how far the page
// is scrolled past its top edge.
type Viewport struct {
	Width   float64
	Height  float64
	ScrollY float64
}

// Attached reports whether shapes inside the viewport can be measured.
func (v Viewport) Attached() bool {
	return v.Width > 0 && v.Height > 0 && common.Finite(v.Width) && common.Finite(v.Height)
}

// Origin is the authored top-left corner of shape in region pixels.
func (v Viewport) Origin(shape *component.Shape) cp.Vector {
	return cp.Vector{
		X: shape.Left / 100 * v.Width,
		Y: shape.Top / 100 * v.Height,
	}
}

// Bounds lays shape out by its percentage position and returns its box in
// viewport coordinates.
func (v Viewport) Bounds(shape *component.Shape) (cp.BB, bool) {
	if shape == nil || !v.Attached() || !common.Finite(v.ScrollY) {
		return cp.BB{}, false
	}
	o := v.Origin(shape)
	top := o.Y - v.ScrollY
	return cp.BB{L: o.X, B: top, R: o.X + shape.Size, T: top + shape.Size}, true
}

// ViewportTracker owns the region's viewport and announces resizes and
// scrolls to subscribed shapes.
type ViewportTracker struct {
	vp      Viewport
	changed Signal[Viewport]
}

func NewViewportTracker() *ViewportTracker {
	return &ViewportTracker{}
}

func (t *ViewportTracker) Current() Viewport {
	if t == nil {
		return Viewport{}
	}
	return t.vp
}

// Resize records a new region size. Unchanged sizes are not announced.
func (t *ViewportTracker) Resize(width, height float64) bool {
	if t == nil || (t.vp.Width == width && t.vp.Height == height) {
		return false
	}
	t.vp.Width = width
	t.vp.Height = height
	t.changed.Emit(t.vp)
	return true
}

// Scroll records the page scroll offset.
func (t *ViewportTracker) Scroll(y float64) bool {
	if t == nil || t.vp.ScrollY == y {
		return false
	}
	t.vp.ScrollY = y
	t.changed.Emit(t.vp)
	return true
}

func (t *ViewportTracker) Subscribe(fn func(Viewport)) func() {
	if t == nil {
		return func() {}
	}
	return t.changed.Subscribe(fn)
}

// Bounds makes the tracker a Measurer over its current viewport.
func (t *ViewportTracker) Bounds(shape *component.Shape) (cp.BB, bool) {
	return t.Current().Bounds(shape)
}

func (t *ViewportTracker) Listeners() int {
	if t == nil {
		return 0
	}
	return t.changed.Len()
}

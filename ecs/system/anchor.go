package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs"
	"github.com/milk9111/ambient/ecs/component"
)

// Measurer reports a shape's rendered bounds in viewport coordinates. ok is
// false while the shape is not attached to a laid-out region.
type Measurer interface {
	Bounds(shape *component.Shape) (bb cp.BB, ok bool)
}

// MeasurerFunc adapts a plain func to Measurer.
type MeasurerFunc func(shape *component.Shape) (cp.BB, bool)

func (f MeasurerFunc) Bounds(shape *component.Shape) (cp.BB, bool) {
	return f(shape)
}

// AnchorResolver stores each shape's measured centre and pushes the change to
// the proximity scaler.
type AnchorResolver struct {
	measurer Measurer
	scaler   *ProximityScaler
}

func NewAnchorResolver(measurer Measurer, scaler *ProximityScaler) *AnchorResolver {
	return &AnchorResolver{measurer: measurer, scaler: scaler}
}

// Measure re-reads e's bounds. A failed measurement leaves the anchor
// unmeasured so no stale centre is ever used.
func (r *AnchorResolver) Measure(w *ecs.World, e ecs.Entity) bool {
	if r == nil || !w.IsAlive(e) {
		return false
	}
	shape, ok := ecs.Get(w, e, component.ShapeComponent)
	if !ok {
		return false
	}
	anchor, ok := ecs.Get(w, e, component.AnchorComponent)
	if !ok {
		anchor = &component.Anchor{}
		if err := ecs.Add(w, e, component.AnchorComponent, anchor); err != nil {
			return false
		}
	}

	center, measured := r.center(shape)
	anchor.Center = center
	anchor.Measured = measured

	r.scaler.RecomputeEntity(w, e)
	return measured
}

func (r *AnchorResolver) center(shape *component.Shape) (cp.Vector, bool) {
	if r.measurer == nil {
		return cp.Vector{}, false
	}
	bb, ok := r.measurer.Bounds(shape)
	if !ok {
		return cp.Vector{}, false
	}
	c := bb.Center()
	if !common.Finite(c.X) || !common.Finite(c.Y) {
		return cp.Vector{}, false
	}
	return c, true
}

// MeasureAll re-measures every mounted shape.
func (r *AnchorResolver) MeasureAll(w *ecs.World) {
	if r == nil || w == nil {
		return
	}
	for _, e := range w.Query(component.ShapeComponent.ID()) {
		r.Measure(w, e)
	}
}

package system

import (
	"github.com/milk9111/ambient/ecs"
	"github.com/milk9111/ambient/ecs/component"
)

// VisibilityLatch turns the external one-shot "section visible" edge into a
// per-shape activation. Once closed it never reopens.
type VisibilityLatch struct {
	visible bool
	tick    func() uint64
}

// NewVisibilityLatch builds a latch; tick stamps activations and may be nil.
func NewVisibilityLatch(tick func() uint64) *VisibilityLatch {
	return &VisibilityLatch{tick: tick}
}

// Signal feeds the visibility watcher's output. It returns true only on the
// edge that closes the latch; later false/true toggles are ignored.
func (l *VisibilityLatch) Signal(visible bool) bool {
	if l == nil || l.visible || !visible {
		return false
	}
	l.visible = true
	return true
}

func (l *VisibilityLatch) Visible() bool {
	return l != nil && l.visible
}

// TryActivate starts e's float loop if the latch is closed, e is measured and
// not yet active. Activation is irreversible.
func (l *VisibilityLatch) TryActivate(w *ecs.World, e ecs.Entity) bool {
	if !l.Visible() || !w.IsAlive(e) {
		return false
	}
	anchor, ok := ecs.Get(w, e, component.AnchorComponent)
	if !ok || !anchor.Measured {
		return false
	}
	act, ok := ecs.Get(w, e, component.ActivationComponent)
	if !ok {
		act = &component.Activation{}
		if err := ecs.Add(w, e, component.ActivationComponent, act); err != nil {
			return false
		}
	}
	if act.Active {
		return false
	}

	motion := &component.FloatMotion{}
	if r, ok := ecs.Get(w, e, component.FloatRangeComponent); ok {
		motion.Offset = FloatOffset(*r, 0)
	}
	// The float state must exist before the latch closes; an active shape
	// without it would never move.
	if err := ecs.Add(w, e, component.FloatMotionComponent, motion); err != nil {
		return false
	}
	act.Active = true
	if l.tick != nil {
		act.Tick = l.tick()
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		t.OffsetY = motion.Offset
	}

	evt := ecs.ShapeEvent{Entity: e, Kind: ecs.ShapeEventActivated}
	if shape, ok := ecs.Get(w, e, component.ShapeComponent); ok {
		evt.ShapeID = shape.ID
	}
	w.Events().PushShape(evt)
	return true
}

// ActivateAll tries every mounted shape and returns how many activated.
func (l *VisibilityLatch) ActivateAll(w *ecs.World) int {
	if !l.Visible() || w == nil {
		return 0
	}
	n := 0
	for _, e := range w.Query(component.ShapeComponent.ID()) {
		if l.TryActivate(w, e) {
			n++
		}
	}
	return n
}

package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ambient/common"
)

// PointerAbsent is written on leave. It is far outside any influence radius;
// (0,0) is not used because a shape can legitimately sit near the origin.
var PointerAbsent = cp.Vector{X: -1e9, Y: -1e9}

// PointerTracker is the single writer of the region's pointer coordinate.
// Shapes subscribe to it; every write is pushed to them synchronously.
type PointerTracker struct {
	pos     cp.Vector
	present bool
	changed Signal[cp.Vector]
}

func NewPointerTracker() *PointerTracker {
	return &PointerTracker{pos: PointerAbsent}
}

// Move records a pointer-move in viewport coordinates.
func (t *PointerTracker) Move(x, y float64) {
	if t == nil {
		return
	}
	if !common.Finite(x) || !common.Finite(y) {
		t.Leave()
		return
	}
	t.pos = cp.Vector{X: x, Y: y}
	t.present = true
	t.changed.Emit(t.pos)
}

// Leave records that the pointer left the region.
func (t *PointerTracker) Leave() {
	if t == nil {
		return
	}
	t.pos = PointerAbsent
	t.present = false
	t.changed.Emit(t.pos)
}

// Position returns the last written coordinate; it is PointerAbsent when the
// pointer is outside the region.
func (t *PointerTracker) Position() (cp.Vector, bool) {
	if t == nil {
		return PointerAbsent, false
	}
	return t.pos, t.present
}

// Subscribe registers fn for every pointer write.
func (t *PointerTracker) Subscribe(fn func(cp.Vector)) func() {
	if t == nil {
		return func() {}
	}
	return t.changed.Subscribe(fn)
}

// Listeners returns the number of live subscribers.
func (t *PointerTracker) Listeners() int {
	if t == nil {
		return 0
	}
	return t.changed.Len()
}

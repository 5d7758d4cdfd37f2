package system

import (
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs"
	"github.com/milk9111/ambient/ecs/component"
)

// FloatOffset returns the vertical offset of a reciprocating min→max→min loop
// at local time t. Delay shifts the phase; each half of the period is eased
// in and out.
func FloatOffset(r component.FloatRange, t float64) float64 {
	if !(r.Duration > 0) || !common.Finite(t) {
		return r.Min
	}
	u := common.Frac((t + r.Delay) / r.Duration)
	if u < 0.5 {
		return common.Lerp(r.Min, r.Max, common.EaseInOutSine(u*2))
	}
	return common.Lerp(r.Max, r.Min, common.EaseInOutSine(u*2-1))
}

// FloatAnimator advances every active shape's own clock by the host tick.
// Inactive shapes carry no FloatMotion and are never visited.
type FloatAnimator struct{}

func NewFloatAnimator() *FloatAnimator {
	return &FloatAnimator{}
}

func (a *FloatAnimator) Update(w *ecs.World, step float64) {
	if a == nil || w == nil || !(step > 0) || !common.Finite(step) {
		return
	}
	ecs.ForEach2(w, component.FloatMotionComponent, component.FloatRangeComponent, func(e ecs.Entity, m *component.FloatMotion, r *component.FloatRange) {
		m.Elapsed += step
		m.Offset = FloatOffset(*r, m.Elapsed)
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			t.OffsetY = m.Offset
		}
	})
}

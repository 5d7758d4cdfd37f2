package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs"
	"github.com/milk9111/ambient/ecs/component"
)

const (
	DefaultInfluenceRadius = 200.0
	DefaultMaxBoost        = 0.3
)

// ProximityParams tunes the pointer boost.
type ProximityParams struct {
	Radius float64 `yaml:"radius"`
	Boost  float64 `yaml:"boost"`
}

func DefaultProximityParams() ProximityParams {
	return ProximityParams{Radius: DefaultInfluenceRadius, Boost: DefaultMaxBoost}
}

// Normalized replaces non-finite values with defaults and clamps negatives.
// A zero radius is kept; it disables the boost.
func (p ProximityParams) Normalized() ProximityParams {
	if !common.Finite(p.Radius) {
		p.Radius = DefaultInfluenceRadius
	}
	if !common.Finite(p.Boost) {
		p.Boost = DefaultMaxBoost
	}
	if p.Radius < 0 {
		p.Radius = 0
	}
	if p.Boost < 0 {
		p.Boost = 0
	}
	return p
}

// ProximityScaleAt maps a pointer distance to a scale factor:
//
//	ratio = clamp((radius - d) / radius, 0, 1)
//	scale = 1 + ratio * boost
func ProximityScaleAt(distance float64, p ProximityParams) float64 {
	if !(p.Radius > 0) || !common.Finite(distance) || !common.Finite(p.Boost) {
		return 1
	}
	ratio := common.Clamp((p.Radius-distance)/p.Radius, 0, 1)
	return 1 + ratio*p.Boost
}

// ProximityScale is ProximityScaleAt for the euclidean distance between
// pointer and anchor.
func ProximityScale(pointer, anchor cp.Vector, p ProximityParams) float64 {
	return ProximityScaleAt(pointer.Distance(anchor), p)
}

// ProximityScaler writes the derived scale into each shape's Proximity and
// Transform. It is invoked on every pointer write and every anchor
// measurement, so it always reads the latest of both.
type ProximityScaler struct {
	tracker *PointerTracker
	params  ProximityParams
}

func NewProximityScaler(tracker *PointerTracker, params ProximityParams) *ProximityScaler {
	return &ProximityScaler{tracker: tracker, params: params.Normalized()}
}

func (s *ProximityScaler) Params() ProximityParams {
	if s == nil {
		return DefaultProximityParams()
	}
	return s.params
}

// SetParams swaps the tuning and recomputes every mounted shape.
func (s *ProximityScaler) SetParams(w *ecs.World, p ProximityParams) {
	if s == nil {
		return
	}
	s.params = p.Normalized()
	s.Recompute(w)
}

// RecomputeEntity derives e's scale. An unmeasured anchor or an absent
// pointer yields 1.
func (s *ProximityScaler) RecomputeEntity(w *ecs.World, e ecs.Entity) float64 {
	if s == nil || !w.IsAlive(e) {
		return 1
	}
	scale := 1.0
	if anchor, ok := ecs.Get(w, e, component.AnchorComponent); ok && anchor.Measured {
		if pos, present := s.tracker.Position(); present {
			scale = ProximityScale(pos, anchor.Center, s.params)
		}
	}
	if prox, ok := ecs.Get(w, e, component.ProximityComponent); ok {
		prox.Scale = scale
	} else if err := ecs.Add(w, e, component.ProximityComponent, &component.Proximity{Scale: scale}); err != nil {
		return 1
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		t.Scale = scale
	}
	return scale
}

// Recompute derives the scale of every mounted shape.
func (s *ProximityScaler) Recompute(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, e := range w.Query(component.ShapeComponent.ID()) {
		s.RecomputeEntity(w, e)
	}
}

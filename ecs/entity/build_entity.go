package entity

import (
	"fmt"

	"github.com/milk9111/ambient/ecs"
	"github.com/milk9111/ambient/ecs/component"
	"github.com/milk9111/ambient/prefabs"
)

const (
	primaryLayer   = 1
	fillerLayer    = 0
	primaryOpacity = 0.8
	fillerOpacity  = 0.35
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, d prefabs.ShapeDescriptor) error

var componentRegistry = map[string]componentBuildFn{
	"shape":        addShape,
	"transform":    addTransform,
	"render_layer": addRenderLayer,
	"float_range":  addFloatRange,
	"anchor":       addAnchor,
	"proximity":    addProximity,
	"activation":   addActivation,
	"subscription": addSubscription,
}

var componentBuildOrder = []string{
	"shape",
	"transform",
	"render_layer",
	"float_range",
	"anchor",
	"proximity",
	"activation",
	"subscription",
}

// BuildShape creates a mounted, unmeasured shape entity from d.
func BuildShape(w *ecs.World, d prefabs.ShapeDescriptor) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build shape: world is nil")
	}

	e := w.CreateEntity()
	for _, name := range componentBuildOrder {
		builder, ok := componentRegistry[name]
		if !ok {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build shape: %q: no builder for component %q", d.ID, name)
		}
		if err := builder(w, e, d); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build shape: %q: add %q: %w", d.ID, name, err)
		}
	}
	w.Events().PushShape(ecs.ShapeEvent{Entity: e, ShapeID: d.ID, Kind: ecs.ShapeEventMounted})
	return e, nil
}

func addShape(w *ecs.World, e ecs.Entity, d prefabs.ShapeDescriptor) error {
	return ecs.Add(w, e, component.ShapeComponent, &component.Shape{
		ID:       d.ID,
		Kind:     d.Kind,
		Gradient: d.Gradient,
		Left:     d.Left,
		Top:      d.Top,
		Size:     d.Size,
		Primary:  d.Primary,
	})
}

func addTransform(w *ecs.World, e ecs.Entity, d prefabs.ShapeDescriptor) error {
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{Size: d.Size, Scale: 1})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, d prefabs.ShapeDescriptor) error {
	layer := &component.RenderLayer{Index: fillerLayer, Opacity: fillerOpacity}
	if d.Primary {
		layer.Index = primaryLayer
		layer.Opacity = primaryOpacity
	}
	return ecs.Add(w, e, component.RenderLayerComponent, layer)
}

func addFloatRange(w *ecs.World, e ecs.Entity, d prefabs.ShapeDescriptor) error {
	return ecs.Add(w, e, component.FloatRangeComponent, &component.FloatRange{
		Min:      d.FloatMin,
		Max:      d.FloatMax,
		Delay:    d.Delay,
		Duration: d.Duration,
	})
}

func addAnchor(w *ecs.World, e ecs.Entity, _ prefabs.ShapeDescriptor) error {
	return ecs.Add(w, e, component.AnchorComponent, &component.Anchor{})
}

func addProximity(w *ecs.World, e ecs.Entity, _ prefabs.ShapeDescriptor) error {
	return ecs.Add(w, e, component.ProximityComponent, &component.Proximity{Scale: 1})
}

func addActivation(w *ecs.World, e ecs.Entity, _ prefabs.ShapeDescriptor) error {
	return ecs.Add(w, e, component.ActivationComponent, &component.Activation{})
}

func addSubscription(w *ecs.World, e ecs.Entity, _ prefabs.ShapeDescriptor) error {
	return ecs.Add(w, e, component.SubscriptionComponent, &component.Subscription{})
}

// SetOrigin stores the authored top-left corner in pixels.
func SetOrigin(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return component.ErrNilComponent
	}
	t.X = x
	t.Y = y
	return nil
}

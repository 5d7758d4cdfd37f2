// Package region owns one animated shape field: the arena of shape entities
// keyed by shape id, its pointer and viewport trackers, and the systems that
// turn pointer, resize and visibility input into per-shape offset and scale.
package region

import (
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ambient/ecs"
	"github.com/milk9111/ambient/ecs/component"
	"github.com/milk9111/ambient/ecs/entity"
	"github.com/milk9111/ambient/ecs/system"
	"github.com/milk9111/ambient/prefabs"
)

// DefaultStep is one tick at 60 TPS.
const DefaultStep = 1.0 / 60.0

type Options struct {
	// Params defaults to radius 200, boost 0.3 when nil. A zero value is
	// kept: radius 0 disables the boost.
	Params *system.ProximityParams
	Debug  bool
}

// Sample is what a render sink needs to paint one shape.
type Sample struct {
	ID       string
	Kind     string
	Gradient string
	Primary  bool
	Layer    int
	Opacity  float64

	// X and Y are the authored top-left corner in viewport coordinates; the paint transform is
	// translate(0, OffsetY) then scale(Scale) around the authored box.
	X       float64
	Y       float64
	Size    float64
	OffsetY float64
	Scale   float64

	Anchor   cp.Vector
	Measured bool
	Active   bool
}

type Region struct {
	ID string

	world     *ecs.World
	pointer   *system.PointerTracker
	viewport  *system.ViewportTracker
	scaler    *system.ProximityScaler
	resolver  *system.AnchorResolver
	latch     *system.VisibilityLatch
	animator  *system.FloatAnimator
	scheduler *ecs.Scheduler

	descs   []prefabs.ShapeDescriptor
	index   map[string]int
	mounted map[string]ecs.Entity
	debug   bool
}

// New builds an empty region over descs. Nothing is mounted yet.
func New(descs []prefabs.ShapeDescriptor, opts Options) *Region {
	params := system.DefaultProximityParams()
	if opts.Params != nil {
		params = *opts.Params
	}

	r := &Region{
		ID:       uuid.NewString(),
		world:    ecs.NewWorld(),
		pointer:  system.NewPointerTracker(),
		viewport: system.NewViewportTracker(),
		animator: system.NewFloatAnimator(),
		mounted:  make(map[string]ecs.Entity),
		debug:    opts.Debug,
	}
	r.scaler = system.NewProximityScaler(r.pointer, params)
	r.resolver = system.NewAnchorResolver(r.viewport, r.scaler)
	r.latch = system.NewVisibilityLatch(r.Tick)
	r.scheduler = ecs.NewScheduler(r.animator)
	r.setDescriptors(descs)
	return r
}

// FromRegistry builds a region using the registry's shapes and tuning.
func FromRegistry(reg *prefabs.Registry, debug bool) *Region {
	opts := Options{Debug: debug}
	if reg != nil {
		opts.Params = registryParams(reg)
	}
	return New(reg.Descriptors(), opts)
}

func registryParams(reg *prefabs.Registry) *system.ProximityParams {
	return &system.ProximityParams{Radius: reg.Radius, Boost: reg.Boost}
}

func (r *Region) setDescriptors(descs []prefabs.ShapeDescriptor) {
	r.descs = append([]prefabs.ShapeDescriptor(nil), descs...)
	r.index = make(map[string]int, len(r.descs))
	for i, d := range r.descs {
		if _, dup := r.index[d.ID]; dup {
			log.Printf("region %s: duplicate shape id %q ignored", r.ID, d.ID)
			continue
		}
		r.index[d.ID] = i
	}
}

// Mount creates the shape's runtime state, subscribes it to pointer and
// viewport changes, and measures it. Mounting a mounted id is a no-op.
func (r *Region) Mount(id string) error {
	if _, ok := r.mounted[id]; ok {
		return nil
	}
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("region: mount %q: unknown shape", id)
	}

	e, err := entity.BuildShape(r.world, r.descs[i])
	if err != nil {
		return fmt.Errorf("region: mount %q: %w", id, err)
	}
	r.mounted[id] = e

	subs, _ := ecs.Get(r.world, e, component.SubscriptionComponent)
	subs.Hold(r.pointer.Subscribe(func(cp.Vector) {
		r.scaler.RecomputeEntity(r.world, e)
	}))
	subs.Hold(r.viewport.Subscribe(func(system.Viewport) {
		r.measure(e)
	}))

	r.measure(e)
	return nil
}

// MountAll mounts every descriptor in authored order.
func (r *Region) MountAll() error {
	for i, d := range r.descs {
		if r.index[d.ID] != i {
			continue
		}
		if err := r.Mount(d.ID); err != nil {
			return err
		}
	}
	return nil
}

// Measure re-reads id's anchor. It reports whether the shape is measured.
func (r *Region) Measure(id string) bool {
	e, ok := r.mounted[id]
	if !ok {
		return false
	}
	return r.measure(e)
}

func (r *Region) measure(e ecs.Entity) bool {
	shape, ok := ecs.Get(r.world, e, component.ShapeComponent)
	if !ok {
		return false
	}
	vp := r.viewport.Current()
	o := vp.Origin(shape)
	if err := entity.SetOrigin(r.world, e, o.X, o.Y-vp.ScrollY); err != nil {
		log.Printf("region %s: %s: %v", r.ID, shape.ID, err)
	}

	if !r.resolver.Measure(r.world, e) {
		return false
	}
	r.world.Events().PushShape(ecs.ShapeEvent{Entity: e, ShapeID: shape.ID, Kind: ecs.ShapeEventMeasured})
	r.latch.TryActivate(r.world, e)
	return true
}

// Teardown releases every listener the shape holds and drops its state.
// Unknown or already removed ids are a no-op.
func (r *Region) Teardown(id string) bool {
	e, ok := r.mounted[id]
	if !ok {
		return false
	}
	delete(r.mounted, id)

	if subs, ok := ecs.Get(r.world, e, component.SubscriptionComponent); ok {
		subs.Release()
	}
	r.world.DestroyEntity(e)
	r.world.Events().PushShape(ecs.ShapeEvent{Entity: e, ShapeID: id, Kind: ecs.ShapeEventUnmounted})
	return true
}

func (r *Region) TeardownAll() {
	for _, id := range r.MountedIDs() {
		r.Teardown(id)
	}
}

// Reload swaps the descriptor set. Every shape is torn down and remounted;
// the visibility latch survives, so remounted shapes start floating again as
// soon as they are measured.
func (r *Region) Reload(descs []prefabs.ShapeDescriptor) error {
	r.TeardownAll()
	r.setDescriptors(descs)
	return r.MountAll()
}

// ReloadRegistry swaps descriptors and tuning together, as after an edit
// of the field file.
func (r *Region) ReloadRegistry(reg *prefabs.Registry) error {
	if reg == nil {
		return fmt.Errorf("region: reload: nil registry")
	}
	r.scaler.SetParams(r.world, *registryParams(reg))
	return r.Reload(reg.Descriptors())
}

func (r *Region) PointerMove(x, y float64) {
	r.pointer.Move(x, y)
}

func (r *Region) PointerLeave() {
	r.pointer.Leave()
}

func (r *Region) Pointer() (cp.Vector, bool) {
	return r.pointer.Position()
}

// Resize reports the laid-out size of the region. Every mounted shape is
// re-measured through its viewport subscription.
func (r *Region) Resize(width, height float64) {
	r.viewport.Resize(width, height)
}

// Scroll reports how far the page is scrolled past the region's top edge.
func (r *Region) Scroll(y float64) {
	r.viewport.Scroll(y)
}

func (r *Region) Viewport() system.Viewport {
	return r.viewport.Current()
}

// SetVisible feeds the one-shot visibility edge. Only the first true closes
// the latch; everything after is ignored.
func (r *Region) SetVisible(visible bool) {
	if !r.latch.Signal(visible) {
		return
	}
	n := r.latch.ActivateAll(r.world)
	if r.debug {
		log.Printf("region %s: visible, %d shapes activated", r.ID, n)
	}
}

func (r *Region) Visible() bool {
	return r.latch.Visible()
}

// Update advances every active shape's clock by dt seconds.
func (r *Region) Update(dt float64) {
	r.scheduler.Update(r.world, dt)

	events := r.world.Events().Drain()
	if !r.debug {
		return
	}
	for _, evt := range events {
		if se, ok := evt.Data.(ecs.ShapeEvent); ok {
			log.Printf("region %s: tick %d: %s %s %s", r.ID, r.Tick(), se.ShapeID, se.Entity, se.Kind)
		}
	}
}

// Tick is the number of Update calls so far.
func (r *Region) Tick() uint64 {
	return r.scheduler.Ticks()
}

func (r *Region) Params() system.ProximityParams {
	return r.scaler.Params()
}

// SetParams retunes the proximity boost and recomputes every shape.
func (r *Region) SetParams(p system.ProximityParams) {
	r.scaler.SetParams(r.world, p)
}

// Sample returns the current paint state for id.
func (r *Region) Sample(id string) (Sample, bool) {
	e, ok := r.mounted[id]
	if !ok {
		return Sample{}, false
	}
	return r.sample(e)
}

func (r *Region) sample(e ecs.Entity) (Sample, bool) {
	shape, ok := ecs.Get(r.world, e, component.ShapeComponent)
	if !ok {
		return Sample{}, false
	}
	s := Sample{
		ID:       shape.ID,
		Kind:     shape.Kind,
		Gradient: shape.Gradient,
		Primary:  shape.Primary,
		Size:     shape.Size,
		Opacity:  1,
		Scale:    1,
	}
	if t, ok := ecs.Get(r.world, e, component.TransformComponent); ok {
		s.X, s.Y, s.Size = t.X, t.Y, t.Size
		s.OffsetY, s.Scale = t.OffsetY, t.Scale
	}
	if l, ok := ecs.Get(r.world, e, component.RenderLayerComponent); ok {
		s.Layer, s.Opacity = l.Index, l.Opacity
	}
	if a, ok := ecs.Get(r.world, e, component.AnchorComponent); ok {
		s.Anchor, s.Measured = a.Center, a.Measured
	}
	if a, ok := ecs.Get(r.world, e, component.ActivationComponent); ok {
		s.Active = a.Active
	}
	return s, true
}

// Samples returns every mounted shape in draw order: layer, then authored
// order.
func (r *Region) Samples() []Sample {
	out := make([]Sample, 0, len(r.mounted))
	for _, id := range r.MountedIDs() {
		if s, ok := r.sample(r.mounted[id]); ok {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Layer < out[j].Layer })
	return out
}

// MountedIDs returns mounted ids in authored order.
func (r *Region) MountedIDs() []string {
	ids := make([]string, 0, len(r.mounted))
	for i, d := range r.descs {
		if r.index[d.ID] != i {
			continue
		}
		if _, ok := r.mounted[d.ID]; ok {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Listeners reports live pointer and viewport subscriptions.
func (r *Region) Listeners() (pointer, viewport int) {
	return r.pointer.Listeners(), r.viewport.Listeners()
}

package region

import (
	"math"
	"testing"

	"github.com/milk9111/ambient/ecs/component"
	"github.com/milk9111/ambient/ecs/system"
	"github.com/milk9111/ambient/prefabs"
)

const eps = 1e-9

func heroDesc(id string, left, top float64) prefabs.ShapeDescriptor {
	return prefabs.ShapeDescriptor{
		ID:       id,
		Kind:     prefabs.ShapeCircle,
		Left:     left,
		Top:      top,
		Size:     100,
		FloatMin: -20,
		FloatMax: 20,
		Delay:    0.1,
		Duration: 6,
		Primary:  true,
	}
}

// newMountedRegion lays out a 1000x1000 region with every shape mounted.
func newMountedRegion(t *testing.T, descs ...prefabs.ShapeDescriptor) *Region {
	t.Helper()
	r := New(descs, Options{})
	r.Resize(1000, 1000)
	if err := r.MountAll(); err != nil {
		t.Fatalf("MountAll: %v", err)
	}
	return r
}

func mustSample(t *testing.T, r *Region, id string) Sample {
	t.Helper()
	s, ok := r.Sample(id)
	if !ok {
		t.Fatalf("no sample for %q", id)
	}
	return s
}

func TestMountMeasuresCenter(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 10, 20))
	s := mustSample(t, r, "a")
	if !s.Measured {
		t.Fatalf("expected mounted shape to be measured")
	}
	if s.Anchor.X != 150 || s.Anchor.Y != 250 {
		t.Fatalf("unexpected anchor %v", s.Anchor)
	}
	if s.X != 100 || s.Y != 200 {
		t.Fatalf("paint origin must be the authored corner, got (%v, %v)", s.X, s.Y)
	}
	if s.Scale != 1 || s.OffsetY != 0 || s.Active {
		t.Fatalf("fresh shape should be idle, got %+v", s)
	}
}

func TestMountBeforeLayoutStaysUnmeasured(t *testing.T) {
	r := New([]prefabs.ShapeDescriptor{heroDesc("a", 0, 0)}, Options{})
	if err := r.Mount("a"); err != nil {
		t.Fatal(err)
	}
	r.PointerMove(50, 50)
	s := mustSample(t, r, "a")
	if s.Measured || s.Scale != 1 {
		t.Fatalf("unmeasured anchor must yield scale 1, got %+v", s)
	}

	r.Resize(1000, 1000)
	s = mustSample(t, r, "a")
	if !s.Measured || math.Abs(s.Scale-1.3) > eps {
		t.Fatalf("resize should measure and boost, got %+v", s)
	}
}

func TestMountErrors(t *testing.T) {
	r := New([]prefabs.ShapeDescriptor{heroDesc("a", 0, 0)}, Options{})
	if err := r.Mount("missing"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if err := r.Mount("a"); err != nil {
		t.Fatal(err)
	}
	if err := r.Mount("a"); err != nil {
		t.Fatalf("remount should be a no-op, got %v", err)
	}
	if p, v := r.Listeners(); p != 1 || v != 1 {
		t.Fatalf("remount must not double-subscribe, got %d/%d", p, v)
	}
}

func TestPointerLeaveResetsScale(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
	}{
		{"on_center", 150, 150},
		{"inside_radius", 200, 180},
		{"outside_radius", 900, 900},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newMountedRegion(t, heroDesc("a", 10, 10), heroDesc("b", 60, 60))
			r.PointerMove(c.x, c.y)
			r.PointerLeave()
			for _, s := range r.Samples() {
				if s.Scale != 1 {
					t.Fatalf("%s: expected scale 1 after leave, got %v", s.ID, s.Scale)
				}
			}
		})
	}
}

func TestResizeBoostsWithoutPointerEvent(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 50, 50))
	r.PointerMove(150, 150)
	if s := mustSample(t, r, "a"); s.Scale != 1 {
		t.Fatalf("pointer starts out of range, got %v", s.Scale)
	}

	// New layout puts the centre at (150, 150).
	r.Resize(200, 200)
	s := mustSample(t, r, "a")
	if !(s.Scale > 1) {
		t.Fatalf("expected boost after resize, got %v", s.Scale)
	}
	if math.Abs(s.Scale-1.3) > eps {
		t.Fatalf("pointer on centre should give 1.3, got %v", s.Scale)
	}
}

func TestScrollRemeasures(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 10, 10))
	r.PointerMove(150, -50)
	if s := mustSample(t, r, "a"); s.Scale != 1 {
		t.Fatalf("expected no boost before scroll, got %v", s.Scale)
	}
	r.Scroll(200)
	s := mustSample(t, r, "a")
	if s.Anchor.Y != -50 || s.Y != -100 {
		t.Fatalf("scroll should move the shape up, got %+v", s)
	}
	if math.Abs(s.Scale-1.3) > eps {
		t.Fatalf("expected full boost, got %v", s.Scale)
	}
}

func TestVisibilityLatchOnce(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 0, 0))
	signals := []bool{true, false, true, false, true}
	transitions := 0
	prev := false
	for _, v := range signals {
		r.SetVisible(v)
		r.Update(DefaultStep)
		active := mustSample(t, r, "a").Active
		if active && !prev {
			transitions++
		}
		if prev && !active {
			t.Fatalf("active must never reset")
		}
		prev = active
	}
	if transitions != 1 {
		t.Fatalf("expected exactly one activation, got %d", transitions)
	}
}

func TestLateMountActivatesOnMeasure(t *testing.T) {
	descs := []prefabs.ShapeDescriptor{heroDesc("early", 0, 0), heroDesc("late", 50, 50)}
	r := New(descs, Options{})
	if err := r.Mount("early"); err != nil {
		t.Fatal(err)
	}
	r.SetVisible(true)
	if mustSample(t, r, "early").Active {
		t.Fatalf("unmeasured shape must not activate")
	}

	r.Resize(1000, 1000)
	if !mustSample(t, r, "early").Active {
		t.Fatalf("shape should activate once measured after the latch")
	}
	if err := r.Mount("late"); err != nil {
		t.Fatal(err)
	}
	if !mustSample(t, r, "late").Active {
		t.Fatalf("late mount should activate on its first measurement")
	}
}

func TestFloatEndToEnd(t *testing.T) {
	d := heroDesc("main-circle", 12, 18)
	r := newMountedRegion(t, d)
	r.SetVisible(true)

	want := system.FloatOffset(component.FloatRange{Min: -20, Max: 20, Delay: 0.1, Duration: 6}, 0)
	s := mustSample(t, r, "main-circle")
	if math.Abs(s.OffsetY-want) > eps {
		t.Fatalf("offset at t=0 should be phase shifted by the delay: want %v, got %v", want, s.OffsetY)
	}
	if s.OffsetY == d.FloatMin {
		t.Fatalf("delay should move the start away from the minimum")
	}

	baseX, baseY := s.X, s.Y
	for i := 0; i < 60*13; i++ {
		r.Update(DefaultStep)
		s = mustSample(t, r, "main-circle")
		if s.OffsetY < -20-eps || s.OffsetY > 20+eps {
			t.Fatalf("tick %d: offset %v out of range", i, s.OffsetY)
		}
		if s.X != baseX || s.Y != baseY {
			t.Fatalf("float must not move the paint origin")
		}
	}
}

func TestInactiveShapeDoesNotFloat(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 0, 0))
	for i := 0; i < 120; i++ {
		r.Update(DefaultStep)
	}
	if s := mustSample(t, r, "a"); s.OffsetY != 0 {
		t.Fatalf("inactive shape should sit at its base, got %v", s.OffsetY)
	}
}

func TestTeardownIsolation(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 10, 10), heroDesc("b", 60, 60))
	r.PointerMove(650, 650)
	before := mustSample(t, r, "b").Scale

	if !r.Teardown("a") {
		t.Fatalf("teardown of mounted shape should report true")
	}
	if r.Teardown("a") {
		t.Fatalf("second teardown should be a no-op")
	}
	if r.Teardown("never-mounted") {
		t.Fatalf("teardown of unknown id should be a no-op")
	}

	r.PointerMove(650, 650)
	r.PointerMove(150, 150)
	r.PointerMove(650, 650)
	if _, ok := r.Sample("a"); ok {
		t.Fatalf("torn down shape still sampled")
	}
	if got := mustSample(t, r, "b").Scale; got != before {
		t.Fatalf("teardown changed another shape's scale: %v != %v", got, before)
	}
	if p, v := r.Listeners(); p != 1 || v != 1 {
		t.Fatalf("teardown must release listeners, got %d/%d", p, v)
	}
}

func TestTeardownStopsAnimation(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 0, 0))
	r.SetVisible(true)
	r.Update(DefaultStep)
	r.TeardownAll()
	if p, v := r.Listeners(); p != 0 || v != 0 {
		t.Fatalf("expected no listeners, got %d/%d", p, v)
	}
	r.Update(DefaultStep)
	if len(r.Samples()) != 0 {
		t.Fatalf("expected no samples after teardown")
	}
}

func TestReloadKeepsLatch(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 0, 0))
	r.SetVisible(true)

	err := r.Reload([]prefabs.ShapeDescriptor{heroDesc("b", 20, 20), heroDesc("c", 40, 40)})
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if _, ok := r.Sample("a"); ok {
		t.Fatalf("old shape survived reload")
	}
	ids := r.MountedIDs()
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "c" {
		t.Fatalf("unexpected mounted ids %v", ids)
	}
	for _, s := range r.Samples() {
		if !s.Active {
			t.Fatalf("%s should activate after reload", s.ID)
		}
	}
}

func TestSetParams(t *testing.T) {
	r := newMountedRegion(t, heroDesc("a", 0, 0))
	r.PointerMove(50, 50)
	r.SetParams(system.ProximityParams{Radius: 400, Boost: 0.5})
	if got := mustSample(t, r, "a").Scale; math.Abs(got-1.5) > eps {
		t.Fatalf("expected retuned boost 1.5, got %v", got)
	}
	r.SetParams(system.ProximityParams{Radius: 0, Boost: 0.5})
	if got := mustSample(t, r, "a").Scale; got != 1 {
		t.Fatalf("zero radius disables the boost, got %v", got)
	}
	if r.Params().Radius != 0 {
		t.Fatalf("params not stored: %+v", r.Params())
	}
}

func TestSamplesDrawOrder(t *testing.T) {
	filler := heroDesc("filler", 30, 30)
	filler.Primary = false
	dup := heroDesc("a", 90, 90)
	r := newMountedRegion(t, heroDesc("a", 0, 0), filler, dup)

	samples := r.Samples()
	if len(samples) != 2 {
		t.Fatalf("duplicate id must be mounted once, got %d samples", len(samples))
	}
	if samples[0].ID != "filler" || samples[1].ID != "a" {
		t.Fatalf("fillers draw below primaries, got %s then %s", samples[0].ID, samples[1].ID)
	}
	if samples[1].X != 0 {
		t.Fatalf("first descriptor wins for a duplicate id")
	}
}

func TestFromRegistryUsesTuning(t *testing.T) {
	reg, err := prefabs.LoadRegistry(prefabs.DefaultFieldFile)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	r := FromRegistry(reg, false)
	if r.ID == "" {
		t.Fatalf("region needs an id")
	}
	if p := r.Params(); p.Radius != reg.Radius || p.Boost != reg.Boost {
		t.Fatalf("unexpected params %+v", p)
	}
	r.Resize(reg.Width, reg.Height)
	if err := r.MountAll(); err != nil {
		t.Fatal(err)
	}
	if len(r.Samples()) != reg.Len() {
		t.Fatalf("expected %d samples, got %d", reg.Len(), len(r.Samples()))
	}
	if other := FromRegistry(reg, false); other.ID == r.ID {
		t.Fatalf("regions must not share ids")
	}
}

func fieldRegistry(t *testing.T, radius, boost float64, ids ...string) *prefabs.Registry {
	t.Helper()
	spec := prefabs.FieldSpec{}
	spec.Proximity.Radius = &radius
	spec.Proximity.Boost = &boost
	for _, id := range ids {
		spec.Shapes = append(spec.Shapes, prefabs.ShapeSpec{ID: id, Kind: prefabs.ShapeCircle, Size: 100})
	}
	reg, err := prefabs.NewRegistry(spec)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestFromRegistryKeepsDisabledBoost(t *testing.T) {
	reg := fieldRegistry(t, 0, 0, "a")
	r := FromRegistry(reg, false)
	if p := r.Params(); p.Radius != 0 || p.Boost != 0 {
		t.Fatalf("zero proximity block must be kept, got %+v", p)
	}

	r.Resize(1000, 1000)
	if err := r.MountAll(); err != nil {
		t.Fatal(err)
	}
	s := mustSample(t, r, "a")
	r.PointerMove(s.Anchor.X, s.Anchor.Y)
	if got := mustSample(t, r, "a").Scale; got != 1 {
		t.Fatalf("disabled boost should leave scale at 1, got %v", got)
	}
}

func TestNewWithoutParamsUsesDefaults(t *testing.T) {
	r := New(nil, Options{})
	if p := r.Params(); p != system.DefaultProximityParams() {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestReloadRegistryAppliesTuning(t *testing.T) {
	r := FromRegistry(fieldRegistry(t, 200, 0.3, "a"), false)
	r.Resize(1000, 1000)
	if err := r.MountAll(); err != nil {
		t.Fatal(err)
	}
	r.PointerMove(50, 50)
	if got := mustSample(t, r, "a").Scale; math.Abs(got-1.3) > eps {
		t.Fatalf("expected 1.3 before reload, got %v", got)
	}

	if err := r.ReloadRegistry(fieldRegistry(t, 400, 0.5, "a", "b")); err != nil {
		t.Fatalf("ReloadRegistry: %v", err)
	}
	if p := r.Params(); p.Radius != 400 || p.Boost != 0.5 {
		t.Fatalf("params not reloaded: %+v", p)
	}
	if got := mustSample(t, r, "a").Scale; math.Abs(got-1.5) > eps {
		t.Fatalf("reloaded boost should apply without a pointer event, got %v", got)
	}
	if _, ok := r.Sample("b"); !ok {
		t.Fatalf("new shape not mounted")
	}
	if err := r.ReloadRegistry(nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}

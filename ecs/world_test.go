package ecs

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/ambient/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should be a no-op")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestWorldReusedIDIsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, h, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %v and %v", fresh, old)
	}
	if fresh == old {
		t.Fatalf("reused entity must carry a new generation")
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle reported alive")
	}
	if _, ok := Get(w, fresh, h); ok {
		t.Fatalf("component leaked into reused entity")
	}
	if err := Add(w, old, h, intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	hi := component.NewComponent[int]()
	hs := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hi, intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hi)
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, hi) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, hs, stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, hs, stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, hs) || !Has(w, e2, hs) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, hs) && Remove(w, e2, hs) },
		},
		{
			name:  "mutation_through_pointer",
			setup: func() error { return Add(w, e2, hi, intPtr(1)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e2, hi)
				*v = 42
				again, _ := Get(w, e2, hi)
				if *again != 42 {
					t.Fatalf("expected stored pointer to be shared, got %d", *again)
				}
			},
			teardown: func() bool { return Remove(w, e2, hi) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	t.Run("nil_component_rejected", func(t *testing.T) {
		if err := Add[int](w, e1, hi, nil); !errors.Is(err, component.ErrNilComponent) {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
	})
	t.Run("remove_missing_is_noop", func(t *testing.T) {
		if Remove(w, e1, hi) {
			t.Fatalf("removing a missing component should report false")
		}
	})
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	if err := Add(w, e1, h, intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h, intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h, func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)

	if _, ok := set[e1]; !ok {
		t.Fatalf("expected e1 in ForEach result")
	}
	if _, ok := set[e3]; !ok {
		t.Fatalf("expected e3 in ForEach result")
	}
	if _, ok := set[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				ha := component.NewComponent[int]()
				hb := component.NewComponent[string]()
				e1 := w.CreateEntity()
				e2 := w.CreateEntity()
				e3 := w.CreateEntity()

				_ = Add(w, e1, ha, intPtr(1))
				_ = Add(w, e2, ha, intPtr(2))
				_ = Add(w, e2, hb, stringPtr("x"))
				_ = Add(w, e3, hb, stringPtr("y"))

				var res []Entity
				ForEach2(w, ha, hb, func(e Entity, _ *int, _ *string) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				ha := component.NewComponent[int]()
				hb := component.NewComponent[string]()
				e := w.CreateEntity()
				_ = Add(w, e, ha, intPtr(1))
				_ = Add(w, e, hb, stringPtr("x"))

				if !w.DestroyEntity(e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach2(w, ha, hb, func(e Entity, _ *int, _ *string) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nothing",
			run: func(t *testing.T) {
				w := NewWorld()
				ha := component.NewComponent[int]()
				hb := component.NewComponent[string]()
				e := w.CreateEntity()
				_ = Add(w, e, ha, intPtr(1))

				called := false
				ForEach2(w, ha, hb, func(Entity, *int, *string) { called = true })
				if called {
					t.Fatalf("callback should not run without the second store")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestSparseSetSwapRemove(t *testing.T) {
	w := NewWorld()
	var s SparseSet
	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	s.Set(a, "a")
	s.Set(b, "b")
	s.Set(c, "c")

	if !s.Remove(a) {
		t.Fatalf("remove a failed")
	}
	if s.Has(a) {
		t.Fatalf("a still present")
	}
	if got := s.Get(c); got != "c" {
		t.Fatalf("moved element lost: %v", got)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2, got %d", s.Len())
	}
	if s.Remove(a) {
		t.Fatalf("double remove should report false")
	}
	if got := IntersectEntities(&s, &s); len(got) != 2 {
		t.Fatalf("self intersection should keep both, got %v", got)
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.PushShape(ShapeEvent{ShapeID: "a", Kind: ShapeEventMounted})
	q.PushShape(ShapeEvent{ShapeID: "a", Kind: ShapeEventActivated})
	if q.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", q.Len())
	}
	events := q.Drain()
	if len(events) != 2 || events[1].Type != string(ShapeEventActivated) {
		t.Fatalf("unexpected events %+v", events)
	}
	if q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

type countingSystem struct {
	n  int
	dt float64
}

func (s *countingSystem) Update(_ *World, dt float64) {
	s.n++
	s.dt += dt
}

func TestSchedulerRunsInOrder(t *testing.T) {
	a := &countingSystem{}
	b := &countingSystem{}
	var order []string
	s := NewScheduler(a, nil)
	s.Add(SystemFunc(func(*World, float64) { order = append(order, "func") }))
	s.Add(nil)
	s.Add(b)

	w := NewWorld()
	s.Update(w, 0.5)
	s.Update(w, 0)
	s.Update(w, 0.25)

	if a.n != 2 || b.n != 2 || len(order) != 2 {
		t.Fatalf("expected two runs each, got %d %d %d", a.n, b.n, len(order))
	}
	if a.dt != 0.75 {
		t.Fatalf("expected dt sum 0.75, got %v", a.dt)
	}
	if s.Ticks() != 3 {
		t.Fatalf("zero dt tick should still count, got %d", s.Ticks())
	}
	if s.Len() != 3 {
		t.Fatalf("nil systems should be skipped, got %d", s.Len())
	}
}

func TestEntityString(t *testing.T) {
	e := makeEntity(4, 2)
	if e.String() != "4v2" {
		t.Fatalf("unexpected %q", e.String())
	}
	if NoEntity.Valid() || !e.Valid() {
		t.Fatalf("validity mismatch")
	}
}

func TestAddErrorNamesComponent(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[float64]()
	e := w.CreateEntity()
	w.DestroyEntity(e)
	err := Add(w, e, h, new(float64))
	if !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if !strings.Contains(err.Error(), "float64") {
		t.Fatalf("error should name the component: %v", err)
	}
}

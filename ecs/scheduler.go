package ecs

// System advances world state by dt seconds of host time.
type System interface {
	Update(w *World, dt float64)
}

// SystemFunc adapts a plain func to System.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Update(w *World, dt float64) {
	f(w, dt)
}

// Scheduler runs systems in registration order once per host tick and counts
// the ticks it has run.
type Scheduler struct {
	systems []System
	ticks   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(sys System) {
	if sys == nil {
		return
	}
	s.systems = append(s.systems, sys)
}

// Update runs one tick. Ticks with a non-positive or NaN dt still count but
// run no systems.
func (s *Scheduler) Update(w *World, dt float64) {
	s.ticks++
	if !(dt > 0) {
		return
	}
	for _, sys := range s.systems {
		sys.Update(w, dt)
	}
}

// Ticks returns the number of Update calls so far.
func (s *Scheduler) Ticks() uint64 {
	if s == nil {
		return 0
	}
	return s.ticks
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

package system

// Signal fans a value out to subscribers synchronously, in subscription order.
// It is not safe for concurrent use; everything runs on the loop goroutine.
type Signal[T any] struct {
	subs []*subscriber[T]
}

type subscriber[T any] struct {
	fn      func(T)
	removed bool
}

// Subscribe registers fn and returns its release func. Releasing more than
// once is a no-op.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	sub := &subscriber[T]{fn: fn}
	s.subs = append(s.subs, sub)
	return func() { s.remove(sub) }
}

func (s *Signal[T]) remove(sub *subscriber[T]) {
	if sub.removed {
		return
	}
	sub.removed = true
	for i, cur := range s.subs {
		if cur == sub {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every subscriber with v. Subscribers released during Emit are
// still skipped; ones added during Emit wait for the next call.
func (s *Signal[T]) Emit(v T) {
	if s == nil || len(s.subs) == 0 {
		return
	}
	snapshot := append([]*subscriber[T](nil), s.subs...)
	for _, sub := range snapshot {
		if sub.removed {
			continue
		}
		sub.fn(v)
	}
}

// Len returns the number of live subscribers.
func (s *Signal[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.subs)
}

package component

// Subscription holds the release funcs for listeners a shape registered.
// Release is idempotent.
type Subscription struct {
	releases []func()
}

var SubscriptionComponent = NewComponent[Subscription]()

func (s *Subscription) Hold(release func()) {
	if s == nil || release == nil {
		return
	}
	s.releases = append(s.releases, release)
}

func (s *Subscription) Release() {
	if s == nil {
		return
	}
	held := s.releases
	s.releases = nil
	for i := len(held) - 1; i >= 0; i-- {
		held[i]()
	}
}

func (s *Subscription) Len() int {
	if s == nil {
		return 0
	}
	return len(s.releases)
}

package lifecycle

import "sync"

// Scope tracks one attachment to the component tree and owns the cleanup
// functions that must run when that attachment ends. A Scope starts attached
// and detaches exactly once; the transition is terminal.
type Scope struct {
	mu       sync.Mutex
	cleanups []*cleanup
	detached bool
}

type cleanup struct {
	fn func()
}

// NewScope creates an attached scope with no registered cleanups.
func NewScope() *Scope {
	return &Scope{}
}

// OnDetach registers fn to run when the scope detaches and returns a remover
// that cancels the registration. Cleanups run in reverse registration order,
// like stacked defers.
//
// Registration on an already-detached scope runs fn immediately: cleanup is
// guaranteed, never silently dropped, so resources acquired after an abrupt
// detach are still released. A nil fn is ignored.
func (s *Scope) OnDetach(fn func()) (remove func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.detached {
		s.mu.Unlock()
		fn()
		return func() {}
	}

	c := &cleanup{fn: fn}
	s.cleanups = append(s.cleanups, c)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, cur := range s.cleanups {
			if cur == c {
				s.cleanups = append(s.cleanups[:i], s.cleanups[i+1:]...)
				break
			}
		}
	}
}

// Detach ends the attachment and runs all registered cleanups in LIFO order.
// It is idempotent: only the first call runs cleanups, later calls return
// immediately. Cleanups run outside the scope's lock, so they may register
// further cleanups (which run immediately) or detach child scopes.
func (s *Scope) Detach() {
	s.mu.Lock()
	if s.detached {
		s.mu.Unlock()
		return
	}
	s.detached = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i].fn()
	}
}

// Detached reports whether Detach has been called.
func (s *Scope) Detached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detached
}

// Child creates a scope that detaches when this scope detaches, mirroring a
// nested subtree. Detaching the child early removes it from the parent, so a
// long-lived parent does not accumulate references to dead children.
// A child created under an already-detached parent is born detached.
func (s *Scope) Child() *Scope {
	child := NewScope()
	removeFromParent := s.OnDetach(child.Detach)
	child.OnDetach(removeFromParent)
	return child
}

package observable

import (
	"slices"
	"sync"
)

// Listener is a registered notification target for a Value.
//
// Listener identity is the handle itself: subscribing the same *Listener twice
// keeps a single registration, and unsubscribing an unknown handle is a no-op.
// The callback receives no arguments; it re-reads the current value with Get,
// which avoids delivering a value that was already replaced or whose listener
// was removed while a notification pass was running.
type Listener struct {
	fn func()
}

// NewListener creates a listener around the given callback.
// A nil callback produces a listener that ignores notifications.
func NewListener(fn func()) *Listener {
	if fn == nil {
		fn = func() {}
	}
	return &Listener{fn: fn}
}

// Value is a goroutine-safe observable container. It holds a current value and
// an ordered set of listeners that are notified synchronously on every change.
//
// Notification passes snapshot the listener set first: listeners registered
// during a pass are not invoked until the next change, and listeners removed
// during a pass are skipped for the remainder of it. Listeners always run
// outside the internal lock, so they may freely call Get, Set, Subscribe and
// Unsubscribe on the same Value.
//
// Example:
//
//	theme := observable.New("light")
//
//	stop := theme.Watch(func() {
//	    fmt.Println("theme is now", theme.Get())
//	})
//	defer stop()
//
//	theme.Set("dark") // prints "theme is now dark"
type Value[T any] struct {
	mu        sync.RWMutex
	current   T
	listeners []*Listener
	present   map[*Listener]struct{}
	eq        func(a, b T) bool
}

// Option configures a Value during construction.
type Option[T any] func(*Value[T])

// WithEqualFunc installs an equality check that suppresses the notification
// pass when a replacement value compares equal to the current one. Without it,
// every Set and Update notifies, even when the value did not change.
func WithEqualFunc[T any](eq func(a, b T) bool) Option[T] {
	return func(v *Value[T]) {
		v.eq = eq
	}
}

// New creates a Value holding the given initial value.
// Creating a Value never fails and the initial value is not announced.
func New[T any](initial T, opts ...Option[T]) *Value[T] {
	v := &Value[T]{
		current: initial,
		present: make(map[*Listener]struct{}),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Get returns the current value. It is side-effect-free and safe to call from
// inside a listener callback.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the current value and synchronously notifies every listener
// that was registered when the pass began, in registration order, exactly once
// each. Set returns after the last listener has run.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	if v.eq != nil && v.eq(v.current, next) {
		v.mu.Unlock()
		return
	}
	v.current = next
	snapshot := slices.Clone(v.listeners)
	v.mu.Unlock()

	v.dispatch(snapshot)
}

// Update applies fn to the current value under the write lock and stores the
// result, then notifies like Set. It is the safe way to derive the next value
// from the previous one when several goroutines write concurrently.
// A nil fn is ignored.
func (v *Value[T]) Update(fn func(T) T) {
	if fn == nil {
		return
	}

	v.mu.Lock()
	next := fn(v.current)
	if v.eq != nil && v.eq(v.current, next) {
		v.mu.Unlock()
		return
	}
	v.current = next
	snapshot := slices.Clone(v.listeners)
	v.mu.Unlock()

	v.dispatch(snapshot)
}

// Subscribe registers the listener. Subscribing an already-registered listener
// is a no-op, so the listener set never holds the same handle twice. A nil
// listener is ignored.
func (v *Value[T]) Subscribe(l *Listener) {
	if l == nil {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.present[l]; ok {
		return
	}
	v.present[l] = struct{}{}
	v.listeners = append(v.listeners, l)
}

// Unsubscribe removes the listener if it is registered and is a no-op
// otherwise. It never fails, so cleanup paths can call it unconditionally and
// repeatedly.
func (v *Value[T]) Unsubscribe(l *Listener) {
	if l == nil {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.present[l]; !ok {
		return
	}
	delete(v.present, l)
	for i, cur := range v.listeners {
		if cur == l {
			v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
			break
		}
	}
}

// Watch subscribes the callback and returns a disposer that removes it.
// The disposer is idempotent. Watch is the convenience form of
// NewListener+Subscribe for callers that keep no listener handle of their own.
func (v *Value[T]) Watch(fn func()) (stop func()) {
	l := NewListener(fn)
	v.Subscribe(l)
	return func() {
		v.Unsubscribe(l)
	}
}

// Subscribers reports the number of currently registered listeners.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.listeners)
}

// dispatch runs one notification pass over a snapshot of the listener set.
// Each entry's registration is re-checked right before its callback runs, so
// listeners removed earlier in the same pass are skipped.
func (v *Value[T]) dispatch(snapshot []*Listener) {
	for _, l := range snapshot {
		v.mu.RLock()
		_, ok := v.present[l]
		v.mu.RUnlock()
		if !ok {
			continue
		}
		l.fn()
	}
}

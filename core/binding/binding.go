package binding

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/providerkit/core/lifecycle"
	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
)

type options struct {
	scheduler      Scheduler
	initialRefresh bool
}

// Option customizes a Bind call.
type Option func(*options)

// WithScheduler routes refresh callbacks through s instead of running them
// inline. A nil s keeps the default.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithoutInitialRefresh skips the refresh normally triggered at bind time.
// The consumer then hears only about changes after the bind.
func WithoutInitialRefresh() Option {
	return func(o *options) {
		o.initialRefresh = false
	}
}

// Binding is one live subscription of a consumer to a provided observable
// value. Its lifetime is bounded by the scope it was bound under: detaching
// the scope releases the binding, and an early Release removes the scope
// hook. A binding never transitions back to subscribed once released.
type Binding[T any] struct {
	src     *observable.Value[T]
	refresh func(T)
	sched   Scheduler

	listener *observable.Listener
	unhook   func()

	mu       sync.Mutex
	released bool
}

// Bind subscribes refresh to the nearest enclosing observable entry for p and
// ties the subscription to scope. On every change of the provided value,
// refresh receives the value current at refresh-execution time, delivered
// through the configured scheduler (inline unless WithScheduler says
// otherwise). A refresh also runs once at bind time so the consumer starts
// from the present value; WithoutInitialRefresh opts out.
//
// Bind returns ErrNotProvided when nothing encloses ctx for p, and
// ErrNotObservable when the nearest entry is a fixed value. Both indicate a
// wiring mistake at the call site, not a runtime condition to retry.
//
// A nil scope leaves release entirely to the caller. Binding under an
// already-detached scope returns an already-released binding and runs no
// initial refresh.
func Bind[T any](ctx context.Context, scope *lifecycle.Scope, p *provider.Provider[T], refresh func(T), opts ...Option) (*Binding[T], error) {
	src, ok := p.Observable(ctx)
	if !ok {
		if p.Provided(ctx) {
			return nil, fmt.Errorf("%w: %s", ErrNotObservable, p.Name())
		}
		return nil, fmt.Errorf("%w: %s", ErrNotProvided, p.Name())
	}

	o := options{
		scheduler:      Synchronous(),
		initialRefresh: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Binding[T]{
		src:     src,
		refresh: refresh,
		sched:   o.scheduler,
	}
	if b.refresh == nil {
		b.refresh = func(T) {}
	}

	b.listener = observable.NewListener(b.schedule)
	src.Subscribe(b.listener)
	if scope != nil {
		// Runs b.Release immediately when scope is already detached, so the
		// subscription placed above never outlives the scope.
		b.unhook = scope.OnDetach(b.Release)
	}

	if o.initialRefresh {
		b.schedule()
	}
	return b, nil
}

// Current returns the present value of the bound observable. It keeps working
// after Release.
func (b *Binding[T]) Current() T {
	return b.src.Get()
}

// Refresh triggers one refresh through the configured scheduler, outside any
// notification. No-op after Release.
func (b *Binding[T]) Refresh() {
	b.schedule()
}

// Release ends the subscription: unsubscribes from the observable and removes
// the scope hook. It is idempotent and also runs when the scope detaches.
// After Release returns no further refreshes start; with an asynchronous
// scheduler a refresh already running may still finish.
func (b *Binding[T]) Release() {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		return
	}
	b.released = true
	unhook := b.unhook
	b.unhook = nil
	b.mu.Unlock()

	b.src.Unsubscribe(b.listener)
	if unhook != nil {
		unhook()
	}
}

// Released reports whether the binding has been released, either directly or
// by its scope detaching.
func (b *Binding[T]) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

func (b *Binding[T]) schedule() {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		return
	}
	sched := b.sched
	b.mu.Unlock()

	sched.Schedule(b.run)
}

func (b *Binding[T]) run() {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		return
	}
	refresh := b.refresh
	b.mu.Unlock()

	refresh(b.src.Get())
}

package provider

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/providerkit/core/observable"
)

// Provider is a typed key under which one value is shared with a subtree.
// Each Provider instance is its own context key, so two providers never
// collide even when they carry the same type and name. The name feeds
// diagnostics, relay channel names and snapshot keys.
type Provider[T any] struct {
	name string
}

// New creates a provider for values of type T. The name should be short,
// stable and unique within the application ("theme", "locale", "settings").
func New[T any](name string) *Provider[T] {
	return &Provider[T]{name: name}
}

// Name returns the provider's name.
func (p *Provider[T]) Name() string {
	return p.name
}

// entry is what a Provide call stores in the context: either a fixed value or
// an observable source. The provider pointer itself is the context key.
type entry[T any] struct {
	static T
	source *observable.Value[T]
}

// Provide associates a fixed value with the subtree rooted at the returned
// context. The value is set once, never mutated, and shared by reference with
// every descendant; reading it is side-effect-free. An inner Provide shadows
// an outer one, so the nearest enclosing value wins.
func (p *Provider[T]) Provide(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, p, entry[T]{static: v})
}

// ProvideObservable associates an observable source with the subtree, so
// descendants can both read the current value and subscribe to changes.
// A nil source returns the context unchanged.
func (p *Provider[T]) ProvideObservable(ctx context.Context, src *observable.Value[T]) context.Context {
	if src == nil {
		return ctx
	}
	return context.WithValue(ctx, p, entry[T]{source: src})
}

// Value returns the current value of the nearest enclosing entry: the fixed
// value for the static variant, or the source's current value for the
// observable variant. The second return reports whether any entry exists.
func (p *Provider[T]) Value(ctx context.Context) (T, bool) {
	e, ok := p.lookup(ctx)
	if !ok {
		var zero T
		return zero, false
	}
	if e.source != nil {
		return e.source.Get(), true
	}
	return e.static, true
}

// ValueOr returns the current value, or fallback when no enclosing entry
// exists.
func (p *Provider[T]) ValueOr(ctx context.Context, fallback T) T {
	if v, ok := p.Value(ctx); ok {
		return v
	}
	return fallback
}

// MustValue returns the current value and panics when no enclosing entry
// exists. Reading a provider outside a subtree that provides it is a
// programming error: it should surface during development, not be handled at
// runtime.
func (p *Provider[T]) MustValue(ctx context.Context) T {
	v, ok := p.Value(ctx)
	if !ok {
		panic(fmt.Sprintf("provider: no value provided for %q", p.name))
	}
	return v
}

// Observable returns the nearest enclosing observable source, if the nearest
// entry is the observable variant. It returns false both when nothing is
// provided and when the nearest entry is a fixed value.
func (p *Provider[T]) Observable(ctx context.Context) (*observable.Value[T], bool) {
	e, ok := p.lookup(ctx)
	if !ok || e.source == nil {
		return nil, false
	}
	return e.source, true
}

// Provided reports whether any entry (fixed or observable) encloses ctx.
func (p *Provider[T]) Provided(ctx context.Context) bool {
	_, ok := p.lookup(ctx)
	return ok
}

func (p *Provider[T]) lookup(ctx context.Context) (entry[T], bool) {
	e, ok := ctx.Value(p).(entry[T])
	return e, ok
}

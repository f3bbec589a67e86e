package locale

import (
	"context"

	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
)

// Current is the provider carrying the resolved locale through a request or
// render subtree. Exposed so consumers can bind to locale changes directly.
var Current = provider.New[Locale]("locale")

// Provide attaches a fixed locale to the subtree rooted at the returned
// context.
func Provide(ctx context.Context, l Locale) context.Context {
	return Current.Provide(ctx, l)
}

// ProvideObservable attaches a locale source whose changes descendants can
// follow, for live language switching.
func ProvideObservable(ctx context.Context, src *observable.Value[Locale]) context.Context {
	return Current.ProvideObservable(ctx, src)
}

// FromContext returns the locale provided to ctx, if any.
func FromContext(ctx context.Context) (Locale, bool) {
	return Current.Value(ctx)
}

// FromContextOr returns the provided locale or fallback when none is set.
func FromContextOr(ctx context.Context, fallback Locale) Locale {
	return Current.ValueOr(ctx, fallback)
}

// MustFromContext returns the provided locale and panics when none is set.
// Use it below a middleware or render wrapper that always provides one.
func MustFromContext(ctx context.Context) Locale {
	return Current.MustValue(ctx)
}

// Package provider shares typed values with a subtree of the application
// through context.Context, without threading them through every call site.
//
// A Provider is a typed key. Code near the root of a request or program
// provides a value under it, and any code running beneath that point reads
// the value back by key. Lookups walk outward to the nearest enclosing
// Provide call, so an inner value shadows an outer one.
//
// # Fixed values
//
// Provide attaches a value that never changes for the lifetime of the
// subtree:
//
//	var Theme = provider.New[string]("theme")
//
//	ctx = Theme.Provide(ctx, "dark")
//
//	// Anywhere below:
//	theme := Theme.ValueOr(ctx, "light")
//
// Value returns (zero, false) when nothing is provided, ValueOr substitutes
// a fallback, and MustValue panics. Use MustValue only where an absent value
// means a wiring bug.
//
// # Observable values
//
// ProvideObservable attaches an observable source instead, so consumers can
// follow changes as well as read the current value:
//
//	settings := observable.New(defaultSettings)
//	ctx = Settings.ProvideObservable(ctx, settings)
//
//	// A consumer reads the current value...
//	cur := Settings.MustValue(ctx)
//
//	// ...or subscribes through the source:
//	src, ok := Settings.Observable(ctx)
//	if ok {
//		stop := src.Watch(func() { apply(src.Get()) })
//		defer stop()
//	}
//
// Value works uniformly for both variants; Observable reports false for the
// fixed variant so consumers that need change notification can detect the
// mismatch. Package binding builds on this to attach consumers with managed
// lifetimes.
//
// Two providers never collide: each Provider instance is its own context
// key, even when names or types are equal. Providers themselves are
// stateless and safe for concurrent use; mutability lives in the observable
// source.
package provider

// Package binding connects consumers to provided observable values with
// managed lifetimes.
//
// A consumer that reads an observable value usually wants three things: the
// current value right away, a callback on every later change, and a guarantee
// that the callback stops when the consumer goes away. Bind packages those
// three into one call:
//
//	var Settings = provider.New[AppSettings]("settings")
//
//	scope := lifecycle.NewScope()
//	defer scope.Detach()
//
//	b, err := binding.Bind(ctx, scope, Settings, func(s AppSettings) {
//		applySettings(s)
//	})
//	if err != nil {
//		return err
//	}
//
// The refresh callback runs once at bind time with the present value, then
// once per change. When scope detaches, the subscription is released; no
// callback outlives its scope. Release can also be called directly to end
// the subscription early.
//
// Bind fails fast on wiring mistakes: ErrNotProvided when nothing in ctx
// provides the value, ErrNotObservable when the provided value is fixed and
// can never change. Both wrap the provider name for diagnostics and are
// matched with errors.Is.
//
// # Scheduling
//
// By default refreshes run inline on the goroutine that changed the value,
// strictly ordered. When a refresh is expensive or bursty, WithScheduler
// substitutes an asynchronous policy:
//
//	b, err := binding.Bind(ctx, scope, Settings, push,
//		binding.WithScheduler(binding.Coalescing(ctx)),
//	)
//
// Coalescing collapses bursts of notifications into fewer refreshes; since a
// refresh reads the value at execution time, the surviving refresh still
// sees the newest state.
package binding

// Package observable provides a goroutine-safe observable value container
// with synchronous, ordered change notification.
//
// Value[T] is the broadcasting half of the provider pattern: one owner mutates
// the value, any number of subscribers react to changes. Listeners receive no
// payload; they re-read the current value themselves, which keeps delivery
// race-free when listeners come and go during a notification pass.
//
// # Usage
//
// Basic watching:
//
//	count := observable.New(0)
//
//	stop := count.Watch(func() {
//	    fmt.Println("count:", count.Get())
//	})
//	defer stop()
//
//	count.Set(1)                                // count: 1
//	count.Update(func(n int) int { return n + 1 }) // count: 2
//
// Handle-based registration, for callers that need to subscribe and
// unsubscribe the same identity from different places:
//
//	l := observable.NewListener(func() { redraw() })
//	state.Subscribe(l)
//	state.Subscribe(l) // no-op, still one registration
//	defer state.Unsubscribe(l)
//
// Suppressing no-op notifications:
//
//	cfg := observable.New(defaults, observable.WithEqualFunc(func(a, b Config) bool {
//	    return a == b
//	}))
//
// # Notification semantics
//
// Set replaces the value, then notifies every listener registered at that
// moment, in registration order, exactly once, synchronously in the caller's
// goroutine. The listener set is snapshotted before the pass begins:
//
//   - a listener subscribed during a pass is first notified on the next change;
//   - a listener unsubscribed during a pass is skipped for the rest of it;
//   - a listener may unsubscribe itself without affecting the others.
//
// Listeners run outside the internal lock, so re-entrant calls back into the
// Value are allowed. A listener that calls Set starts a nested pass that
// completes before the outer pass resumes.
//
// # Thread safety
//
// All methods are safe for concurrent use. Concurrent writers serialize on an
// internal mutex; the notification pass of each write runs after its value is
// visible to Get.
package observable

package binding

import (
	"context"
	"sync"

	"github.com/dmitrymomot/providerkit/pkg/async"
)

// Scheduler decides when a refresh callback runs relative to the notification
// that triggered it. The default scheduler runs callbacks inline; asynchronous
// schedulers decouple slow consumers from the notifying goroutine.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(fn func())

// Schedule calls s(fn).
func (s SchedulerFunc) Schedule(fn func()) {
	s(fn)
}

// Synchronous returns a scheduler that runs each callback inline on the
// goroutine that delivered the notification. Refreshes are strictly ordered
// and complete before the triggering Set returns.
func Synchronous() Scheduler {
	return SchedulerFunc(func(fn func()) {
		fn()
	})
}

// Coalescing returns a scheduler that runs callbacks on background goroutines,
// one at a time, and collapses bursts: callbacks scheduled while one is
// running fold into a single follow-up run. Because refresh callbacks re-read
// the current value when they run, the follow-up still observes the newest
// state. Use it when a refresh is expensive (rendering, network pushes) and
// intermediate values can be skipped.
//
// Callbacks never overlap, so a consumer refreshed through this scheduler
// needs no locking of its own. Once ctx is canceled the scheduler drops every
// callback.
func Coalescing(ctx context.Context) Scheduler {
	return &coalescing{ctx: ctx}
}

type coalescing struct {
	ctx     context.Context
	mu      sync.Mutex
	running bool
	queued  func()
}

func (c *coalescing) Schedule(fn func()) {
	if c.ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	if c.running {
		c.queued = fn
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	c.launch(fn)
}

func (c *coalescing) launch(fn func()) {
	async.Exec(c.ctx, fn, func(_ context.Context, fn func()) error {
		fn()
		c.next()
		return nil
	})
}

// next runs the queued follow-up, or marks the scheduler idle. When ctx was
// canceled mid-chain the queued callback is dropped with everything after it.
func (c *coalescing) next() {
	c.mu.Lock()
	fn := c.queued
	c.queued = nil
	if fn == nil || c.ctx.Err() != nil {
		c.running = false
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.launch(fn)
}

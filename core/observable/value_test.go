package observable_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/providerkit/core/observable"
)

func TestValue_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns initial value", func(t *testing.T) {
		t.Parallel()

		v := observable.New("light")
		assert.Equal(t, "light", v.Get())
	})

	t.Run("set replaces current value", func(t *testing.T) {
		t.Parallel()

		v := observable.New("light")
		v.Set("dark")
		assert.Equal(t, "dark", v.Get())
	})

	t.Run("update derives next value from previous", func(t *testing.T) {
		t.Parallel()

		v := observable.New(10)
		v.Update(func(n int) int { return n * 2 })
		assert.Equal(t, 20, v.Get())
	})

	t.Run("nil update func is ignored", func(t *testing.T) {
		t.Parallel()

		v := observable.New(10)
		v.Update(nil)
		assert.Equal(t, 10, v.Get())
	})

	t.Run("works with struct values", func(t *testing.T) {
		t.Parallel()

		type settings struct {
			Theme  string
			Banner string
		}

		v := observable.New(settings{Theme: "light"})
		v.Set(settings{Theme: "dark", Banner: "hello"})
		assert.Equal(t, settings{Theme: "dark", Banner: "hello"}, v.Get())
	})
}

func TestValue_Notify(t *testing.T) {
	t.Parallel()

	t.Run("notifies all listeners in registration order", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		var order []string
		for _, name := range []string{"a", "b", "c"} {
			v.Watch(func() { order = append(order, name) })
		}

		v.Set(1)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("notifies exactly once per set", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		calls := 0
		v.Watch(func() { calls++ })

		v.Set(1)
		v.Set(2)
		v.Set(3)
		assert.Equal(t, 3, calls)
	})

	t.Run("listener re-reads current value", func(t *testing.T) {
		t.Parallel()

		v := observable.New("initial")

		var seen string
		v.Watch(func() { seen = v.Get() })

		v.Set("changed")
		assert.Equal(t, "changed", seen)
	})

	t.Run("update notifies like set", func(t *testing.T) {
		t.Parallel()

		v := observable.New(1)

		calls := 0
		v.Watch(func() { calls++ })

		v.Update(func(n int) int { return n + 1 })
		assert.Equal(t, 1, calls)
		assert.Equal(t, 2, v.Get())
	})

	t.Run("set without listeners is harmless", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)
		v.Set(42)
		assert.Equal(t, 42, v.Get())
	})
}

func TestValue_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("subscribing same listener twice delivers once", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		calls := 0
		l := observable.NewListener(func() { calls++ })
		v.Subscribe(l)
		v.Subscribe(l)

		require.Equal(t, 1, v.Subscribers())

		v.Set(1)
		assert.Equal(t, 1, calls)
	})

	t.Run("duplicate subscribe keeps original position", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		var order []string
		first := observable.NewListener(func() { order = append(order, "first") })
		second := observable.NewListener(func() { order = append(order, "second") })

		v.Subscribe(first)
		v.Subscribe(second)
		v.Subscribe(first) // must not move first behind second

		v.Set(1)
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("nil listener is ignored", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)
		v.Subscribe(nil)
		assert.Equal(t, 0, v.Subscribers())
	})

	t.Run("nil callback listener is safe", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)
		v.Subscribe(observable.NewListener(nil))
		v.Set(1)
		assert.Equal(t, 1, v.Get())
	})
}

func TestValue_Unsubscribe(t *testing.T) {
	t.Parallel()

	t.Run("removed listener is no longer notified", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		calls := 0
		l := observable.NewListener(func() { calls++ })
		v.Subscribe(l)

		v.Set(1)
		v.Unsubscribe(l)
		v.Set(2)

		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, v.Subscribers())
	})

	t.Run("double unsubscribe is a no-op", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		l := observable.NewListener(func() {})
		v.Subscribe(l)
		v.Unsubscribe(l)
		v.Unsubscribe(l)

		assert.Equal(t, 0, v.Subscribers())
	})

	t.Run("unsubscribing unknown listener leaves the set unchanged", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		calls := 0
		v.Watch(func() { calls++ })
		v.Unsubscribe(observable.NewListener(func() {}))

		require.Equal(t, 1, v.Subscribers())
		v.Set(1)
		assert.Equal(t, 1, calls)
	})

	t.Run("watch disposer is idempotent", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		stop := v.Watch(func() {})
		other := v.Watch(func() {})
		_ = other

		stop()
		stop()

		assert.Equal(t, 1, v.Subscribers())
	})
}

func TestValue_Reentrancy(t *testing.T) {
	t.Parallel()

	t.Run("listener unsubscribing itself does not stop the pass", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		var order []string
		var stopB func()
		v.Watch(func() { order = append(order, "a") })
		stopB = v.Watch(func() {
			order = append(order, "b")
			stopB()
		})
		v.Watch(func() { order = append(order, "c") })

		v.Set(1)
		assert.Equal(t, []string{"a", "b", "c"}, order)

		order = nil
		v.Set(2)
		assert.Equal(t, []string{"a", "c"}, order)
	})

	t.Run("listener removed by an earlier listener is skipped in the same pass", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		var order []string
		var stopVictim func()
		v.Watch(func() {
			order = append(order, "killer")
			stopVictim()
		})
		stopVictim = v.Watch(func() { order = append(order, "victim") })

		v.Set(1)
		assert.Equal(t, []string{"killer"}, order)
	})

	t.Run("listener registered during a pass waits for the next pass", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		lateCalls := 0
		registered := false
		v.Watch(func() {
			if !registered {
				registered = true
				v.Watch(func() { lateCalls++ })
			}
		})

		v.Set(1)
		assert.Equal(t, 0, lateCalls, "listener added mid-pass must not run in that pass")

		v.Set(2)
		assert.Equal(t, 1, lateCalls)
	})

	t.Run("listener may set the value again", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		v.Watch(func() {
			if v.Get() < 3 {
				v.Set(v.Get() + 1)
			}
		})

		v.Set(1)
		assert.Equal(t, 3, v.Get())
	})
}

func TestValue_WithEqualFunc(t *testing.T) {
	t.Parallel()

	t.Run("equal replacement skips notification", func(t *testing.T) {
		t.Parallel()

		v := observable.New("same", observable.WithEqualFunc(func(a, b string) bool {
			return a == b
		}))

		calls := 0
		v.Watch(func() { calls++ })

		v.Set("same")
		assert.Equal(t, 0, calls)

		v.Set("different")
		assert.Equal(t, 1, calls)
	})

	t.Run("without equality every set notifies", func(t *testing.T) {
		t.Parallel()

		v := observable.New("same")

		calls := 0
		v.Watch(func() { calls++ })

		v.Set("same")
		assert.Equal(t, 1, calls)
	})
}

func TestValue_Concurrency(t *testing.T) {
	t.Parallel()

	t.Run("concurrent writers and readers are safe", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					v.Set(n*100 + j)
					_ = v.Get()
				}
			}(i)
		}
		wg.Wait()
	})

	t.Run("concurrent subscribe and unsubscribe is safe", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					stop := v.Watch(func() { _ = v.Get() })
					v.Set(j)
					stop()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 0, v.Subscribers())
	})

	t.Run("update is atomic under contention", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)

		const writers = 8
		const perWriter = 250

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perWriter; j++ {
					v.Update(func(n int) int { return n + 1 })
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, writers*perWriter, v.Get())
	})
}

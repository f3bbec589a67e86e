package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
)

func TestProvider_Fixed(t *testing.T) {
	t.Parallel()

	t.Run("provide and read back", func(t *testing.T) {
		t.Parallel()

		theme := provider.New[string]("theme")
		ctx := theme.Provide(context.Background(), "dark")

		got, ok := theme.Value(ctx)
		require.True(t, ok)
		assert.Equal(t, "dark", got)
		assert.True(t, theme.Provided(ctx))
	})

	t.Run("absent value returns zero and false", func(t *testing.T) {
		t.Parallel()

		theme := provider.New[string]("theme")

		got, ok := theme.Value(context.Background())
		assert.False(t, ok)
		assert.Empty(t, got)
		assert.False(t, theme.Provided(context.Background()))
	})

	t.Run("value or falls back when absent", func(t *testing.T) {
		t.Parallel()

		theme := provider.New[string]("theme")
		ctx := context.Background()

		assert.Equal(t, "light", theme.ValueOr(ctx, "light"))
		assert.Equal(t, "dark", theme.ValueOr(theme.Provide(ctx, "dark"), "light"))
	})

	t.Run("must value panics when absent", func(t *testing.T) {
		t.Parallel()

		theme := provider.New[string]("theme")

		assert.Panics(t, func() {
			theme.MustValue(context.Background())
		})
		assert.NotPanics(t, func() {
			theme.MustValue(theme.Provide(context.Background(), "dark"))
		})
	})

	t.Run("inner provide shadows outer", func(t *testing.T) {
		t.Parallel()

		theme := provider.New[string]("theme")
		outer := theme.Provide(context.Background(), "light")
		inner := theme.Provide(outer, "dark")

		assert.Equal(t, "dark", theme.ValueOr(inner, ""))
		assert.Equal(t, "light", theme.ValueOr(outer, ""))
	})

	t.Run("sibling subtrees stay isolated", func(t *testing.T) {
		t.Parallel()

		theme := provider.New[string]("theme")
		root := context.Background()
		left := theme.Provide(root, "left")
		right := theme.Provide(root, "right")

		assert.Equal(t, "left", theme.ValueOr(left, ""))
		assert.Equal(t, "right", theme.ValueOr(right, ""))
		assert.False(t, theme.Provided(root))
	})

	t.Run("providers with equal names do not collide", func(t *testing.T) {
		t.Parallel()

		a := provider.New[int]("count")
		b := provider.New[int]("count")
		ctx := a.Provide(context.Background(), 1)
		ctx = b.Provide(ctx, 2)

		assert.Equal(t, 1, a.ValueOr(ctx, 0))
		assert.Equal(t, 2, b.ValueOr(ctx, 0))
	})

	t.Run("name is preserved", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "theme", provider.New[string]("theme").Name())
	})
}

func TestProvider_Observable(t *testing.T) {
	t.Parallel()

	t.Run("value follows the source", func(t *testing.T) {
		t.Parallel()

		count := provider.New[int]("count")
		src := observable.New(1)
		ctx := count.ProvideObservable(context.Background(), src)

		assert.Equal(t, 1, count.MustValue(ctx))

		src.Set(2)
		assert.Equal(t, 2, count.MustValue(ctx))
	})

	t.Run("observable exposes the source", func(t *testing.T) {
		t.Parallel()

		count := provider.New[int]("count")
		src := observable.New(1)
		ctx := count.ProvideObservable(context.Background(), src)

		got, ok := count.Observable(ctx)
		require.True(t, ok)
		assert.Same(t, src, got)
	})

	t.Run("observable reports false for fixed values", func(t *testing.T) {
		t.Parallel()

		count := provider.New[int]("count")
		ctx := count.Provide(context.Background(), 1)

		src, ok := count.Observable(ctx)
		assert.False(t, ok)
		assert.Nil(t, src)
	})

	t.Run("observable reports false when absent", func(t *testing.T) {
		t.Parallel()

		count := provider.New[int]("count")

		src, ok := count.Observable(context.Background())
		assert.False(t, ok)
		assert.Nil(t, src)
	})

	t.Run("nil source leaves the context unchanged", func(t *testing.T) {
		t.Parallel()

		count := provider.New[int]("count")
		ctx := context.Background()

		assert.Equal(t, ctx, count.ProvideObservable(ctx, nil))
		assert.False(t, count.Provided(count.ProvideObservable(ctx, nil)))
	})

	t.Run("fixed value shadows an outer source", func(t *testing.T) {
		t.Parallel()

		count := provider.New[int]("count")
		src := observable.New(1)
		outer := count.ProvideObservable(context.Background(), src)
		inner := count.Provide(outer, 10)

		assert.Equal(t, 10, count.MustValue(inner))
		_, ok := count.Observable(inner)
		assert.False(t, ok)
	})

	t.Run("subscription sees updates to the provided source", func(t *testing.T) {
		t.Parallel()

		count := provider.New[int]("count")
		src := observable.New(0)
		ctx := count.ProvideObservable(context.Background(), src)

		got, ok := count.Observable(ctx)
		require.True(t, ok)

		var seen []int
		stop := got.Watch(func() { seen = append(seen, got.Get()) })
		defer stop()

		src.Set(1)
		src.Set(2)
		assert.Equal(t, []int{1, 2}, seen)
	})
}

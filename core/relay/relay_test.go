package relay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
)

func testRelay(t *testing.T, src *observable.Value[int]) *Relay[int] {
	t.Helper()
	return &Relay[int]{
		src:     src,
		origin:  uuid.New(),
		channel: DefaultChannelPrefix + "counter",
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func encodeEnvelope(t *testing.T, origin uuid.UUID, value any) string {
	t.Helper()
	data, err := json.Marshal(value)
	require.NoError(t, err)
	payload, err := json.Marshal(envelope{Origin: origin, Data: data})
	require.NoError(t, err)
	return string(payload)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil client is rejected", func(t *testing.T) {
		t.Parallel()

		counter := provider.New[int]("counter")
		_, err := New(nil, counter, observable.New(0))
		assert.ErrorIs(t, err, ErrNilClient)
	})

	t.Run("channel derives from provider name", func(t *testing.T) {
		t.Parallel()

		counter := provider.New[int]("counter")
		r := testRelay(t, observable.New(0))
		assert.Equal(t, "providerkit:relay:"+counter.Name(), r.Channel())
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("remote message sets the local value", func(t *testing.T) {
		t.Parallel()

		src := observable.New(0)
		r := testRelay(t, src)

		r.apply(context.Background(), encodeEnvelope(t, uuid.New(), 42))
		assert.Equal(t, 42, src.Get())
	})

	t.Run("remote message notifies local subscribers", func(t *testing.T) {
		t.Parallel()

		src := observable.New(0)
		r := testRelay(t, src)

		var seen []int
		stop := src.Watch(func() { seen = append(seen, src.Get()) })
		defer stop()

		r.apply(context.Background(), encodeEnvelope(t, uuid.New(), 7))
		assert.Equal(t, []int{7}, seen)
	})

	t.Run("own origin is skipped", func(t *testing.T) {
		t.Parallel()

		src := observable.New(1)
		r := testRelay(t, src)

		r.apply(context.Background(), encodeEnvelope(t, r.origin, 42))
		assert.Equal(t, 1, src.Get())
	})

	t.Run("malformed envelope is dropped", func(t *testing.T) {
		t.Parallel()

		src := observable.New(1)
		r := testRelay(t, src)

		r.apply(context.Background(), "not json")
		assert.Equal(t, 1, src.Get())
	})

	t.Run("malformed value is dropped", func(t *testing.T) {
		t.Parallel()

		src := observable.New(1)
		r := testRelay(t, src)

		payload, err := json.Marshal(envelope{Origin: uuid.New(), Data: json.RawMessage(`"nan"`)})
		require.NoError(t, err)

		r.apply(context.Background(), string(payload))
		assert.Equal(t, 1, src.Get())
	})

	t.Run("applied values do not republish", func(t *testing.T) {
		t.Parallel()

		src := observable.New(0)
		r := testRelay(t, src)

		// The watch hook Run installs; publish must bail before touching
		// the nil client because the applying flag is set.
		stop := src.Watch(func() { r.publish(context.Background()) })
		defer stop()

		assert.NotPanics(t, func() {
			r.apply(context.Background(), encodeEnvelope(t, uuid.New(), 42))
		})
		assert.Equal(t, 42, src.Get())
	})
}

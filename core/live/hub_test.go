package live_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/providerkit/core/live"
	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
)

// testHub starts a hub with its event loop and an HTTP server, returning
// the hub, a dial helper, and the channel carrying Run's result.
func testHub(t *testing.T, src *observable.Value[int], opts ...live.HubOption) (*live.Hub[int], func() *ws.Conn, chan error) {
	t.Helper()

	counter := provider.New[int]("counter")
	opts = append(opts, live.WithWSAllowAnyOrigin())
	hub := live.NewHub(counter, src, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		runErr <- hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-runDone:
		case <-time.After(time.Second):
			t.Error("hub did not stop")
		}
	})

	server := httptest.NewServer(hub.Handler())
	t.Cleanup(server.Close)

	dial := func() *ws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http")
		conn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}
	return hub, dial, runErr
}

func readText(t *testing.T, conn *ws.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func TestHub(t *testing.T) {
	t.Parallel()

	t.Run("client receives current value on connect", func(t *testing.T) {
		t.Parallel()

		src := observable.New(42)
		_, dial, _ := testHub(t, src)

		conn := dial()
		assert.Equal(t, "42", readText(t, conn))
	})

	t.Run("changes broadcast to all clients", func(t *testing.T) {
		t.Parallel()

		src := observable.New(0)
		hub, dial, _ := testHub(t, src)

		first := dial()
		second := dial()
		assert.Equal(t, "0", readText(t, first))
		assert.Equal(t, "0", readText(t, second))

		require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

		src.Set(7)
		assert.Equal(t, "7", readText(t, first))
		assert.Equal(t, "7", readText(t, second))
	})

	t.Run("client count follows connects and disconnects", func(t *testing.T) {
		t.Parallel()

		src := observable.New(0)
		hub, dial, _ := testHub(t, src)

		conn := dial()
		assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

		conn.Close()
		assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
	})

	t.Run("stop disconnects clients and ends run", func(t *testing.T) {
		t.Parallel()

		src := observable.New(0)
		hub, dial, runErr := testHub(t, src)

		conn := dial()
		assert.Equal(t, "0", readText(t, conn))

		hub.Stop()
		hub.Stop() // idempotent

		select {
		case err := <-runErr:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("run did not return after stop")
		}

		// The client sees a close frame or a dropped connection.
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})

	t.Run("second run returns already running", func(t *testing.T) {
		t.Parallel()

		src := observable.New(0)
		hub, dial, _ := testHub(t, src)

		// A successful dial proves the event loop is serving.
		conn := dial()
		assert.Equal(t, "0", readText(t, conn))

		assert.ErrorIs(t, hub.Run(context.Background()), live.ErrAlreadyRunning)
	})

	t.Run("fragments broadcast as html", func(t *testing.T) {
		t.Parallel()

		src := observable.New(3)
		_, dial, _ := testHub(t, src, live.WithWSFragment(intFragment))

		conn := dial()
		assert.Equal(t, "<b>3</b>", readText(t, conn))

		src.Set(4)
		assert.Equal(t, "<b>4</b>", readText(t, conn))
	})
}

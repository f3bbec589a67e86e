package live

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/providerkit/core/logger"
	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
	"github.com/dmitrymomot/providerkit/core/render"
)

const (
	// writeWait bounds a single WebSocket write.
	writeWait = 5 * time.Second

	// pongWait is how long a client may stay silent before its connection
	// is considered dead. Pings go out every pingPeriod, which must be
	// shorter than pongWait.
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// readLimit caps inbound frames. The stream is one-way; clients have
	// no reason to send large messages.
	readLimit = 512

	// DefaultSendBuffer is the per-client outbound queue size. Clients
	// that fall this many updates behind are evicted.
	DefaultSendBuffer = 16

	broadcastBuffer = 256
)

type wsConfig struct {
	upgrader   websocket.Upgrader
	sendBuffer int
	logger     *slog.Logger
	fragment   any
}

// HubOption configures a Hub.
type HubOption func(*wsConfig)

// WithWSReadBuffer sets the WebSocket read buffer size.
func WithWSReadBuffer(size int) HubOption {
	return func(cfg *wsConfig) {
		cfg.upgrader.ReadBufferSize = size
	}
}

// WithWSWriteBuffer sets the WebSocket write buffer size.
func WithWSWriteBuffer(size int) HubOption {
	return func(cfg *wsConfig) {
		cfg.upgrader.WriteBufferSize = size
	}
}

// WithWSOriginCheck sets the origin check for upgrade requests. The default
// same-origin policy of gorilla/websocket applies otherwise.
func WithWSOriginCheck(fn func(r *http.Request) bool) HubOption {
	return func(cfg *wsConfig) {
		cfg.upgrader.CheckOrigin = fn
	}
}

// WithWSAllowAnyOrigin accepts upgrade requests from any origin.
func WithWSAllowAnyOrigin() HubOption {
	return func(cfg *wsConfig) {
		cfg.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

// WithWSSendBuffer sets the per-client outbound queue size.
func WithWSSendBuffer(size int) HubOption {
	return func(cfg *wsConfig) {
		if size > 0 {
			cfg.sendBuffer = size
		}
	}
}

// WithWSLogger sets the logger for connection lifecycle events.
// Defaults to a discard logger.
func WithWSLogger(log *slog.Logger) HubOption {
	return func(cfg *wsConfig) {
		if log != nil {
			cfg.logger = log
		}
	}
}

// WithWSFragment broadcasts HTML fragments instead of JSON. The fragment's
// input type must match the hub's value type.
func WithWSFragment[T any](fragment func(T) templ.Component) HubOption {
	return func(cfg *wsConfig) {
		if fragment != nil {
			cfg.fragment = fragment
		}
	}
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes an observable value to WebSocket clients. Every change
// broadcasts a fresh render to all connected clients; new clients receive
// the current value on connect. Clients whose outbound queue fills up are
// evicted so one slow reader cannot stall the rest.
//
// All bookkeeping runs on the Run goroutine, which owns the client map.
type Hub[T any] struct {
	src        *observable.Value[T]
	log        *slog.Logger
	render     func(context.Context, T) (string, error)
	upgrader   websocket.Upgrader
	sendBuffer int

	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}

	mu      sync.Mutex
	stopped bool

	clients map[uuid.UUID]*client
	count   atomic.Int32

	running atomic.Bool
}

// NewHub creates a hub streaming src under p's name. Broadcasts carry JSON
// payloads unless WithWSFragment is set. It panics on a nil source or a
// fragment whose input type does not match T.
func NewHub[T any](p *provider.Provider[T], src *observable.Value[T], opts ...HubOption) *Hub[T] {
	if src == nil {
		panic("live: nil observable source")
	}

	cfg := wsConfig{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sendBuffer: DefaultSendBuffer,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Hub[T]{
		src:        src,
		log:        cfg.logger.With(logger.Component("live"), logger.Provider(p.Name())),
		upgrader:   cfg.upgrader,
		sendBuffer: cfg.sendBuffer,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]*client),
	}
	h.render = jsonRender[T]()
	if cfg.fragment != nil {
		fragment, ok := cfg.fragment.(func(T) templ.Component)
		if !ok {
			panic(fmt.Sprintf("live: fragment type %T does not match value type %T", cfg.fragment, *new(T)))
		}
		h.render = func(ctx context.Context, v T) (string, error) {
			return render.HTML(ctx, fragment(v))
		}
	}
	return h
}

// Run watches the source and serves the hub's event loop until ctx is
// canceled or Stop is called. Handler connections require a running hub.
// A hub is single-use: once Run has returned it stays stopped.
func (h *Hub[T]) Run(ctx context.Context) error {
	if !h.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer h.running.Store(false)

	stop := h.src.Watch(func() { h.publish(ctx) })
	defer stop()

	h.log.InfoContext(ctx, "hub started")

	for {
		select {
		case <-h.done:
			h.closeAll()
			return nil

		case <-ctx.Done():
			// Closing done unblocks handlers stuck registering a client.
			h.Stop()
			h.closeAll()
			return ctx.Err()

		case c := <-h.register:
			h.clients[c.id] = c
			h.count.Store(int32(len(h.clients)))
			h.log.DebugContext(ctx, "client registered", logger.Client(c.id.String()), logger.Subscribers(len(h.clients)))

		case c := <-h.unregister:
			h.drop(ctx, c, "client unregistered")

		case data := <-h.broadcast:
			h.fanout(ctx, data)
		}
	}
}

// Stop disconnects all clients and makes Run return.
// Safe to call multiple times.
func (h *Hub[T]) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

// Clients returns the number of connected clients.
func (h *Hub[T]) Clients() int {
	return int(h.count.Load())
}

// Handler returns the HTTP handler that upgrades requests to WebSocket
// connections and attaches them to the hub.
func (h *Hub[T]) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied with an HTTP error.
			h.log.WarnContext(r.Context(), "upgrade failed", logger.Error(err))
			return
		}

		c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, h.sendBuffer)}

		// Queue the current value so the client has state before the
		// first broadcast arrives.
		if data, err := h.render(r.Context(), h.src.Get()); err == nil {
			c.send <- []byte(data)
		} else {
			h.log.ErrorContext(r.Context(), "failed to render snapshot", logger.Error(err))
		}

		select {
		case h.register <- c:
		case <-h.done:
			conn.Close()
			return
		}

		go h.writePump(c)
		h.readPump(c)
	})
}

// publish runs on the source's notification path and feeds the event loop.
func (h *Hub[T]) publish(ctx context.Context) {
	data, err := h.render(ctx, h.src.Get())
	if err != nil {
		h.log.ErrorContext(ctx, "failed to render broadcast", logger.Error(err))
		return
	}

	select {
	case h.broadcast <- []byte(data):
	default:
		h.log.WarnContext(ctx, "broadcast queue full, dropping update")
	}
}

func (h *Hub[T]) fanout(ctx context.Context, data []byte) {
	var slow []*client
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		h.drop(ctx, c, "evicted slow client")
	}
}

// drop removes a client and closes its send queue, which makes its write
// pump shut the connection down. Only the Run goroutine calls it.
func (h *Hub[T]) drop(ctx context.Context, c *client, msg string) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.count.Store(int32(len(h.clients)))
	h.log.DebugContext(ctx, msg, logger.Client(c.id.String()), logger.Subscribers(len(h.clients)))
}

func (h *Hub[T]) closeAll() {
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
	h.count.Store(0)
}

// readPump discards inbound frames and watches for disconnects. It runs on
// the handler goroutine and keeps the connection's read deadline fed by
// pong responses.
func (h *Hub[T]) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump owns all writes to the connection: queued broadcasts, pings,
// and the close frame when the hub drops the client.
func (h *Hub[T]) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

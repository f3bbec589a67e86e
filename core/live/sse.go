package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/providerkit/core/logger"
	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
	"github.com/dmitrymomot/providerkit/core/render"
)

// DefaultKeepAlive is the default keep-alive comment interval for SSE
// connections. Keep it below proxy idle timeouts, which commonly sit at
// 60 seconds.
const DefaultKeepAlive = 30 * time.Second

type sseConfig struct {
	event       string
	keepAlive   time.Duration
	noKeepAlive bool
	logger      *slog.Logger
	fragment    any
}

// SSEOption configures an SSEHandler.
type SSEOption func(*sseConfig)

// WithEventName overrides the SSE event name, which defaults to the
// provider name.
func WithEventName(name string) SSEOption {
	return func(cfg *sseConfig) {
		if name != "" {
			cfg.event = name
		}
	}
}

// WithKeepAlive sets the keep-alive comment interval.
func WithKeepAlive(interval time.Duration) SSEOption {
	return func(cfg *sseConfig) {
		if interval > 0 {
			cfg.keepAlive = interval
		}
	}
}

// WithoutKeepAlive disables keep-alive comments.
func WithoutKeepAlive() SSEOption {
	return func(cfg *sseConfig) {
		cfg.noKeepAlive = true
	}
}

// WithLogger sets the logger for stream lifecycle and render failures.
// Defaults to a discard logger.
func WithLogger(log *slog.Logger) SSEOption {
	return func(cfg *sseConfig) {
		if log != nil {
			cfg.logger = log
		}
	}
}

// WithFragment renders events as HTML fragments instead of JSON, for
// hypermedia clients that swap server-rendered markup. The fragment's input
// type must match the handler's value type.
func WithFragment[T any](fragment func(T) templ.Component) SSEOption {
	return func(cfg *sseConfig) {
		if fragment != nil {
			cfg.fragment = fragment
		}
	}
}

// SSEHandler streams an observable value to clients over Server-Sent
// Events. Each client receives the current value on connect and a fresh
// render after every change. Rapid updates coalesce; a client always
// catches up to the newest value rather than replaying intermediate ones.
type SSEHandler[T any] struct {
	src       *observable.Value[T]
	event     string
	keepAlive time.Duration
	log       *slog.Logger
	render    func(context.Context, T) (string, error)
}

// NewSSE creates an SSE handler streaming src under p's name. Events carry
// JSON payloads unless WithFragment is set. It panics on a nil source or a
// fragment whose input type does not match T.
func NewSSE[T any](p *provider.Provider[T], src *observable.Value[T], opts ...SSEOption) *SSEHandler[T] {
	if src == nil {
		panic("live: nil observable source")
	}

	cfg := sseConfig{
		event:     p.Name(),
		keepAlive: DefaultKeepAlive,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.noKeepAlive {
		cfg.keepAlive = 0
	}

	h := &SSEHandler[T]{
		src:       src,
		event:     cfg.event,
		keepAlive: cfg.keepAlive,
		log:       cfg.logger.With(logger.Component("live"), logger.Provider(p.Name())),
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

func jsonRender[T any]() func(context.Context, T) (string, error) {
	return func(_ context.Context, v T) (string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func (h *SSEHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	log := h.log.With(logger.Client(uuid.New().String()))

	// The stream is long-lived and must not be cut off by the server's
	// read or write timeouts. An expired read deadline cancels the request
	// context through the server's background read.
	rc := http.NewResponseController(w)
	if err := rc.SetReadDeadline(time.Time{}); err != nil {
		log.WarnContext(ctx, "could not clear read deadline", logger.Error(err))
	}
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.WarnContext(ctx, "could not clear write deadline", logger.Error(err))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	// A one-slot signal channel coalesces bursts: the loop re-reads the
	// source on wakeup, so it always renders the newest value.
	notify := make(chan struct{}, 1)
	stop := h.src.Watch(func() {
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer stop()

	if !h.writeEvent(ctx, w, flusher, log) {
		return
	}
	log.DebugContext(ctx, "client connected", logger.Subscribers(h.src.Subscribers()))

	var ticker *time.Ticker
	var keepAlive <-chan time.Time
	if h.keepAlive > 0 {
		ticker = time.NewTicker(h.keepAlive)
		defer ticker.Stop()
		keepAlive = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "client disconnected")
			return

		case <-notify:
			if ticker != nil {
				ticker.Reset(h.keepAlive)
			}
			if !h.writeEvent(ctx, w, flusher, log) {
				return
			}

		case <-keepAlive:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent renders the current value and writes it as one SSE event.
// It reports whether the stream is still usable.
func (h *SSEHandler[T]) writeEvent(ctx context.Context, w io.Writer, flusher http.Flusher, log *slog.Logger) bool {
	payload, err := h.render(ctx, h.src.Get())
	if err != nil {
		log.ErrorContext(ctx, "failed to render event", logger.Error(err))
		return true // keep the stream open, skip this event
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", h.event); err != nil {
		return false
	}
	// Multi-line payloads must be split into one data field per line.
	for _, line := range strings.Split(payload, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return false
		}
	}
	if _, err := fmt.Fprint(w, "\n"); err != nil {
		return false
	}
	flusher.Flush()
	return true
}

package relay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/providerkit/core/logger"
	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
)

// DefaultChannelPrefix is prepended to the provider name to form the
// Redis channel a relay publishes on.
const DefaultChannelPrefix = "providerkit:relay:"

// envelope is the wire format exchanged between relay instances. Origin
// identifies the publishing instance so it can discard its own messages.
type envelope struct {
	Origin uuid.UUID       `json:"origin"`
	Data   json.RawMessage `json:"data"`
}

type config struct {
	prefix string
	logger *slog.Logger
}

// Option configures a Relay.
type Option func(*config)

// WithChannelPrefix overrides the channel prefix. Empty values are ignored.
func WithChannelPrefix(prefix string) Option {
	return func(cfg *config) {
		if prefix != "" {
			cfg.prefix = prefix
		}
	}
}

// WithLogger sets the logger for transport failures and skipped messages.
// Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(cfg *config) {
		if log != nil {
			cfg.logger = log
		}
	}
}

// Relay mirrors an observable value across process instances over Redis
// pub/sub. Every instance watching the same provider name converges on the
// value most recently set on any of them.
//
// Pub/sub delivery is fire-and-forget: an instance that is down during an
// update misses it. Pair the relay with a store snapshot when values must
// survive restarts.
type Relay[T any] struct {
	client  *redis.Client
	src     *observable.Value[T]
	origin  uuid.UUID
	channel string
	log     *slog.Logger

	running  atomic.Bool
	applying atomic.Bool
}

// New creates a relay for src published under p's name. The relay is inert
// until Run is called.
func New[T any](client *redis.Client, p *provider.Provider[T], src *observable.Value[T], opts ...Option) (*Relay[T], error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if src == nil {
		return nil, ErrNilSource
	}

	cfg := config{
		prefix: DefaultChannelPrefix,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	channel := cfg.prefix + p.Name()
	return &Relay[T]{
		client:  client,
		src:     src,
		origin:  uuid.New(),
		channel: channel,
		log:     cfg.logger.With(logger.Component("relay"), logger.Channel(channel)),
	}, nil
}

// Channel returns the Redis channel the relay publishes on.
func (r *Relay[T]) Channel() string {
	return r.channel
}

// Run subscribes to the relay channel and mirrors changes in both
// directions until ctx is canceled. Local changes publish to Redis; remote
// messages apply to the source without being published again.
func (r *Relay[T]) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.running.Store(false)

	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	stop := r.src.Watch(func() { r.publish(ctx) })
	defer stop()

	r.log.InfoContext(ctx, "relay started")

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return ErrSubscriptionClosed
			}
			r.apply(ctx, msg.Payload)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// publish runs on the source's notification path whenever the local value
// changes. Changes that came in over the wire are not echoed back.
func (r *Relay[T]) publish(ctx context.Context) {
	if r.applying.Load() {
		return
	}

	data, err := json.Marshal(r.src.Get())
	if err != nil {
		r.log.ErrorContext(ctx, "failed to encode value", logger.Error(err))
		return
	}
	payload, err := json.Marshal(envelope{Origin: r.origin, Data: data})
	if err != nil {
		r.log.ErrorContext(ctx, "failed to encode envelope", logger.Error(err))
		return
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.log.ErrorContext(ctx, "failed to publish update", logger.Error(err))
	}
}

// apply decodes a wire message and sets the local source. Messages from
// this instance and malformed payloads are dropped.
func (r *Relay[T]) apply(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.log.WarnContext(ctx, "dropped malformed envelope", logger.Error(err))
		return
	}
	if env.Origin == r.origin {
		return
	}

	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		r.log.WarnContext(ctx, "dropped malformed value", logger.Error(err))
		return
	}

	r.applying.Store(true)
	r.src.Set(value)
	r.applying.Store(false)
}

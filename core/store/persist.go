package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/providerkit/core/lifecycle"
	"github.com/dmitrymomot/providerkit/core/logger"
	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
	"github.com/dmitrymomot/providerkit/pkg/async"
)

type persistConfig struct {
	asyncSaves bool
	logger     *slog.Logger
}

// PersistOption configures a Persister.
type PersistOption func(*persistConfig)

// WithAsyncSaves moves snapshot writes off the notification path onto a
// background goroutine. At most one save runs at a time; updates arriving
// while a save is in flight coalesce into the latest snapshot. Call Flush
// before shutdown to await outstanding writes.
func WithAsyncSaves() PersistOption {
	return func(cfg *persistConfig) {
		cfg.asyncSaves = true
	}
}

// WithLogger sets the logger for encode and save failures.
// Defaults to a discard logger.
func WithLogger(log *slog.Logger) PersistOption {
	return func(cfg *persistConfig) {
		if log != nil {
			cfg.logger = log
		}
	}
}

// Persister mirrors an observable value into a Store, writing a JSON
// snapshot on every change.
type Persister[T any] struct {
	store      Store
	name       string
	src        *observable.Value[T]
	ctx        context.Context
	log        *slog.Logger
	asyncSaves bool

	mu       sync.Mutex
	pending  []byte
	inflight *async.ExecFuture
	released bool
	stop     func()
	unhook   func()
}

// Persist saves every subsequent change of src under p's name. It does not
// write the current value; pair it with Restore at startup. The persister
// stops watching when scope detaches, and ctx bounds individual saves.
// A nil scope leaves release to the caller.
func Persist[T any](ctx context.Context, scope *lifecycle.Scope, st Store, p *provider.Provider[T], src *observable.Value[T], opts ...PersistOption) (*Persister[T], error) {
	if src == nil {
		return nil, ErrNilSource
	}

	cfg := persistConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	per := &Persister[T]{
		store:      st,
		name:       p.Name(),
		src:        src,
		ctx:        ctx,
		log:        cfg.logger.With(logger.Component("store"), logger.Provider(p.Name())),
		asyncSaves: cfg.asyncSaves,
	}
	per.stop = src.Watch(per.onChange)
	if scope != nil {
		per.unhook = scope.OnDetach(per.Release)
	}
	return per, nil
}

// Release stops watching the source. In-flight asynchronous saves keep
// running; use Flush to await them. Release is idempotent.
func (per *Persister[T]) Release() {
	per.mu.Lock()
	if per.released {
		per.mu.Unlock()
		return
	}
	per.released = true
	stop, unhook := per.stop, per.unhook
	per.stop, per.unhook = nil, nil
	per.mu.Unlock()

	if stop != nil {
		stop()
	}
	if unhook != nil {
		unhook()
	}
}

// Released reports whether the persister has been released.
func (per *Persister[T]) Released() bool {
	per.mu.Lock()
	defer per.mu.Unlock()
	return per.released
}

// Flush waits for outstanding asynchronous saves to finish and returns the
// first error observed. In synchronous mode it returns nil immediately.
func (per *Persister[T]) Flush() error {
	var first error
	for {
		per.mu.Lock()
		f := per.inflight
		per.mu.Unlock()
		if f == nil {
			return first
		}

		if err := f.Await(); err != nil && first == nil {
			first = err
		}

		// A completed save normally replaces inflight with its successor
		// or nil before it finishes. The pointer survives only when the
		// save context was canceled before the write started.
		per.mu.Lock()
		if per.inflight == f {
			per.inflight = nil
		}
		per.mu.Unlock()
	}
}

func (per *Persister[T]) onChange() {
	per.mu.Lock()
	if per.released {
		per.mu.Unlock()
		return
	}
	per.mu.Unlock()

	data, err := json.Marshal(per.src.Get())
	if err != nil {
		per.log.ErrorContext(per.ctx, "failed to encode snapshot", logger.Error(err))
		return
	}

	if !per.asyncSaves {
		if err := per.store.Save(per.ctx, per.name, data); err != nil {
			per.log.ErrorContext(per.ctx, "failed to save snapshot", logger.Error(err))
		}
		return
	}

	per.mu.Lock()
	defer per.mu.Unlock()
	per.pending = data
	if per.inflight == nil {
		per.inflight = per.launch()
	}
}

// launch starts a save for the pending snapshot and chains the next one
// when more data arrived meanwhile. Callers must hold mu.
func (per *Persister[T]) launch() *async.ExecFuture {
	data := per.pending
	per.pending = nil

	return async.Exec(per.ctx, data, func(ctx context.Context, data []byte) error {
		err := per.store.Save(ctx, per.name, data)
		if err != nil {
			per.log.ErrorContext(ctx, "failed to save snapshot", logger.Error(err))
		}

		per.mu.Lock()
		if per.pending != nil {
			per.inflight = per.launch()
		} else {
			per.inflight = nil
		}
		per.mu.Unlock()
		return err
	})
}

package demo

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/providerkit/core/binding"
	"github.com/dmitrymomot/providerkit/core/config"
	"github.com/dmitrymomot/providerkit/core/lifecycle"
	"github.com/dmitrymomot/providerkit/core/live"
	"github.com/dmitrymomot/providerkit/core/locale"
	"github.com/dmitrymomot/providerkit/core/logger"
	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/relay"
	"github.com/dmitrymomot/providerkit/core/server"
	"github.com/dmitrymomot/providerkit/core/source"
	"github.com/dmitrymomot/providerkit/core/store"
	"github.com/dmitrymomot/providerkit/integration/database/pg"
	"github.com/dmitrymomot/providerkit/integration/database/redis"
)

// App wires the settings pipeline end to end: file source, snapshot store,
// cross-instance relay, and live fan-out to browsers.
type App struct {
	config   Config
	logger   *slog.Logger
	settings *observable.Value[Settings]
	locales  *locale.Locales
	hub      *live.Hub[Settings]
	store    store.Store

	// Readiness checks registered while Run connects infrastructure.
	checks []func(context.Context) error
}

type AppOption func(*App) error

// NewApp loads configuration and builds the application. Infrastructure
// connects when Run is called.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{
		config:   cfg,
		logger:   logger.New(),
		settings: observable.New(DefaultSettings),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.locales == nil {
		locales, err := locale.NewLocales(cfg.Locales...)
		if err != nil {
			return nil, err
		}
		app.locales = locales
	}

	app.hub = live.NewHub(SettingsProvider, app.settings,
		live.WithWSLogger(app.logger),
		live.WithWSAllowAnyOrigin(),
	)

	return app, nil
}

func WithLogger(log *slog.Logger) AppOption {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = log
		return nil
	}
}

// WithStore overrides the snapshot backend. The default is Postgres on the
// configured pool; tests typically pass store.NewMemory().
func WithStore(st store.Store) AppOption {
	return func(app *App) error {
		if st == nil {
			return errors.New("store cannot be nil")
		}
		app.store = st
		return nil
	}
}

func WithLocales(locales *locale.Locales) AppOption {
	return func(app *App) error {
		if locales == nil {
			return errors.New("locales cannot be nil")
		}
		app.locales = locales
		return nil
	}
}

// Run connects infrastructure and serves until ctx is canceled. All
// components share one errgroup, so a failing component stops the rest.
func (a *App) Run(ctx context.Context) error {
	log := a.logger

	pool, err := pg.Connect(ctx, a.config.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	a.checks = append(a.checks, pg.Healthcheck(pool))

	if a.store == nil {
		snapshots := store.NewPostgres(pool)
		if err := snapshots.Migrate(ctx); err != nil {
			return err
		}
		a.store = snapshots
	}

	client, err := redis.Connect(ctx, a.config.Redis)
	if err != nil {
		return err
	}
	defer client.Close()
	a.checks = append(a.checks, redis.Healthcheck(client))

	// Settings flow: file defaults, then the stored snapshot on top, then
	// live updates from the file watcher, HTTP, and the relay.
	settingsFile, err := source.NewFile(a.config.SettingsFile, a.settings,
		source.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if err := settingsFile.Load(); err != nil {
		log.WarnContext(ctx, "settings file not loaded, using defaults",
			logger.File(settingsFile.Path()), logger.Error(err))
	}
	if err := store.Restore(ctx, a.store, SettingsProvider, a.settings); err != nil {
		return err
	}

	scope := lifecycle.NewScope()
	defer scope.Detach()

	persister, err := store.Persist(ctx, scope, a.store, SettingsProvider, a.settings,
		store.WithAsyncSaves(),
		store.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := persister.Flush(); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("failed to flush snapshots", logger.Error(err))
		}
	}()

	rly, err := relay.New(client, SettingsProvider, a.settings,
		relay.WithLogger(log),
	)
	if err != nil {
		return err
	}

	// Audit trail: one log line per applied settings change, whatever its
	// origin (file reload, HTTP, relay).
	bindCtx := SettingsProvider.ProvideObservable(ctx, a.settings)
	if _, err := binding.Bind(bindCtx, scope, SettingsProvider, func(s Settings) {
		log.InfoContext(ctx, "settings applied",
			logger.Key("site_name", s.SiteName),
			logger.Key("theme", s.Theme),
			logger.Key("maintenance", s.Maintenance),
		)
	}, binding.WithoutInitialRefresh()); err != nil {
		return err
	}

	srv, err := server.NewFromConfig(a.config.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(untilCanceled(ctx, settingsFile.Run))
	eg.Go(untilCanceled(ctx, rly.Run))
	eg.Go(untilCanceled(ctx, a.hub.Run))
	eg.Go(srv.Run(ctx, a.Handler()))

	err = eg.Wait()
	log.InfoContext(ctx, "application stopped")
	return err
}

// untilCanceled adapts a component's Run so a graceful shutdown does not
// surface as an errgroup failure.
func untilCanceled(ctx context.Context, run func(context.Context) error) func() error {
	return func() error {
		if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor pulls one attribute out of a context. Extractors run on
// every record logged through a *Context method; returning false skips the
// attribute for that record.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	output      io.Writer
	level       slog.Leveler
	json        bool
	attrs       []slog.Attr
	handlerOpts *slog.HandlerOptions
	extractors  []ContextExtractor
}

// Option configures the logger built by New.
type Option func(*config)

// WithOutput redirects log output. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithJSONFormatter switches output to JSON records.
func WithJSONFormatter() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithTextFormatter switches output to logfmt-style text records. This is
// the default.
func WithTextFormatter() Option {
	return func(c *config) {
		c.json = false
	}
}

// WithAttr attaches attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithHandlerOptions replaces the handler options entirely, for AddSource or
// ReplaceAttr tuning. The configured level still applies unless the options
// carry their own.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		c.handlerOpts = opts
	}
}

// WithContextExtractors registers extractors that inject context-derived
// attributes into records logged via InfoContext and friends.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// WithContextValue registers a simple extractor: the value stored in the
// context under ctxKey is logged under attrKey when present.
func WithContextValue(attrKey string, ctxKey any) Option {
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(ctxKey)
		if v == nil {
			return slog.Attr{}, false
		}
		return slog.Any(attrKey, v), true
	})
}

// WithDevelopment configures text output at debug level with an "app"
// attribute, for local runs.
func WithDevelopment(app string) Option {
	return func(c *config) {
		c.json = false
		c.level = slog.LevelDebug
		if app != "" {
			c.attrs = append(c.attrs, slog.String("app", app), slog.String("env", "development"))
		}
	}
}

// WithStaging configures JSON output at info level with app and env
// attributes.
func WithStaging(app string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		if app != "" {
			c.attrs = append(c.attrs, slog.String("app", app), slog.String("env", "staging"))
		}
	}
}

// WithProduction configures JSON output at info level with app and env
// attributes.
func WithProduction(app string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		if app != "" {
			c.attrs = append(c.attrs, slog.String("app", app), slog.String("env", "production"))
		}
	}
}

// New builds a slog.Logger from the given options. Without options it logs
// text records at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := config{
		output: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	handlerOpts := cfg.handlerOpts
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		handler = &contextHandler{next: handler, extractors: cfg.extractors}
	}

	return slog.New(handler)
}

// SetAsDefault installs the logger as the process-wide slog default.
func SetAsDefault(log *slog.Logger) {
	slog.SetDefault(log)
}

// contextHandler decorates a handler with context attribute extraction.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			record.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}

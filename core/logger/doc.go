// Package logger provides structured logging utilities built on Go's standard
// slog package: a small factory with environment presets, context-aware
// attribute extraction, and attribute helpers for the concerns of this module.
//
// # Basic Usage
//
// Create loggers using the factory function with configuration options:
//
//	import "github.com/dmitrymomot/providerkit/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("myapp"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("myapp"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "api")),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Info("relay started",
//		logger.Component("relay"),
//		logger.Provider("settings"),
//	)
//
// # Context-Aware Logging
//
// Extractors inject attributes from context values on records logged through
// the *Context methods:
//
//	log := logger.New(
//		logger.WithProduction("myapp"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//
//	log.InfoContext(ctx, "processing request")
//	// {"level":"INFO","msg":"processing request","request_id":"req-12345"}
//
// Custom extraction logic goes through WithContextExtractors:
//
//	func clientExtractor(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(clientKey{}).(string); ok {
//			return logger.Client(id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(logger.WithContextExtractors(clientExtractor))
//
// # Attribute Helpers
//
// The helpers are nil-safe: logger.Error(nil) yields an empty attribute that
// slog drops, so call sites need no conditionals.
//
//	log.Error("snapshot save failed",
//		logger.Error(err),
//		logger.Provider(p.Name()),
//		logger.RetryCount(attempts),
//	)
//
//	log.Debug("notify pass finished",
//		logger.Component("observable"),
//		logger.Subscribers(v.Subscribers()),
//		logger.Elapsed(start),
//	)
//
// # Global Logger Setup
//
// SetAsDefault installs a configured logger process-wide so plain slog calls
// pick it up:
//
//	logger.SetAsDefault(logger.New(logger.WithProduction("myapp")))
//	slog.Info("using global logger", logger.Component("global"))
//
// Library code in this module never logs by default: packages that accept a
// logger option fall back to a handler writing to io.Discard.
package logger

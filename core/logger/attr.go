package logger

import (
	"log/slog"
	"runtime"
	"strconv"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit nil checks,
// following the principle of making zero values useful.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Error Handling
// ============================================================================

// Errors groups multiple non-nil errors under the key "errors".
// Uses index-based keys to preserve error order. Returns empty Attr for all nil errors.
func Errors(errs ...error) slog.Attr {
	// Count non-nil errors first to allocate exact size
	count := 0
	for _, err := range errs {
		if err != nil {
			count++
		}
	}
	if count == 0 {
		return slog.Attr{}
	}

	as := make([]slog.Attr, 0, count)
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Performance and Timing
// ============================================================================

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Broadcasting
// ============================================================================

// Provider creates an attribute for a provider name.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Subscribers creates an attribute for the size of a listener registry.
func Subscribers(n int) slog.Attr {
	return slog.Int("subscribers", n)
}

// Client creates an attribute for connected-client identifiers.
func Client(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("client_id", id)
}

// Channel creates an attribute for pub/sub channel names.
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// File creates an attribute for watched file paths.
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// ============================================================================
// Generic Identifiers and Metadata
// ============================================================================

// ID creates a generic identifier attribute with a custom key.
func ID(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// ClientIP creates an attribute for client IP addresses.
func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Version creates an attribute for version information.
func Version(v string) slog.Attr {
	return slog.String("version", v)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// RetryCount creates an attribute for retry attempts.
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}

// ============================================================================
// Debugging
// ============================================================================

// Stack captures and returns the current stack trace.
func Stack() slog.Attr {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]
	return slog.String("stack", string(buf))
}

// Caller returns information about the calling function.
func Caller() slog.Attr {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return slog.Attr{}
	}
	return slog.String("caller", file+":"+strconv.Itoa(line))
}

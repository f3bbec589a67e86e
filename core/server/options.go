package server

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// Option configures server behavior. Options are applied by New before
// the server starts; applying one to a running server has no effect on
// the active listener.
type Option func(*Server)

// WithLogger sets the logger for lifecycle events. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log == nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger = log
	}
}

// WithShutdownTimeout sets how long Stop waits for in-flight requests.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the maximum duration for reading a request.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the maximum duration for writing a response.
// Long-lived streaming handlers must clear their own per-request deadline
// with http.ResponseController.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets how long keep-alive connections may stay idle.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes caps the size of request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.maxHeaderBytes = n
	}
}

// WithTLS serves HTTPS using the given TLS configuration. The config must
// carry its certificates; Start passes empty file paths to
// ListenAndServeTLS.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tlsConfig = config
	}
}

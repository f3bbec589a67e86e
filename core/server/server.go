package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultReadTimeout bounds how long a request may take to arrive.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout bounds how long a response may take to write.
	// Streaming handlers clear their own deadline via http.ResponseController.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout closes keep-alive connections that go quiet.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is how long Stop waits for in-flight requests.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxHeaderBytes caps request header size.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)

// Server wraps http.Server with graceful shutdown and functional options.
// Safe for concurrent use.
type Server struct {
	mu             sync.RWMutex
	addr           string
	server         *http.Server
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	running        bool
}

// New creates a Server listening on addr once started. Defaults: 15s
// read/write timeouts, 60s idle timeout, 30s graceful shutdown, and a
// discard logger.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start serves handler and blocks until the context is canceled or the
// listener fails. It returns ctx.Err() on cancellation without shutting
// down; call Stop to drain connections, or use Run which does both.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true

	s.server = &http.Server{
		Addr:           s.addr,
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}

	// Read under the lock so the serving goroutine never races an option.
	hasTLS := s.tlsConfig != nil
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting server", slog.String("addr", s.addr))

		var err error
		if hasTLS {
			err = s.server.ListenAndServeTLS("", "")
		} else {
			err = s.server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains in-flight requests within the configured shutdown timeout.
// Calling Stop on a server that is not running is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	s.logger.Info("shutting down server", slog.Duration("timeout", s.shutdown))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	s.running = false

	if err != nil {
		s.logger.Error("server shutdown failed", slog.Any("error", err))
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Run returns an errgroup-compatible closure that starts the server and
// shuts it down gracefully when ctx is canceled. Cancellation is a clean
// exit, not an error.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx, handler)
		}()

		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				s.logger.Error("failed to stop server on cancellation", slog.Any("error", err))
			}
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Run creates a server with default settings and serves handler until ctx
// is canceled.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	return New(addr).Start(ctx, handler)
}

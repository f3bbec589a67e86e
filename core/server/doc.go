// Package server wraps the standard http.Server with graceful shutdown,
// functional options, and environment-driven configuration.
//
// # Basic Usage
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		w.Write([]byte("ok"))
//	})
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := server.Run(ctx, ":8080", handler); err != nil {
//		log.Fatal(err)
//	}
//
// # Coordinated Lifecycle
//
// The Run method returns an errgroup-compatible closure, so the server
// shuts down together with the rest of the application:
//
//	srv := server.New(":8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, handler))
//	eg.Go(worker.Run(ctx))
//	return eg.Wait()
//
// Context cancellation drains in-flight requests within the shutdown
// timeout and is reported as a clean exit, not an error.
//
// # Configuration
//
//	SERVER_ADDR=:8080
//	SERVER_READ_TIMEOUT=15s
//	SERVER_WRITE_TIMEOUT=15s
//	SERVER_IDLE_TIMEOUT=60s
//	SERVER_SHUTDOWN_TIMEOUT=30s
//	SERVER_TLS_CERT_FILE=/etc/certs/server.pem
//	SERVER_TLS_KEY_FILE=/etc/certs/server.key
//
//	var cfg server.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//
// Setting both TLS file paths switches the server to HTTPS. Handlers that
// stream indefinitely, such as server-sent events, must clear the write
// deadline for their request with http.ResponseController.
package server

// Package mongo connects to MongoDB with retry-backed readiness checking.
//
// New wraps the official v2 driver: it applies pool and retry settings from
// Config, then pings with exponential backoff so managed deployments (Atlas
// cold starts, brief network failures) do not abort application startup.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "app")
//	if err != nil {
//		log.Fatal(err)
//	}
//	snapshots := store.NewMongo(db)
//
// NewWithDatabase returns a database handle directly; New returns the
// client when several databases are needed. Disconnect the client when the
// application stops.
//
// # Configuration
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Health Checking
//
// Healthcheck returns a probe function for readiness endpoints:
//
//	check := mongo.Healthcheck(client)
//	if err := check(r.Context()); err != nil {
//		http.Error(w, "unavailable", http.StatusServiceUnavailable)
//		return
//	}
package mongo

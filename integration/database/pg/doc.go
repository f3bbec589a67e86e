// Package pg provides production-ready PostgreSQL connection management with
// migrations and health checking.
//
// It wraps the pgx driver with retry logic, connection pool tuning and goose
// migration support, so applications get reliable connectivity with one call
// and a consistent error surface.
//
// # Key Features
//
//   - Connect: creates a connection pool with retry logic and connection verification
//   - Migrate: applies schema migrations using goose through the pgx stdlib bridge
//   - Healthcheck: returns a health check function for monitoring connectivity
//   - Error classification helpers for common PostgreSQL error patterns
//
// Connection establishment uses exponential backoff to ride out transient
// network issues and to avoid a thundering herd when many services restart
// at once.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//		MigrationsPath    string        `env:"PG_MIGRATIONS_PATH" envDefault:"internal/db/migrations"`
//		MigrationsTable   string        `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
//	}
//
// # Usage Example
//
//	import "github.com/dmitrymomot/providerkit/integration/database/pg"
//
//	func main() {
//		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//		defer cancel()
//
//		var cfg pg.Config
//		config.MustLoad(&cfg)
//
//		pool, err := pg.Connect(ctx, cfg)
//		if err != nil {
//			log.Fatal("Failed to connect to PostgreSQL:", err)
//		}
//		defer pool.Close()
//
//		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
//		if err := pg.Migrate(ctx, pool, cfg, logger); err != nil {
//			if errors.Is(err, pg.ErrMigrationsDirNotFound) {
//				log.Println("No migrations directory found, skipping")
//			} else {
//				log.Fatal("Migration failed:", err)
//			}
//		}
//	}
//
// # Health Checking
//
// The health check function fits Kubernetes probes or HTTP health endpoints:
//
//	healthCheck := pg.Healthcheck(pool)
//
//	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
//		if err := healthCheck(r.Context()); err != nil {
//			http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
//			return
//		}
//		w.WriteHeader(http.StatusOK)
//	})
//
// # Error Handling
//
// Sentinel errors classify connection and migration failures; the helper
// functions classify common query errors:
//
//	isNotFound := pg.IsNotFoundError(err)               // pgx.ErrNoRows
//	isDuplicate := pg.IsDuplicateKeyError(err)          // unique constraint violations
//	isFKViolation := pg.IsForeignKeyViolationError(err) // referential integrity violations
//	isTxClosed := pg.IsTxClosedError(err)               // closed transaction usage
//
// # Transaction Management
//
// WithTx and TxFromContext propagate a pgx.Tx through application layers so
// storage implementations can join the caller's transaction:
//
//	func saveAll(ctx context.Context, pool *pgxpool.Pool, st *store.Postgres) error {
//		tx, err := pool.Begin(ctx)
//		if err != nil {
//			return err
//		}
//		defer tx.Rollback(ctx) // Safe even after commit
//
//		ctx = pg.WithTx(ctx, tx)
//		if err := st.Save(ctx, "settings", payload); err != nil {
//			return err
//		}
//		return tx.Commit(ctx)
//	}
//
// A storage method checks the context before using its own pool:
//
//	if tx, ok := pg.TxFromContext(ctx); ok {
//		_, err := tx.Exec(ctx, query, args...)
//		return err
//	}
//	_, err := s.pool.Exec(ctx, query, args...)
//	return err
package pg

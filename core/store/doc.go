// Package store persists provider value snapshots so observable state
// survives restarts. Snapshots are JSON documents keyed by provider name.
//
// Three backends ship with the package: Memory for tests and ephemeral
// setups, Postgres on a pgx pool, and Mongo on a database handle. All of
// them implement the Store interface and can be swapped freely.
//
// # Basic Usage
//
//	pool, _ := pg.Connect(ctx, pg.Config{ConnectionString: dsn})
//	snapshots := store.NewPostgres(pool)
//	if err := snapshots.Migrate(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	settings := observable.New(DefaultSettings)
//
//	// Hydrate from the last stored snapshot, then mirror future changes back.
//	if err := store.Restore(ctx, snapshots, providers.Settings, settings); err != nil {
//		log.Fatal(err)
//	}
//	per, err := store.Persist(ctx, scope, snapshots, providers.Settings, settings)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer per.Flush()
//
// Restore before Persist: the persister only writes subsequent changes, so a
// missing restore would leave stored state stale rather than clobbered, but
// the pairing keeps both sides in sync.
//
// # Asynchronous Saves
//
// By default saves run inside the notification callback, which keeps
// ordering obvious but puts backend latency on the update path. For hot
// values use WithAsyncSaves:
//
//	per, err := store.Persist(ctx, scope, snapshots, providers.Settings, settings,
//		store.WithAsyncSaves(),
//		store.WithLogger(log),
//	)
//
// Updates arriving while a write is in flight collapse into the newest
// snapshot, so the backend sees the latest state without a write per update.
// Call Flush during shutdown to wait for the tail write.
//
// # Transactions
//
// Postgres operations join a transaction carried in the context via
// pg.WithTx, letting a snapshot commit atomically with related rows:
//
//	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
//		txCtx := pg.WithTx(ctx, tx)
//		if err := repo.UpdateTenant(txCtx, tenant); err != nil {
//			return err
//		}
//		return snapshots.Save(txCtx, "tenant-settings", data)
//	})
package store

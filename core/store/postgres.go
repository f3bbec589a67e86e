package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	pgdb "github.com/dmitrymomot/providerkit/integration/database/pg"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres stores snapshots in the provider_snapshots table. Run Migrate
// once at startup to create the table.
//
// Operations join a transaction carried in the context via pg.WithTx, so
// snapshot writes can commit atomically with application data.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed store using the given pool.
// The pool is borrowed; closing it remains the caller's responsibility.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate applies the store's schema migrations.
func (s *Postgres) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	// The stdlib bridge borrows connections from the pool; closing it
	// releases them without closing the pool itself.
	db := stdlib.OpenDBFromPool(s.pool)
	defer func() { _ = db.Close() }()

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply snapshot migrations: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under name.
func (s *Postgres) Load(ctx context.Context, name string) ([]byte, error) {
	const query = `SELECT data FROM provider_snapshots WHERE name = $1`

	var data []byte
	if err := s.querier(ctx).QueryRow(ctx, query, name).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return data, nil
}

// Save upserts the snapshot under name.
func (s *Postgres) Save(ctx context.Context, name string, data []byte) error {
	const query = `
		INSERT INTO provider_snapshots (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	if _, err := s.querier(ctx).Exec(ctx, query, name, data); err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}
	return nil
}

// Delete removes the snapshot under name.
func (s *Postgres) Delete(ctx context.Context, name string) error {
	const query = `DELETE FROM provider_snapshots WHERE name = $1`

	if _, err := s.querier(ctx).Exec(ctx, query, name); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	return nil
}

type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *Postgres) querier(ctx context.Context) pgQuerier {
	if tx, ok := pgdb.TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

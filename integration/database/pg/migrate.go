package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies pending goose migrations from cfg.MigrationsPath using the
// given pool. goose speaks database/sql, so the pool is adapted through the
// pgx stdlib bridge; closing the bridge does not close the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger) error {
	if cfg.MigrationsPath == "" {
		return ErrMigrationPathNotProvided
	}

	if _, err := os.Stat(cfg.MigrationsPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Join(ErrMigrationsDirNotFound, err)
		}
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if log != nil {
		goose.SetLogger(&slogGooseAdapter{log: log})
	}
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	if err := goose.UpContext(ctx, db, cfg.MigrationsPath); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// slogGooseAdapter bridges goose's printf-style logger onto slog.
type slogGooseAdapter struct {
	log *slog.Logger
}

func (a *slogGooseAdapter) Printf(format string, v ...any) {
	a.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (a *slogGooseAdapter) Fatalf(format string, v ...any) {
	a.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

package pg_test

import (
	"context"
	"errors"
	"testing"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/providerkit/integration/database/pg"
)

func TestConnect_InvalidInput(t *testing.T) {
	t.Parallel()

	t.Run("empty connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{})
		assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
	})

	t.Run("malformed connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "://not-a-url"})
		assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
	})
}

func TestMigrate_PathValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		err := pg.Migrate(context.Background(), nil, pg.Config{}, nil)
		assert.ErrorIs(t, err, pg.ErrMigrationPathNotProvided)
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		t.Parallel()

		err := pg.Migrate(context.Background(), nil, pg.Config{MigrationsPath: "/nonexistent/migrations"}, nil)
		assert.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)
	})
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pg.IsNotFoundError(pgxv5.ErrNoRows))
		assert.True(t, pg.IsNotFoundError(errors.Join(errors.New("wrapped"), pgxv5.ErrNoRows)))
		assert.False(t, pg.IsNotFoundError(errors.New("other")))
	})

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
		assert.False(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
		assert.False(t, pg.IsDuplicateKeyError(errors.New("other")))
	})

	t.Run("foreign key violation", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pg.IsForeignKeyViolationError(&pgconn.PgError{Code: "23503"}))
		assert.False(t, pg.IsForeignKeyViolationError(&pgconn.PgError{Code: "23505"}))
	})

	t.Run("tx closed", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pg.IsTxClosedError(pgxv5.ErrTxClosed))
		assert.False(t, pg.IsTxClosedError(errors.New("other")))
	})
}

func TestTxContext(t *testing.T) {
	t.Parallel()

	t.Run("nil tx leaves context unchanged", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		assert.Equal(t, ctx, pg.WithTx(ctx, nil))

		_, ok := pg.TxFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("nil context is tolerated", func(t *testing.T) {
		t.Parallel()

		//nolint:staticcheck // exercising the nil-context guard
		ctx := pg.WithTx(nil, nil)
		require.NotNil(t, ctx)

		_, ok := pg.TxFromContext(nil)
		assert.False(t, ok)
	})
}

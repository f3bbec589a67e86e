package pg

import "errors"

// Connection, migration, and probe errors, joined with the underlying
// cause so both sides survive errors.Is checks.
var (
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, set PG_CONN_URL")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrMigrationPathNotProvided = errors.New("migration path not provided")
	ErrMigrationsDirNotFound    = errors.New("migrations directory not found")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
)

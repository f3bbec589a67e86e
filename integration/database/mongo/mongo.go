package mongo

import (
	"context"
	"errors"

	"github.com/sethvargo/go-retry"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// New creates a MongoDB client and verifies connectivity with an
// exponential-backoff ping. Atlas cold starts take several seconds; the
// retry window keeps application startup from failing on them.
func New(ctx context.Context, cfg Config) (*mongodriver.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites).
		SetRetryReads(cfg.RetryReads)

	client, err := mongodriver.Connect(opts)
	if err != nil {
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}

	backoff := retry.WithMaxRetries(uint64(cfg.RetryAttempts), retry.NewExponential(cfg.RetryInterval))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}

	return client, nil
}

// NewWithDatabase is New that returns a handle to the named database.
func NewWithDatabase(ctx context.Context, cfg Config, dbName string) (*mongodriver.Database, error) {
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.Database(dbName), nil
}

// Healthcheck returns a readiness probe function bound to the client.
func Healthcheck(client *mongodriver.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

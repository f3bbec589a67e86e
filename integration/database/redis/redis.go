package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// Connect creates a Redis client and verifies connectivity before returning.
// URL parsing failures are terminal; ping failures retry with exponential
// backoff until the attempts or the connect timeout run out.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	client := redis.NewClient(opts)

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	backoff := retry.WithMaxRetries(uint64(cfg.RetryAttempts), retry.NewExponential(cfg.RetryInterval))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}

	return client, nil
}

// Healthcheck returns a readiness probe function bound to the client.
func Healthcheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

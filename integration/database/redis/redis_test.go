package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/providerkit/integration/database/redis"
)

func TestConnect_InvalidInput(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://localhost:6379"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})
}

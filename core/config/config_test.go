package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/providerkit/core/config"
)

// Each test declares its own struct type: the cache is keyed by type, so a
// shared type would leak loaded values between tests. t.Setenv also rules out
// t.Parallel here.

func TestLoad(t *testing.T) {
	t.Run("parses environment variables", func(t *testing.T) {
		type relayConfig struct {
			Channel string `env:"TEST_RELAY_CHANNEL"`
			Buffer  int    `env:"TEST_RELAY_BUFFER"`
		}

		t.Setenv("TEST_RELAY_CHANNEL", "broadcast")
		t.Setenv("TEST_RELAY_BUFFER", "16")

		var cfg relayConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "broadcast", cfg.Channel)
		assert.Equal(t, 16, cfg.Buffer)
	})

	t.Run("applies defaults", func(t *testing.T) {
		type serverConfig struct {
			Port int `env:"TEST_UNSET_PORT" envDefault:"8080"`
		}

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		type strictConfig struct {
			Secret string `env:"TEST_MISSING_SECRET,required"`
		}

		var cfg strictConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strictConfig")
	})

	t.Run("caches by type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_CACHED_VALUE"`
		}

		t.Setenv("TEST_CACHED_VALUE", "first")
		var first cachedConfig
		require.NoError(t, config.Load(&first))
		require.Equal(t, "first", first.Value)

		t.Setenv("TEST_CACHED_VALUE", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		type nilConfig struct{}

		var cfg *nilConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type mustConfig struct {
			Token string `env:"TEST_MUST_TOKEN,required"`
		}

		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("loads valid config", func(t *testing.T) {
		type okConfig struct {
			Name string `env:"TEST_MUST_NAME" envDefault:"demo"`
		}

		var cfg okConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "demo", cfg.Name)
	})
}

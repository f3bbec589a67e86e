package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/providerkit/core/config"
	"github.com/dmitrymomot/providerkit/core/server"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, server.DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, server.DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, server.DefaultIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, server.DefaultMaxHeaderBytes, cfg.MaxHeaderBytes)
	assert.Empty(t, cfg.TLSCertFile)
	assert.Empty(t, cfg.TLSKeyFile)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates server from defaults", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails without address", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.Config{})
		require.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})

	t.Run("zero values fall back to defaults", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.Config{Addr: ":8080"})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("skips TLS when key file missing", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.Config{
			Addr:        ":8080",
			TLSCertFile: "cert.pem",
		})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails with unreadable TLS files", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.Config{
			Addr:        ":8080",
			TLSCertFile: "/nonexistent/cert.pem",
			TLSKeyFile:  "/nonexistent/key.pem",
		})
		require.Error(t, err)
		assert.Nil(t, srv)
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")

	var cfg server.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, server.DefaultReadTimeout, cfg.ReadTimeout)
}

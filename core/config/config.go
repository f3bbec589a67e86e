package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	// cache maps a config struct type to its loaded value.
	cache sync.Map
)

// Load parses environment variables into cfg. The first call for a given type
// reads the environment (after a one-time .env autoload); subsequent calls
// for the same type copy the cached result, so changed environment variables
// are not observed again within the process.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("load %s: %w", key.String(), err)
	}

	// LoadOrStore keeps the first parsed value when two goroutines race.
	actual, _ := cache.LoadOrStore(key, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure, for use at startup where a broken
// environment should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

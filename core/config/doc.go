// Package config loads environment variables into typed structs, caching
// one instance per struct type.
//
// A .env file, when present, is read once before the first load. Parsing
// is caarlos0/env: `env` tags name the variable, `envDefault` supplies a
// fallback, `required` makes the load fail without it.
//
//	type AppConfig struct {
//		Name         string   `env:"APP_NAME" envDefault:"providerkit-demo"`
//		SettingsFile string   `env:"SETTINGS_FILE" envDefault:"settings.yaml"`
//		Locales      []string `env:"SUPPORTED_LOCALES" envDefault:"en,uk,de"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// or panic on failure during startup wiring
//	config.MustLoad(&cfg)
//
// Nested structs load in one pass, so an application config can embed the
// configs of the packages it wires:
//
//	type Config struct {
//		DB     pg.Config
//		Redis  redis.Config
//		Server server.Config
//	}
//
// # Caching
//
// The first Load of a type reads the environment; later loads of the same
// type copy the cached value, so every part of the process sees identical
// configuration regardless of environment changes in between. Distinct
// types cache independently.
package config

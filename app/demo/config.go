package demo

import (
	"github.com/dmitrymomot/providerkit/core/server"
	"github.com/dmitrymomot/providerkit/integration/database/pg"
	"github.com/dmitrymomot/providerkit/integration/database/redis"
)

type Config struct {
	DB     pg.Config
	Redis  redis.Config
	Server server.Config

	AppName      string   `env:"APP_NAME" envDefault:"providerkit-demo"`
	Env          string   `env:"APP_ENV" envDefault:"development"`
	SettingsFile string   `env:"SETTINGS_FILE" envDefault:"settings.yaml"`
	Locales      []string `env:"SUPPORTED_LOCALES" envDefault:"en,uk,de"`
}

package demo

import "github.com/dmitrymomot/providerkit/core/provider"

// Settings is the runtime configuration the demo broadcasts. It loads from
// a YAML file, persists as a JSON snapshot, and streams to browsers.
type Settings struct {
	SiteName    string `yaml:"site_name" json:"site_name"`
	Theme       string `yaml:"theme" json:"theme"`
	Maintenance bool   `yaml:"maintenance" json:"maintenance"`
	MaxUploadMB int    `yaml:"max_upload_mb" json:"max_upload_mb"`
}

// DefaultSettings applies until a snapshot or settings file overrides it.
var DefaultSettings = Settings{
	SiteName:    "providerkit demo",
	Theme:       "light",
	MaxUploadMB: 25,
}

// SettingsProvider resolves the current Settings from a context.
var SettingsProvider = provider.New[Settings]("settings")

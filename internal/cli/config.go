package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/travelboss/daygrid/pkg/pipeline"
)

// Config holds user preferences loaded from the TOML config file at
// ~/.config/daygrid/config.toml (or $XDG_CONFIG_HOME). All fields are
// optional; zero values fall back to pipeline defaults. Command flags
// override config values.
type Config struct {
	// Source is the default calendar source (feed URL or .ics path).
	Source string `toml:"source"`

	// Timezone is the IANA display timezone.
	Timezone string `toml:"timezone"`

	// StartMinute and EndMinute bound the visible day window.
	StartMinute int `toml:"start_minute"`
	EndMinute   int `toml:"end_minute"`

	StepMinutes int `toml:"step_minutes"`
	Timeslots   int `toml:"timeslots"`

	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// RedisURL enables a Redis result cache instead of the file cache.
	RedisURL string `toml:"redis_url"`

	// MongoURI enables persistent layout storage for the serve command.
	MongoURI string `toml:"mongo_uri"`

	// Listen is the serve command's default bind address.
	Listen string `toml:"listen"`
}

// configPath returns the config file location, honoring XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// LoadConfig reads the user config file. A missing or unreadable file
// yields an empty config; a malformed file is ignored the same way so a
// bad config never blocks the CLI.
func LoadConfig() *Config {
	path, err := configPath()
	if err != nil {
		return &Config{}
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) *Config {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return &Config{}
	}
	return cfg
}

// Apply copies config values onto pipeline options, leaving fields the
// config does not set untouched.
func (c *Config) Apply(opts *pipeline.Options) {
	if c.Source != "" {
		opts.Source = c.Source
	}
	if c.Timezone != "" {
		opts.Timezone = c.Timezone
	}
	if c.StartMinute != 0 {
		opts.StartMinute = c.StartMinute
	}
	if c.EndMinute != 0 {
		opts.EndMinute = c.EndMinute
	}
	if c.StepMinutes != 0 {
		opts.StepMinutes = c.StepMinutes
	}
	if c.Timeslots != 0 {
		opts.Timeslots = c.Timeslots
	}
	if c.Width != 0 {
		opts.Width = c.Width
	}
	if c.Height != 0 {
		opts.Height = c.Height
	}
}

// Package config loads the application's TOML configuration.
//
// A missing file or missing keys yield working defaults, so the engine
// always starts.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"github.com/plankit/plankit/store"
)

// Config is the resolved application configuration.
type Config struct {
	// DataPath is the bbolt file holding the persisted blobs.
	DataPath string `toml:"data_path"`

	// IndexPath is the directory for the optional full-text index.
	// Empty disables the on-disk index.
	IndexPath string `toml:"index_path"`

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string `toml:"log_level"`

	// WeekStart names the first day of the week for the weekly rollup:
	// "sunday" or "monday".
	WeekStart string `toml:"week_start"`

	// Tags seeds the vocabulary on first run. Empty means the built-in
	// default set.
	Tags []string `toml:"tags"`

	// Settings holds the defaults applied before the user changes them.
	Settings SettingsConfig `toml:"settings"`
}

// SettingsConfig mirrors store.Settings in the TOML file.
type SettingsConfig struct {
	DurationUnit string `toml:"duration_unit"`
	WeeklyCap    int    `toml:"weekly_cap"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	sets := store.DefaultSettings()
	return Config{
		DataPath:  "plankit.db",
		LogLevel:  "info",
		WeekStart: "sunday",
		Tags:      store.DefaultTags(),
		Settings: SettingsConfig{
			DurationUnit: sets.DurationUnit,
			WeeklyCap:    sets.WeeklyCap,
		},
	}
}

// Load reads the TOML file at path, filling missing keys with defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(cfg.Tags) == 0 {
		cfg.Tags = store.DefaultTags()
	}
	if cfg.Settings.DurationUnit != "minutes" && cfg.Settings.DurationUnit != "hours" {
		cfg.Settings.DurationUnit = "minutes"
	}
	if cfg.Settings.WeeklyCap < 0 {
		cfg.Settings.WeeklyCap = 0
	}

	return cfg, nil
}

// WeekStartDay maps the configured week start to a time.Weekday,
// defaulting to Sunday for unrecognized values.
func (c Config) WeekStartDay() time.Weekday {
	if strings.EqualFold(c.WeekStart, "monday") {
		return time.Monday
	}
	return time.Sunday
}

// StoreSettings converts the configured defaults to store.Settings.
func (c Config) StoreSettings() store.Settings {
	return store.Settings{
		DurationUnit: c.Settings.DurationUnit,
		WeeklyCap:    c.Settings.WeeklyCap,
	}
}

// ApplyLogging sets the global logrus level from LogLevel. Unknown
// names keep the info default.
func (c Config) ApplyLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

package config

import (
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/storage"
)

// Config holds runtime settings for the dailykeep shell.
//
// Fields:
//   - DataDir: directory holding the SQLite database and the fallback file.
//   - ReminderInterval: how often reminders are re-evaluated.
//   - FallbackCapacity: byte ceiling of the fallback store.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DataDir          string
	ReminderInterval time.Duration
	FallbackCapacity int
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "./dailykeep-data"
	c.ReminderInterval = time.Minute
	c.FallbackCapacity = storage.DefaultFallbackCapacity
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

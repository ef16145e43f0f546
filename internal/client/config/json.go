package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/flagx"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DataDir          string         `json:"data_dir"`
	ReminderInterval timex.Duration `json:"reminder_interval"`
	FallbackCapacity int            `json:"fallback_capacity"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays Config with the non-zero values of the JSON file named
// by -c or -config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.ReminderInterval.Duration > 0 {
		cfg.ReminderInterval = time.Duration(jc.ReminderInterval.Duration)
	}
	if jc.FallbackCapacity > 0 {
		cfg.FallbackCapacity = jc.FallbackCapacity
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}

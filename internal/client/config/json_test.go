package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"data_dir":          "/var/lib/dailykeep",
		"reminder_interval": "10s",
		"fallback_capacity": 2048,
		"log_level":         "debug",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "/var/lib/dailykeep", cfg.DataDir)
		assert.Equal(t, 10*time.Second, cfg.ReminderInterval)
		assert.Equal(t, 2048, cfg.FallbackCapacity)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("integer nanoseconds and partial file", func(t *testing.T) {
		p := writeTempJSON(t, dir, "partial.json", map[string]any{
			"reminder_interval": int64(2 * time.Minute),
		})
		os.Args = []string{"testbin", "-c", p}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, 2*time.Minute, cfg.ReminderInterval)
		assert.Equal(t, "./dailykeep-data", cfg.DataDir, "absent keys keep defaults")
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DataDir: "defaults", ReminderInterval: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.DataDir)
		assert.Equal(t, 42*time.Second, cfg.ReminderInterval)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

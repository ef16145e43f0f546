package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-i", "-q", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	interval := fs.Int("i", int(cfg.ReminderInterval.Seconds()), "reminder interval (in seconds)")
	fs.IntVar(&cfg.FallbackCapacity, "q", cfg.FallbackCapacity, "fallback store capacity (in bytes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ReminderInterval = time.Duration(*interval) * time.Second
}

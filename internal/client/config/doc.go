// Package config loads runtime configuration for the dailykeep shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory
//	-i int      reminder evaluation interval (seconds)
//	-q int      fallback store capacity (bytes)
//	-l string   log level (debug|info|warn|error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "1m" or integer nanoseconds. Absent keys keep their defaults:
//
//	{
//	  "data_dir": "/home/me/.dailykeep",
//	  "reminder_interval": "1m",
//	  "fallback_capacity": 5242880,
//	  "log_level": "info"
//	}
package config

// Package logging defines the structured-logging interface used across
// dailykeep. Storage and reminder layers log degradations through it instead
// of returning them to the user.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Warn(ctx, "primary backend disabled", "key", key, "error", err)
type Logger interface {
	// Debug logs diagnostic detail (backend selection, skipped reminders).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a recovered failure: a disabled backend, a healed record.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure that could not be recovered locally.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

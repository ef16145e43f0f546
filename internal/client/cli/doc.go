// Package cli provides the interactive dailykeep shell.
//
// It wires configuration, the resilient local store, the domain services and
// the reminder scheduler behind a REPL. Typical flow: resume or open a
// session, start the reminder loop for that user, and execute commands until
// the user exits.
//
// Key features:
//   - Register / Login / Logout (local accounts)
//   - Tasks: list, add, complete, remove
//   - Budget and loans (stored encrypted per user)
//   - Job applications
//   - Reminders: in-app panel, snooze, per-category toggle
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, runREPL and notify.Scheduler for details.
package cli

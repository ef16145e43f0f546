// Package storage implements the durable key/value substrate beneath every
// dailykeep record.
//
// # Backends
//
// Two backends cooperate behind Store:
//
//   - the primary durable backend: a SQLite database (modernc.org/sqlite) with
//     goose-managed schema, opened lazily and at most once per Store;
//   - the fallback backend: a capacity-limited JSON file written synchronously
//     on every mutation.
//
// Every Write goes to the fallback first (so a crash right after still leaves
// a usable copy), then to the primary. Reads prefer the primary and use the
// fallback only once the primary is disabled or fails.
//
// # Disablement
//
// A failure to open the primary, or any error it returns, moves the Store to
// the disabled state for the rest of its lifetime. There is no retry; the
// fallback serves every later operation.
//
// # Ordering
//
// Operations on the same key are serialised in call order. Operations on
// different keys may run concurrently.
package storage

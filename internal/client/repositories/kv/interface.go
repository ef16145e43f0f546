package kv

import "context"

// Repository describes the operations on the durable key/value table.
type Repository interface {
	// Get returns the raw value stored under key. ok is false when no row exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set inserts or replaces the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

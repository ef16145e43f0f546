package storage

import "context"

// Backend is the minimal key/value surface both storage backends provide.
// A missing key is reported with ok == false, never as an error.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Opener opens the primary backend. It is called at most once per Store.
type Opener func(ctx context.Context) (Backend, error)

// mirrorRestorer is implemented by primaries that can bulk-import the
// fallback mirror when they are first opened.
type mirrorRestorer interface {
	Restore(ctx context.Context, entries map[string]string) error
}

// snapshotter is implemented by fallbacks that can expose their full content.
type snapshotter interface {
	Snapshot() map[string]string
}

// flusher is implemented by fallbacks that may hold changes not yet on disk.
type flusher interface {
	Flush() error
}

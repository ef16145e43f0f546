package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
)

const (
	// FallbackFileName is the mirror file created inside the data dir.
	FallbackFileName = "fallback.json"
	// DefaultFallbackCapacity bounds the mirror to 5 MiB of keys and values.
	DefaultFallbackCapacity = 5 << 20
)

// FileBackend is the synchronous fallback backend: a flat JSON object kept in
// memory and rewritten to disk on every mutation. Its total size (keys plus
// values, in bytes) never exceeds the configured capacity.
//
// An empty path keeps the data in memory only.
type FileBackend struct {
	mu       sync.Mutex
	path     string
	capacity int
	data     map[string]string
	size     int
	// dirty is set when memory holds deletions the file does not have yet.
	dirty bool
}

// NewFileBackend loads the mirror stored at path. A missing file starts an
// empty mirror; an unreadable or corrupt one is logged and discarded.
func NewFileBackend(ctx context.Context, path string, capacity int, log logging.Logger) *FileBackend {
	if capacity <= 0 {
		capacity = DefaultFallbackCapacity
	}
	b := &FileBackend{path: path, capacity: capacity, data: make(map[string]string)}
	if path == "" {
		return b
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn(ctx, "could not read fallback store, starting empty", "path", path, "error", err)
		}
		return b
	}

	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Warn(ctx, "corrupt fallback store discarded", "path", path, "error", err)
		return b
	}
	for k, v := range data {
		b.data[k] = v
		b.size += entrySize(k, v)
	}
	return b
}

func entrySize(key, value string) int {
	return len(key) + len(value)
}

func (b *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.data[key]
	return v, ok, nil
}

// Set stores value under key, failing with common.ErrQuotaExceeded when the
// capacity would be exceeded. The previous value is kept on failure.
func (b *FileBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, existed := b.data[key]
	size := b.size + entrySize(key, value)
	if existed {
		size -= entrySize(key, prev)
	}
	if size > b.capacity {
		return fmt.Errorf("%w: %d of %d bytes", common.ErrQuotaExceeded, size, b.capacity)
	}

	b.data[key] = value
	if err := b.save(); err != nil {
		if existed {
			b.data[key] = prev
		} else {
			delete(b.data, key)
		}
		return err
	}
	b.size = size
	return nil
}

// Delete removes key. When the file cannot be rewritten the key is still
// dropped from memory, so it is neither served nor restored, and the file
// catches up on the next successful save or Flush.
func (b *FileBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.data[key]
	if !ok {
		return nil
	}
	delete(b.data, key)
	b.size -= entrySize(key, prev)
	if err := b.save(); err != nil {
		b.dirty = true
		return err
	}
	return nil
}

// Flush retries writing deletions that could not be saved earlier.
func (b *FileBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dirty {
		return nil
	}
	return b.save()
}

// Snapshot returns a copy of every stored entry.
func (b *FileBackend) Snapshot() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]string, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}

// Size reports the bytes currently accounted against the capacity.
func (b *FileBackend) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// save writes the whole mirror through a temp file and rename.
func (b *FileBackend) save() error {
	if b.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("creating fallback dir: %w", err)
	}
	raw, err := json.Marshal(b.data)
	if err != nil {
		return err
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing fallback store: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replacing fallback store: %w", err)
	}
	b.dirty = false
	return nil
}

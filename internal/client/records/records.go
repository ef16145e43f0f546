// Package records layers JSON encoding and read-time shape validation over
// the key/value store.
//
// A record that fails to parse or validate is deleted on read and the
// caller's fallback value is returned instead, so corrupt data never
// resurfaces. Writes are not validated.
package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/dailykeep/internal/logging"
)

// KV is the raw key/value surface the record store persists through.
type KV interface {
	Read(ctx context.Context, key string) (raw string, ok bool, err error)
	Write(ctx context.Context, key, raw string) error
	Delete(ctx context.Context, key string) error
}

// Store reads and writes JSON records.
type Store struct {
	kv  KV
	log logging.Logger
}

func New(kv KV, log logging.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// ReadJSON decodes the record stored under key into a T.
//
// It returns fallback when the record is missing, when the store cannot be
// read, or when the record fails to decode or to satisfy validate (nil
// validate accepts any decodable value). In the last two cases the record is
// deleted.
func ReadJSON[T any](ctx context.Context, s *Store, key string, fallback T, validate func(T) bool) T {
	raw, ok, err := s.kv.Read(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "record read failed, using default", "key", key, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return fallback
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		s.heal(ctx, key, "decode", err)
		return fallback
	}
	if bytes.Equal(trimmed, []byte("null")) {
		if validate != nil {
			s.heal(ctx, key, "validate", nil)
		}
		return fallback
	}
	if validate != nil && !validate(v) {
		s.heal(ctx, key, "validate", nil)
		return fallback
	}
	return v
}

// heal removes a record that failed to decode or validate.
func (s *Store) heal(ctx context.Context, key, stage string, cause error) {
	s.log.Warn(ctx, "invalid record removed", "key", key, "stage", stage, "error", cause)
	if err := s.kv.Delete(ctx, key); err != nil {
		s.log.Error(ctx, "could not remove invalid record", "key", key, "error", err)
	}
}

// WriteJSON encodes value and writes it under key. An encoding failure means
// the caller passed a value that cannot be represented as JSON.
func (s *Store) WriteJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", key, err)
	}
	return s.kv.Write(ctx, key, string(raw))
}

// Remove deletes the record stored under key.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, key)
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Capability is the state of the primary backend.
type Capability int32

const (
	// CapabilityUnknown: the primary has not been opened yet.
	CapabilityUnknown Capability = iota
	// CapabilityAvailable: the primary is open and has not failed.
	CapabilityAvailable
	// CapabilityDisabled: the primary failed once and is never used again.
	CapabilityDisabled
)

func (c Capability) String() string {
	switch c {
	case CapabilityAvailable:
		return "available"
	case CapabilityDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Store is the resilient key/value store: a lazily opened primary backend
// mirrored into a synchronous fallback backend.
type Store struct {
	open     Opener
	fallback Backend
	log      logging.Logger

	state   atomic.Int32
	mu      sync.RWMutex
	primary Backend
	opening singleflight.Group
	locks   keyLocks
}

// NewStore builds a Store. A nil open means the primary backend does not
// exist in this environment: the Store starts disabled.
func NewStore(open Opener, fallback Backend, log logging.Logger) *Store {
	s := &Store{open: open, fallback: fallback, log: log}
	if open == nil {
		s.state.Store(int32(CapabilityDisabled))
	}
	return s
}

// Capability reports the current state of the primary backend.
func (s *Store) Capability() Capability {
	return Capability(s.state.Load())
}

// primaryBackend returns the open primary, opening it on first use.
// Concurrent first calls share a single open attempt.
func (s *Store) primaryBackend(ctx context.Context) (Backend, error) {
	if s.Capability() == CapabilityDisabled {
		return nil, common.ErrBackendDisabled
	}
	if p := s.current(); p != nil {
		return p, nil
	}

	v, err, _ := s.opening.Do("open", func() (any, error) {
		if p := s.current(); p != nil {
			return p, nil
		}
		if s.Capability() == CapabilityDisabled {
			return nil, common.ErrBackendDisabled
		}

		// The open is shared by every waiting caller, so one caller
		// giving up must not abort it.
		octx := context.WithoutCancel(ctx)
		b, err := s.open(octx)
		if err != nil {
			s.disable(ctx, "open", "", err)
			return nil, err
		}
		s.restoreMirror(octx, b)

		s.mu.Lock()
		s.primary = b
		s.mu.Unlock()
		s.state.CompareAndSwap(int32(CapabilityUnknown), int32(CapabilityAvailable))
		s.log.Debug(ctx, "primary backend opened")
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	if s.Capability() == CapabilityDisabled {
		return nil, common.ErrBackendDisabled
	}
	return v.(Backend), nil
}

func (s *Store) current() Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.primary
}

// restoreMirror copies the fallback mirror into a freshly opened primary so
// writes made while the primary was unavailable in an earlier run are kept.
func (s *Store) restoreMirror(ctx context.Context, primary Backend) {
	r, ok := primary.(mirrorRestorer)
	if !ok {
		return
	}
	snap, ok := s.fallback.(snapshotter)
	if !ok {
		return
	}
	entries := snap.Snapshot()
	if err := r.Restore(ctx, entries); err != nil {
		s.log.Warn(ctx, "could not restore fallback mirror", "entries", len(entries), "error", err)
	}
}

// interrupted reports whether err comes from the caller's context rather
// than from the backend itself.
func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// disable moves the primary to the disabled state. Only the first call logs.
func (s *Store) disable(ctx context.Context, op, key string, err error) {
	prev := Capability(s.state.Swap(int32(CapabilityDisabled)))
	if prev != CapabilityDisabled {
		s.log.Warn(ctx, "primary backend disabled, using fallback", "op", op, "key", key, "error", err)
	}
}

// Read returns the raw value stored under key. ok is false when there is no
// record yet; that is not an error.
func (s *Store) Read(ctx context.Context, key string) (string, bool, error) {
	unlock := s.locks.lock(key)
	defer unlock()

	if p, err := s.primaryBackend(ctx); err == nil {
		v, ok, err := p.Get(ctx, key)
		if err == nil {
			return v, ok, nil
		}
		if interrupted(ctx, err) {
			return "", false, err
		}
		s.disable(ctx, "read", key, err)
	}
	return s.fallback.Get(ctx, key)
}

// Write stores raw under key: fallback first, then primary. It succeeds when
// at least one backend holds the new value.
func (s *Store) Write(ctx context.Context, key, raw string) error {
	unlock := s.locks.lock(key)
	defer unlock()

	fbErr := s.fallback.Set(ctx, key, raw)
	if fbErr != nil {
		s.log.Warn(ctx, "fallback write failed", "key", key, "error", fbErr)
		// A stale mirror must never be served or restored later on.
		if err := s.fallback.Delete(ctx, key); err != nil {
			s.log.Error(ctx, "stale fallback entry not yet removed from disk", "key", key, "error", err)
		}
	}

	if p, err := s.primaryBackend(ctx); err == nil {
		err = p.Set(ctx, key, raw)
		if err == nil {
			return nil
		}
		if interrupted(ctx, err) {
			return err
		}
		s.disable(ctx, "write", key, err)
	}

	if fbErr != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, fbErr)
	}
	return nil
}

// Delete removes key from both backends. Absent keys are fine.
func (s *Store) Delete(ctx context.Context, key string) error {
	unlock := s.locks.lock(key)
	defer unlock()

	fbErr := s.fallback.Delete(ctx, key)

	if p, err := s.primaryBackend(ctx); err == nil {
		err = p.Delete(ctx, key)
		if err == nil {
			if fbErr != nil {
				s.log.Warn(ctx, "fallback delete failed", "key", key, "error", fbErr)
			}
			return nil
		}
		if interrupted(ctx, err) {
			return err
		}
		s.disable(ctx, "delete", key, err)
	}

	if fbErr != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, fbErr)
	}
	return nil
}

// Close flushes pending fallback changes and releases the primary backend
// if it was opened.
func (s *Store) Close() error {
	var errs []error
	if f, ok := s.fallback.(flusher); ok {
		if err := f.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flushing fallback: %w", err))
		}
	}
	if c, ok := s.current().(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

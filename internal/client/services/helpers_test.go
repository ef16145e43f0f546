package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/client/storage"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *testClock {
	return &testClock{t: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)}
}

func setupRecords(t *testing.T) (*records.Store, *storage.Store) {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewStore(
		storage.DurableOpener(":memory:"),
		storage.NewFileBackend(ctx, "", 0, logging.NewNop()),
		logging.NewNop(),
	)
	t.Cleanup(func() { _ = kv.Close() })
	return records.New(kv, logging.NewNop()), kv
}

func ptr[T any](v T) *T { return &v }

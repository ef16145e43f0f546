package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/reminders"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu        sync.Mutex
	perm      Permission
	grant     Permission
	requests  int
	sent      []string
	notifyErr error
}

func (f *fakeNotifier) Permission() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perm
}

func (f *fakeNotifier) RequestPermission(context.Context) (Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.perm = f.grant
	return f.perm, nil
}

func (f *fakeNotifier) Notify(_ context.Context, title, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.sent = append(f.sent, title)
	return nil
}

func rem(id string) models.Reminder {
	return models.Reminder{ID: id, Type: models.CategoryLoans, Title: "t-" + id, Body: "b"}
}

func TestDispatcher_NotifiesOncePerID(t *testing.T) {
	n := &fakeNotifier{grant: PermissionGranted}
	d := NewDispatcher(n, logging.NewNop())
	ctx := context.Background()

	sent, err := d.Dispatch(ctx, []models.Reminder{rem("a"), rem("b")})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	sent, err = d.Dispatch(ctx, []models.Reminder{rem("a"), rem("b"), rem("c")})
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	assert.ElementsMatch(t, []string{"t-a", "t-b", "t-c"}, n.sent)
	assert.Equal(t, 1, n.requests, "permission is requested lazily once")
	assert.True(t, d.Seen("c"))
}

func TestDispatcher_NothingFreshDoesNotAskPermission(t *testing.T) {
	n := &fakeNotifier{grant: PermissionGranted}
	d := NewDispatcher(n, logging.NewNop())

	sent, err := d.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, n.requests)
}

func TestDispatcher_DeniedIsSilent(t *testing.T) {
	n := &fakeNotifier{grant: PermissionDenied}
	d := NewDispatcher(n, logging.NewNop())
	ctx := context.Background()

	sent, err := d.Dispatch(ctx, []models.Reminder{rem("a")})
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.True(t, d.Seen("a"))

	_, err = d.Dispatch(ctx, []models.Reminder{rem("b")})
	require.NoError(t, err)
	assert.Equal(t, 1, n.requests)
	assert.Empty(t, n.sent)
}

func TestDispatcher_DismissedPromptKeepsIDsFresh(t *testing.T) {
	n := &fakeNotifier{grant: PermissionDefault}
	d := NewDispatcher(n, logging.NewNop())
	ctx := context.Background()

	sent, err := d.Dispatch(ctx, []models.Reminder{rem("a")})
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.False(t, d.Seen("a"))

	// granted later from outside the app
	n.mu.Lock()
	n.perm = PermissionGranted
	n.mu.Unlock()

	sent, err = d.Dispatch(ctx, []models.Reminder{rem("a")})
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"t-a"}, n.sent)
	assert.Equal(t, 1, n.requests, "the prompt is not repeated")
	assert.True(t, d.Seen("a"))
}

func TestDispatcher_NotifyErrorIsReturned(t *testing.T) {
	n := &fakeNotifier{perm: PermissionGranted, notifyErr: errors.New("boom")}
	d := NewDispatcher(n, logging.NewNop())

	_, err := d.Dispatch(context.Background(), []models.Reminder{rem("a")})
	require.Error(t, err)
	assert.True(t, d.Seen("a"))
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf, false)
	assert.Equal(t, PermissionDefault, n.Permission())

	p, err := n.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PermissionGranted, p)

	require.NoError(t, n.Notify(context.Background(), "EMI Reminder", "Car EMI due on 2024-05-12"))
	assert.Contains(t, buf.String(), "[reminder] EMI Reminder: Car EMI due on 2024-05-12")

	muted := NewTerminalNotifier(&buf, true)
	p, _ = muted.RequestPermission(context.Background())
	assert.Equal(t, PermissionDenied, p)
}

type fakeSource struct {
	mu    sync.Mutex
	snaps []Snapshot
	calls int
	err   error
}

func (f *fakeSource) Snapshot(context.Context) (Snapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return Snapshot{}, false, f.err
	}
	if len(f.snaps) == 0 {
		return Snapshot{}, false, nil
	}
	s := f.snaps[0]
	f.snaps = f.snaps[1:]
	return s, true, nil
}

func overdueSnapshot() Snapshot {
	return Snapshot{
		UserID: "u1",
		Loans:  []models.Loan{{ID: "l1", Name: "Car", NextDueDate: "2024-05-01", RemainingBalance: 10}},
	}
}

func TestScheduler_TickPublishesAndDispatches(t *testing.T) {
	n := &fakeNotifier{grant: PermissionGranted}
	src := &fakeSource{snaps: []Snapshot{overdueSnapshot(), overdueSnapshot()}}
	clock := timex.FixedClock{T: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)}

	var panels []reminders.Result
	s := NewScheduler(src, NewDispatcher(n, logging.NewNop()), time.Minute, clock, func(uid string, res reminders.Result) {
		assert.Equal(t, "u1", uid)
		panels = append(panels, res)
	}, logging.NewNop())

	ctx := context.Background()
	assert.True(t, s.Tick(ctx))
	assert.True(t, s.Tick(ctx))
	assert.False(t, s.Tick(ctx), "no user left")

	require.Len(t, panels, 2)
	assert.True(t, panels[1].Badges.Loans, "panel is updated on every tick")
	assert.Equal(t, []string{"Overdue EMI"}, n.sent, "notification is sent once")
}

func TestScheduler_SourceErrorKeepsRunning(t *testing.T) {
	src := &fakeSource{err: errors.New("disk")}
	s := NewScheduler(src, NewDispatcher(&fakeNotifier{}, logging.NewNop()), time.Minute, nil, nil, logging.NewNop())
	assert.True(t, s.Tick(context.Background()))
}

func TestScheduler_RunStopsWithoutUser(t *testing.T) {
	src := &fakeSource{snaps: []Snapshot{overdueSnapshot()}}
	s := NewScheduler(src, NewDispatcher(&fakeNotifier{}, logging.NewNop()), 5*time.Millisecond, nil, nil, logging.NewNop())

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after sign-out")
	}
	assert.Equal(t, 2, src.calls)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 1000; i++ {
		src.snaps = append(src.snaps, overdueSnapshot())
	}
	s := NewScheduler(src, NewDispatcher(&fakeNotifier{}, logging.NewNop()), time.Hour, nil, nil, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler ignored cancellation")
	}
}

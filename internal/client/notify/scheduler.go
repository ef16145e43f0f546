package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/reminders"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
)

// Snapshot is everything the reminder engine needs for one user.
type Snapshot struct {
	UserID   string
	Budget   *models.Budget
	Loans    []models.Loan
	Jobs     []models.Job
	Settings models.ReminderSettings
}

// SnapshotSource loads the signed-in user's snapshot. ok is false when no
// user is signed in.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (snap Snapshot, ok bool, err error)
}

// Panel receives every evaluation result, regardless of notification
// permission.
type Panel func(userID string, res reminders.Result)

type Scheduler struct {
	source     SnapshotSource
	dispatcher *Dispatcher
	interval   time.Duration
	clock      timex.Clock
	panel      Panel
	log        logging.Logger
}

func NewScheduler(source SnapshotSource, dispatcher *Dispatcher, interval time.Duration, clock timex.Clock, panel Panel, log logging.Logger) *Scheduler {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		source:     source,
		dispatcher: dispatcher,
		interval:   interval,
		clock:      clock,
		panel:      panel,
		log:        log,
	}
}

// Run evaluates immediately and then on every interval until ctx is done or
// no user is signed in.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.Tick(ctx) {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.Tick(ctx) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Tick runs one evaluation. It returns false once no user is signed in.
// Load and notification failures are logged and do not stop the loop.
func (s *Scheduler) Tick(ctx context.Context) bool {
	snap, ok, err := s.source.Snapshot(ctx)
	if err != nil {
		s.log.Warn(ctx, "loading reminder snapshot failed", "error", err)
		return true
	}
	if !ok {
		s.log.Debug(ctx, "no signed-in user, reminder loop stopping")
		return false
	}

	res := reminders.Evaluate(snap.Budget, snap.Loans, snap.Jobs, snap.Settings, s.clock.Now())
	if s.panel != nil {
		s.panel(snap.UserID, res)
	}

	sent, err := s.dispatcher.Dispatch(ctx, res.Reminders)
	if err != nil {
		s.log.Warn(ctx, "dispatching reminders failed", "error", err)
	}
	if sent > 0 {
		s.log.Debug(ctx, "reminders dispatched", "user", snap.UserID, "count", sent)
	}
	return true
}

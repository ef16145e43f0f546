package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/dailykeep/internal/client/notify"
	"github.com/dmitrijs2005/dailykeep/internal/common"
)

// SnapshotLoader gathers the signed-in user's records for the reminder
// scheduler.
type SnapshotLoader struct {
	Auth      AuthService
	Budget    BudgetService
	Loans     LoanService
	Jobs      JobService
	Reminders ReminderSettingsService
}

func (l *SnapshotLoader) Snapshot(ctx context.Context) (notify.Snapshot, bool, error) {
	u, err := l.Auth.CurrentUser(ctx)
	if errors.Is(err, common.ErrNoSession) {
		return notify.Snapshot{}, false, nil
	}
	if err != nil {
		return notify.Snapshot{}, false, err
	}

	budget := l.Budget.Load(ctx, u.ID)
	return notify.Snapshot{
		UserID:   u.ID,
		Budget:   &budget,
		Loans:    l.Loans.List(ctx, u.ID),
		Jobs:     l.Jobs.List(ctx, u.ID),
		Settings: l.Reminders.Load(ctx, u.ID),
	}, true, nil
}

var _ notify.SnapshotSource = (*SnapshotLoader)(nil)

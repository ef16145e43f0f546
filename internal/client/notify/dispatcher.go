package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"golang.org/x/sync/errgroup"
)

const maxParallelNotifications = 4

// Dispatcher forwards reminders to a Notifier, skipping ids it has already
// handled. Permission is requested the first time there is something to
// send; a denied permission is not an error and the reminders still count
// as handled.
type Dispatcher struct {
	notifier Notifier
	log      logging.Logger

	mu        sync.Mutex
	seen      map[string]struct{}
	requested bool
}

func NewDispatcher(n Notifier, log logging.Logger) *Dispatcher {
	return &Dispatcher{notifier: n, log: log, seen: make(map[string]struct{})}
}

// Seen reports whether id was already dispatched.
func (d *Dispatcher) Seen(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[id]
	return ok
}

// Dispatch notifies every reminder whose id has not been handled yet and
// returns how many notifications were sent.
func (d *Dispatcher) Dispatch(ctx context.Context, reminders []models.Reminder) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fresh := make([]models.Reminder, 0, len(reminders))
	batch := make(map[string]struct{}, len(reminders))
	for _, r := range reminders {
		if _, ok := d.seen[r.ID]; ok {
			continue
		}
		if _, ok := batch[r.ID]; ok {
			continue
		}
		batch[r.ID] = struct{}{}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	// An undecided permission leaves the ids fresh for a later grant.
	perm := d.permission(ctx)
	if perm == PermissionDefault {
		d.log.Debug(ctx, "notification permission undecided, deferring", "count", len(fresh))
		return 0, nil
	}
	for _, r := range fresh {
		d.seen[r.ID] = struct{}{}
	}
	if perm != PermissionGranted {
		d.log.Debug(ctx, "notification permission denied, skipping", "count", len(fresh))
		return 0, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelNotifications)
	for _, r := range fresh {
		r := r
		g.Go(func() error {
			if err := d.notifier.Notify(gCtx, r.Title, r.Body); err != nil {
				return fmt.Errorf("notifying %s: %w", r.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func (d *Dispatcher) permission(ctx context.Context) Permission {
	perm := d.notifier.Permission()
	if perm != PermissionDefault || d.requested {
		return perm
	}
	d.requested = true
	perm, err := d.notifier.RequestPermission(ctx)
	if err != nil {
		d.log.Warn(ctx, "notification permission request failed", "error", err)
		return PermissionDenied
	}
	return perm
}

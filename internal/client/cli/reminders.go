package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/reminders"
	"github.com/dmitrijs2005/dailykeep/internal/common"
)

const defaultSnooze = time.Hour

// Reminders evaluates reminders now and prints the panel. The panel does not
// depend on notification permission.
func (a *App) Reminders(ctx context.Context, _ []string) error {
	snap, ok, err := a.snapshots.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNoSession
	}

	now := a.clock.Now()
	res := reminders.Evaluate(snap.Budget, snap.Loans, snap.Jobs, snap.Settings, now)
	a.setPanel(snap.UserID, res)

	if snap.Settings.Snoozed(now) {
		fmt.Fprintf(a.out, "Snoozed until %s\n", time.UnixMilli(snap.Settings.SnoozeUntil).In(now.Location()).Format("2006-01-02 15:04"))
	}
	for _, c := range models.Categories {
		state := "on"
		if snap.Settings.IsDisabled(c) {
			state = "off"
		}
		fmt.Fprintf(a.out, "  %-7s %s\n", c, state)
	}

	if len(res.Reminders) == 0 {
		fmt.Fprintln(a.out, "Nothing due")
		return nil
	}
	for _, r := range res.Reminders {
		fmt.Fprintf(a.out, "* [%s] %s: %s\n", r.Type, r.Title, r.Body)
	}
	return nil
}

// Snooze accepts "snooze [minutes|off]"; one hour by default.
func (a *App) Snooze(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "off" {
		if _, err := a.reminderSettings.Resume(ctx, a.user.ID); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Reminders resumed")
		return nil
	}

	d := defaultSnooze
	if len(args) > 0 {
		m, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%q is not a number of minutes", args[0])
		}
		d = time.Duration(m) * time.Minute
	}

	st, err := a.reminderSettings.Snooze(ctx, a.user.ID, d)
	if err != nil {
		return err
	}
	a.setPanel(a.user.ID, reminders.Result{})
	fmt.Fprintf(a.out, "Reminders snoozed until %s\n", time.UnixMilli(st.SnoozeUntil).Format("15:04"))
	return nil
}

// Toggle switches one reminder category on or off.
func (a *App) Toggle(ctx context.Context, args []string) error {
	s, err := a.argOrAsk(args, 0, "Category (budget, loans, jobs)")
	if err != nil {
		return err
	}
	c, err := models.ParseCategory(s)
	if err != nil {
		return err
	}
	st, err := a.reminderSettings.Toggle(ctx, a.user.ID, c)
	if err != nil {
		return err
	}
	state := "on"
	if st.IsDisabled(c) {
		state = "off"
	}
	fmt.Fprintf(a.out, "%s reminders %s\n", c, state)
	return nil
}

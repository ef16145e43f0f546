// Package reminders derives the reminders due right now from a user's
// budget, loans, jobs and reminder settings.
//
// Evaluation holds no state. A reminder id depends only on the category, the
// entity and the relevant date, so the same condition produces the same id
// on every evaluation and consumers can de-duplicate by equality.
package reminders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/common"
)

const (
	// UpcomingWindowDays is how many days ahead of a due date an EMI
	// reminder starts.
	UpcomingWindowDays = 3
	// FollowUpAfterDays is how long an application may sit in Applied
	// before a follow-up is suggested.
	FollowUpAfterDays = 7
)

type Result struct {
	Reminders []models.Reminder
	Badges    models.Badges
}

// Evaluate returns the reminders due at now, ordered budget first, then
// loans and jobs in input order. Calendar days are taken in now's location.
// A nil budget produces no budget reminder.
func Evaluate(budget *models.Budget, loans []models.Loan, jobs []models.Job, settings models.ReminderSettings, now time.Time) Result {
	res := Result{Reminders: []models.Reminder{}}
	if settings.Snoozed(now) {
		return res
	}

	if !settings.IsDisabled(models.CategoryBudget) && budget != nil {
		if r, ok := expenseReminder(*budget, now); ok {
			res.add(r)
		}
	}

	if !settings.IsDisabled(models.CategoryLoans) {
		for _, loan := range loans {
			if r, ok := loanReminder(loan, now); ok {
				res.add(r)
			}
		}
	}

	if !settings.IsDisabled(models.CategoryJobs) {
		for _, job := range jobs {
			if r, ok := jobReminder(job, now); ok {
				res.add(r)
			}
		}
	}

	return res
}

func (r *Result) add(rem models.Reminder) {
	r.Reminders = append(r.Reminders, rem)
	r.Badges.Set(rem.Type)
}

func expenseReminder(b models.Budget, now time.Time) (models.Reminder, bool) {
	hour, minute, ok := parseTimeOfDay(b.Profile.DailyReminderTime)
	if !ok {
		return models.Reminder{}, false
	}
	if now.Hour() < hour || (now.Hour() == hour && now.Minute() < minute) {
		return models.Reminder{}, false
	}
	today := common.DayKey(now)
	if b.Meta.LastExpenseLogDate == today {
		return models.Reminder{}, false
	}
	return models.Reminder{
		ID:    "expense-" + today,
		Type:  models.CategoryBudget,
		Title: "Daily Expense Reminder",
		Body:  "Update today's expenses",
	}, true
}

func loanReminder(l models.Loan, now time.Time) (models.Reminder, bool) {
	if l.RemainingBalance <= 0 {
		return models.Reminder{}, false
	}
	due, ok := parseDate(l.NextDueDate)
	if !ok {
		return models.Reminder{}, false
	}

	days := daysBetween(calendarDate(now), due)
	switch {
	case days < 0:
		return models.Reminder{
			ID:    fmt.Sprintf("emi-overdue-%s-%s", l.ID, l.NextDueDate),
			Type:  models.CategoryLoans,
			Title: "Overdue EMI",
			Body:  fmt.Sprintf("%s EMI is overdue since %s", l.Name, l.NextDueDate),
		}, true
	case days <= UpcomingWindowDays:
		return models.Reminder{
			ID:    fmt.Sprintf("emi-upcoming-%s-%s", l.ID, l.NextDueDate),
			Type:  models.CategoryLoans,
			Title: "EMI Reminder",
			Body:  fmt.Sprintf("%s EMI due on %s", l.Name, l.NextDueDate),
		}, true
	}
	return models.Reminder{}, false
}

func jobReminder(j models.Job, now time.Time) (models.Reminder, bool) {
	if j.Status != models.JobApplied {
		return models.Reminder{}, false
	}
	applied, ok := parseDate(j.DateApplied)
	if !ok {
		return models.Reminder{}, false
	}
	if daysBetween(applied, calendarDate(now)) < FollowUpAfterDays {
		return models.Reminder{}, false
	}
	return models.Reminder{
		ID:    "job-follow-up-" + j.ID,
		Type:  models.CategoryJobs,
		Title: "Application Follow-up",
		Body:  fmt.Sprintf("Follow up with %s for %s", j.Company, j.Role),
	}, true
}

// calendarDate maps t's local calendar day to midnight UTC so day
// differences are unaffected by DST transitions.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func parseTimeOfDay(s string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

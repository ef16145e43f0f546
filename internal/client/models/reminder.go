package models

import (
	"fmt"
	"strings"
	"time"
)

// Category groups reminders and is the unit users can disable.
type Category string

const (
	CategoryBudget Category = "budget"
	CategoryLoans  Category = "loans"
	CategoryJobs   Category = "jobs"
)

var Categories = []Category{CategoryBudget, CategoryLoans, CategoryJobs}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryBudget, CategoryLoans, CategoryJobs:
		return c, nil
	}
	return "", fmt.Errorf("unknown reminder category %q", s)
}

type Reminder struct {
	ID    string   `json:"id"`
	Type  Category `json:"type"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
}

// Badges flags which categories currently have at least one reminder.
type Badges struct {
	Budget bool `json:"budget"`
	Loans  bool `json:"loans"`
	Jobs   bool `json:"jobs"`
}

func (b *Badges) Set(c Category) {
	switch c {
	case CategoryBudget:
		b.Budget = true
	case CategoryLoans:
		b.Loans = true
	case CategoryJobs:
		b.Jobs = true
	}
}

type DisabledCategories struct {
	Budget bool `json:"budget"`
	Loans  bool `json:"loans"`
	Jobs   bool `json:"jobs"`
}

// ReminderSettings holds the per-user snooze window (epoch milliseconds) and
// the categories switched off.
type ReminderSettings struct {
	SnoozeUntil int64              `json:"snoozeUntil"`
	Disabled    DisabledCategories `json:"disabled"`
}

func (s ReminderSettings) Snoozed(now time.Time) bool {
	return now.UnixMilli() < s.SnoozeUntil
}

func (s ReminderSettings) IsDisabled(c Category) bool {
	switch c {
	case CategoryBudget:
		return s.Disabled.Budget
	case CategoryLoans:
		return s.Disabled.Loans
	case CategoryJobs:
		return s.Disabled.Jobs
	}
	return false
}

// Toggle flips c and returns its new disabled state.
func (s *ReminderSettings) Toggle(c Category) bool {
	switch c {
	case CategoryBudget:
		s.Disabled.Budget = !s.Disabled.Budget
	case CategoryLoans:
		s.Disabled.Loans = !s.Disabled.Loans
	case CategoryJobs:
		s.Disabled.Jobs = !s.Disabled.Jobs
	}
	return s.IsDisabled(c)
}

package models

import (
	"sort"
	"strings"
	"time"
)

const (
	DefaultReminderTime    = "20:00"
	DefaultExpenseCategory = "General"
)

type Budget struct {
	Profile        BudgetProfile     `json:"profile"`
	ProfileHistory []ProfileSnapshot `json:"profileHistory"`
	Expenses       []Expense         `json:"expenses"`
	Meta           BudgetMeta        `json:"meta"`
}

type BudgetProfile struct {
	MonthlyIncome     float64 `json:"monthlyIncome"`
	MonthlyLimit      float64 `json:"monthlyLimit"`
	DailyReminderTime string  `json:"dailyReminderTime"`
}

// ProfileSnapshot records the profile as it stood in a given month.
type ProfileSnapshot struct {
	Month         string    `json:"month"`
	MonthlyIncome float64   `json:"monthlyIncome"`
	MonthlyLimit  float64   `json:"monthlyLimit"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Expense struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
}

type BudgetMeta struct {
	LastExpenseLogDate string `json:"lastExpenseLogDate"`
}

func DefaultBudget() Budget {
	return Budget{
		Profile:        BudgetProfile{DailyReminderTime: DefaultReminderTime},
		ProfileHistory: []ProfileSnapshot{},
		Expenses:       []Expense{},
	}
}

type CategoryTotal struct {
	Category string
	Amount   float64
}

// BudgetSummary is the spending picture for one month.
type BudgetSummary struct {
	Month      string
	TotalSpent float64
	Remaining  float64
	Savings    float64
	Percentage float64
	Categories []CategoryTotal
	Expenses   []Expense
}

// Summary totals the expenses dated within month (a "2006-01" key).
func (b Budget) Summary(month string) BudgetSummary {
	s := BudgetSummary{Month: month}
	byCategory := map[string]float64{}
	for _, e := range b.Expenses {
		if !strings.HasPrefix(e.Date, month) {
			continue
		}
		s.Expenses = append(s.Expenses, e)
		s.TotalSpent += e.Amount
		cat := e.Category
		if cat == "" {
			cat = DefaultExpenseCategory
		}
		byCategory[cat] += e.Amount
	}

	limit := b.Profile.MonthlyLimit
	s.Remaining = max(limit-s.TotalSpent, 0)
	s.Savings = b.Profile.MonthlyIncome - s.TotalSpent
	if limit > 0 {
		s.Percentage = min(s.TotalSpent/limit*100, 100)
	}

	for cat, amount := range byCategory {
		s.Categories = append(s.Categories, CategoryTotal{Category: cat, Amount: amount})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Amount != s.Categories[j].Amount {
			return s.Categories[i].Amount > s.Categories[j].Amount
		}
		return s.Categories[i].Category < s.Categories[j].Category
	})
	return s
}

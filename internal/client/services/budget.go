package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/keys"
	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/dmitrijs2005/dailykeep/internal/sanitize"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
	"github.com/google/uuid"
)

const (
	ExpenseNoteMaxLen     = 180
	ExpenseCategoryMaxLen = 40
)

type ProfilePatch struct {
	MonthlyIncome     *float64
	MonthlyLimit      *float64
	DailyReminderTime *string
}

type ExpenseInput struct {
	Date     string
	Amount   float64
	Category string
	Note     string
}

// BudgetService manages the user's budget book. The whole book is stored as
// one encrypted record and every mutation rewrites it immediately.
type BudgetService interface {
	Load(ctx context.Context, userID string) models.Budget
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (models.Budget, error)
	AddExpense(ctx context.Context, userID string, in ExpenseInput) (models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
	Summary(ctx context.Context, userID, month string) models.BudgetSummary
}

type budgetService struct {
	mu      sync.Mutex
	records *records.Store
	clock   timex.Clock
	log     logging.Logger
}

func NewBudgetService(rec *records.Store, clock timex.Clock, log logging.Logger) BudgetService {
	return &budgetService{records: rec, clock: clock, log: log}
}

func (s *budgetService) Load(ctx context.Context, userID string) models.Budget {
	b := readEncrypted(ctx, s.records, s.log, keys.User(keys.Budget, userID), userID, models.DefaultBudget())
	if b.Profile.DailyReminderTime == "" {
		b.Profile.DailyReminderTime = models.DefaultReminderTime
	}
	return b
}

func (s *budgetService) save(ctx context.Context, userID string, b models.Budget) error {
	if err := writeEncrypted(ctx, s.records, keys.User(keys.Budget, userID), userID, b); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	return nil
}

// UpdateProfile applies patch and records the resulting income and limit as
// the snapshot of the current month.
func (s *budgetService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (models.Budget, error) {
	if patch.MonthlyIncome != nil && *patch.MonthlyIncome < 0 {
		return models.Budget{}, fmt.Errorf("%w: monthly income cannot be negative", common.ErrValidation)
	}
	if patch.MonthlyLimit != nil && *patch.MonthlyLimit < 0 {
		return models.Budget{}, fmt.Errorf("%w: monthly limit cannot be negative", common.ErrValidation)
	}
	if patch.DailyReminderTime != nil {
		if _, err := time.Parse(common.TimeOfDayLayout, *patch.DailyReminderTime); err != nil {
			return models.Budget{}, fmt.Errorf("%w: reminder time must be HH:MM", common.ErrValidation)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.Load(ctx, userID)
	if patch.MonthlyIncome != nil {
		b.Profile.MonthlyIncome = *patch.MonthlyIncome
	}
	if patch.MonthlyLimit != nil {
		b.Profile.MonthlyLimit = *patch.MonthlyLimit
	}
	if patch.DailyReminderTime != nil {
		b.Profile.DailyReminderTime = *patch.DailyReminderTime
	}

	now := s.clock.Now()
	snap := models.ProfileSnapshot{
		Month:         common.MonthKey(now),
		MonthlyIncome: b.Profile.MonthlyIncome,
		MonthlyLimit:  b.Profile.MonthlyLimit,
		UpdatedAt:     now,
	}
	if i := slices.IndexFunc(b.ProfileHistory, func(p models.ProfileSnapshot) bool { return p.Month == snap.Month }); i >= 0 {
		b.ProfileHistory[i] = snap
	} else {
		b.ProfileHistory = append([]models.ProfileSnapshot{snap}, b.ProfileHistory...)
	}

	if err := s.save(ctx, userID, b); err != nil {
		return models.Budget{}, err
	}
	return b, nil
}

// AddExpense records an expense (dated today unless given) and marks today
// as logged, which silences the daily expense reminder.
func (s *budgetService) AddExpense(ctx context.Context, userID string, in ExpenseInput) (models.Expense, error) {
	if in.Amount <= 0 {
		return models.Expense{}, fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	now := s.clock.Now()
	date := sanitize.Text(in.Date, dateMaxLen, false)
	if date == "" {
		date = common.DayKey(now)
	}
	if !sanitize.IsISODate(date) {
		return models.Expense{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", common.ErrValidation)
	}
	category := sanitize.Text(in.Category, ExpenseCategoryMaxLen, false)
	if category == "" {
		category = models.DefaultExpenseCategory
	}

	e := models.Expense{
		ID:       uuid.NewString(),
		Date:     date,
		Amount:   in.Amount,
		Category: category,
		Note:     sanitize.Text(in.Note, ExpenseNoteMaxLen, false),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.Load(ctx, userID)
	b.Expenses = append([]models.Expense{e}, b.Expenses...)
	b.Meta.LastExpenseLogDate = common.DayKey(now)
	if err := s.save(ctx, userID, b); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

func (s *budgetService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.Load(ctx, userID)
	n := len(b.Expenses)
	b.Expenses = slices.DeleteFunc(b.Expenses, func(e models.Expense) bool { return e.ID == expenseID })
	if len(b.Expenses) == n {
		return fmt.Errorf("expense %s: %w", expenseID, common.ErrorNotFound)
	}
	return s.save(ctx, userID, b)
}

// Summary reports spending for month ("2006-01"); an empty month means the
// current one.
func (s *budgetService) Summary(ctx context.Context, userID, month string) models.BudgetSummary {
	if month == "" {
		month = common.MonthKey(s.clock.Now())
	}
	return s.Load(ctx, userID).Summary(month)
}

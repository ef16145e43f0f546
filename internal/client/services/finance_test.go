package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/dailykeep/internal/client/keys"
	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_DefaultsAndProfileHistory(t *testing.T) {
	rec, _ := setupRecords(t)
	svc := NewBudgetService(rec, newClock(), logging.NewNop())
	ctx := context.Background()

	b := svc.Load(ctx, "u1")
	assert.Equal(t, "20:00", b.Profile.DailyReminderTime)
	assert.Empty(t, b.Expenses)

	b, err := svc.UpdateProfile(ctx, "u1", ProfilePatch{MonthlyIncome: ptr(5000.0), MonthlyLimit: ptr(1200.0)})
	require.NoError(t, err)
	b, err = svc.UpdateProfile(ctx, "u1", ProfilePatch{MonthlyLimit: ptr(1500.0), DailyReminderTime: ptr("21:30")})
	require.NoError(t, err)

	require.Len(t, b.ProfileHistory, 1, "same month is replaced")
	assert.Equal(t, "2024-05", b.ProfileHistory[0].Month)
	assert.Equal(t, 5000.0, b.ProfileHistory[0].MonthlyIncome)
	assert.Equal(t, 1500.0, b.ProfileHistory[0].MonthlyLimit)

	again := svc.Load(ctx, "u1")
	assert.Equal(t, "21:30", again.Profile.DailyReminderTime)

	_, err = svc.UpdateProfile(ctx, "u1", ProfilePatch{DailyReminderTime: ptr("late")})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.UpdateProfile(ctx, "u1", ProfilePatch{MonthlyLimit: ptr(-1.0)})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestBudget_ExpensesAreEncryptedAndSummarized(t *testing.T) {
	rec, kv := setupRecords(t)
	svc := NewBudgetService(rec, newClock(), logging.NewNop())
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "u1", ProfilePatch{MonthlyLimit: ptr(1000.0)})
	require.NoError(t, err)

	e, err := svc.AddExpense(ctx, "u1", ExpenseInput{Amount: 250, Category: "Groceries", Note: "weekly shop"})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", e.Date)
	_, err = svc.AddExpense(ctx, "u1", ExpenseInput{Amount: 50, Date: "2024-04-30"})
	require.NoError(t, err)

	raw, ok, err := kv.Read(ctx, keys.User(keys.Budget, "u1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"iv"`)
	assert.NotContains(t, raw, "weekly shop")

	b := svc.Load(ctx, "u1")
	assert.Equal(t, "2024-05-10", b.Meta.LastExpenseLogDate)
	assert.Len(t, b.Expenses, 2)

	sum := svc.Summary(ctx, "u1", "")
	assert.Equal(t, 250.0, sum.TotalSpent)
	assert.Equal(t, 750.0, sum.Remaining)

	require.NoError(t, svc.DeleteExpense(ctx, "u1", e.ID))
	assert.ErrorIs(t, svc.DeleteExpense(ctx, "u1", e.ID), common.ErrorNotFound)
	assert.Len(t, svc.Load(ctx, "u1").Expenses, 1)

	_, err = svc.AddExpense(ctx, "u1", ExpenseInput{Amount: 0})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestBudget_OtherUserCannotDecrypt(t *testing.T) {
	rec, kv := setupRecords(t)
	svc := NewBudgetService(rec, newClock(), logging.NewNop())
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, "u1", ExpenseInput{Amount: 10})
	require.NoError(t, err)

	raw, _, _ := kv.Read(ctx, keys.User(keys.Budget, "u1"))
	require.NoError(t, kv.Write(ctx, keys.User(keys.Budget, "u2"), raw))

	b := svc.Load(ctx, "u2")
	assert.Empty(t, b.Expenses, "u2 falls back to the default budget")
}

func TestLoans_PaymentsAndProgress(t *testing.T) {
	rec, _ := setupRecords(t)
	svc := NewLoanService(rec, newClock(), logging.NewNop())
	ctx := context.Background()

	l, err := svc.Add(ctx, "u1", LoanInput{Name: "Car", TotalAmount: 1000, EMI: 100, NextDueDate: "2024-05-12"})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, l.RemainingBalance)

	l, err = svc.RecordPayment(ctx, "u1", l.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, 700.0, l.RemainingBalance)
	assert.Equal(t, 30.0, l.Progress())

	l, err = svc.RecordPayment(ctx, "u1", l.ID, 900)
	require.NoError(t, err)
	assert.Equal(t, 0.0, l.RemainingBalance)
	assert.Equal(t, 100.0, l.Progress())
	require.Len(t, l.Payments, 2)
	assert.Equal(t, 900.0, l.Payments[0].Amount, "newest payment first")
	assert.Equal(t, "2024-05-10", l.Payments[0].Date)

	_, err = svc.RecordPayment(ctx, "u1", "missing", 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.RecordPayment(ctx, "u1", l.ID, -5)
	assert.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, svc.Delete(ctx, "u1", l.ID))
	assert.Empty(t, svc.List(ctx, "u1"))
}

func TestLoans_Validation(t *testing.T) {
	rec, _ := setupRecords(t)
	svc := NewLoanService(rec, newClock(), logging.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", LoanInput{TotalAmount: 10})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Add(ctx, "u1", LoanInput{Name: "x"})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Add(ctx, "u1", LoanInput{Name: "x", TotalAmount: 10, NextDueDate: "next week"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestJobs_Lifecycle(t *testing.T) {
	rec, _ := setupRecords(t)
	svc := NewJobService(rec, newClock())
	ctx := context.Background()

	j, err := svc.Add(ctx, "u1", JobInput{Company: "Acme", Role: "SRE"})
	require.NoError(t, err)
	assert.Equal(t, models.JobApplied, j.Status)
	assert.Equal(t, "2024-05-10", j.DateApplied)

	_, err = svc.Add(ctx, "u1", JobInput{Company: "Globex", Role: "Dev", Status: models.JobOffer})
	require.NoError(t, err)

	j, err = svc.Update(ctx, "u1", j.ID, models.JobPatch{Status: ptr(models.JobInterview)})
	require.NoError(t, err)
	assert.Equal(t, models.JobInterview, j.Status)

	a := svc.Analytics(ctx, "u1")
	assert.Equal(t, models.JobAnalytics{Total: 2, Interviews: 1, Offers: 1, InterviewRate: 50, OfferRate: 50}, a)

	_, err = svc.Update(ctx, "u1", j.ID, models.JobPatch{Status: ptr(models.JobStatus("Ghosted"))})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Add(ctx, "u1", JobInput{Role: "no company"})
	assert.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, svc.Delete(ctx, "u1", j.ID))
	assert.Len(t, svc.List(ctx, "u1"), 1)
}

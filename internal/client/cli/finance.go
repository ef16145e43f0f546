package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dailykeep/internal/client/services"
)

// Budget prints the summary of a month, the current one by default.
func (a *App) Budget(ctx context.Context, args []string) error {
	month := ""
	if len(args) > 0 {
		month = args[0]
	}
	b := a.budgetService.Load(ctx, a.user.ID)
	s := a.budgetService.Summary(ctx, a.user.ID, month)

	fmt.Fprintf(a.out, "Budget %s\n", s.Month)
	fmt.Fprintf(a.out, "  income %.2f  limit %.2f  reminder at %s\n",
		b.Profile.MonthlyIncome, b.Profile.MonthlyLimit, b.Profile.DailyReminderTime)
	fmt.Fprintf(a.out, "  spent %.2f (%.0f%%)  remaining %.2f  savings %.2f\n",
		s.TotalSpent, s.Percentage, s.Remaining, s.Savings)
	for _, c := range s.Categories {
		fmt.Fprintf(a.out, "  %-14s %10.2f\n", c.Category, c.Amount)
	}
	for _, e := range s.Expenses {
		fmt.Fprintf(a.out, "  %s %s %10.2f %-12s %s\n", shortID(e.ID), e.Date, e.Amount, e.Category, e.Note)
	}
	return nil
}

// SetBudget prompts for each profile field; a blank answer keeps the
// current value.
func (a *App) SetBudget(ctx context.Context, _ []string) error {
	var patch services.ProfilePatch

	for _, f := range []struct {
		prompt string
		dst    **float64
	}{
		{"Monthly income (blank to keep)", &patch.MonthlyIncome},
		{"Monthly limit (blank to keep)", &patch.MonthlyLimit},
	} {
		s, err := a.ask(f.prompt)
		if err != nil {
			return err
		}
		if s == "" {
			continue
		}
		v, err := parseAmount(s)
		if err != nil {
			return err
		}
		*f.dst = &v
	}

	t, err := a.ask("Daily reminder time HH:MM (blank to keep)")
	if err != nil {
		return err
	}
	if t != "" {
		patch.DailyReminderTime = &t
	}

	if _, err := a.budgetService.UpdateProfile(ctx, a.user.ID, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Budget updated")
	return nil
}

// AddExpense accepts "addexpense <amount> [category] [note...]" or prompts.
func (a *App) AddExpense(ctx context.Context, args []string) error {
	amount, err := a.argOrAsk(args, 0, "Amount")
	if err != nil {
		return err
	}
	in := services.ExpenseInput{}
	if in.Amount, err = parseAmount(amount); err != nil {
		return err
	}

	switch {
	case len(args) > 1:
		in.Category = args[1]
		in.Note = strings.Join(args[2:], " ")
	case len(args) == 0:
		if in.Category, err = a.ask("Category [General]"); err != nil {
			return err
		}
		if in.Note, err = a.ask("Note"); err != nil {
			return err
		}
	}

	e, err := a.budgetService.AddExpense(ctx, a.user.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged %.2f on %s\n", e.Amount, e.Date)
	return nil
}

func (a *App) Loans(ctx context.Context, _ []string) error {
	loans := a.loanService.List(ctx, a.user.ID)
	if len(loans) == 0 {
		fmt.Fprintln(a.out, "No loans")
		return nil
	}
	for _, l := range loans {
		fmt.Fprintf(a.out, "%s %-16s EMI %.2f due %s  paid %.2f/%.2f (%.0f%%)  remaining %.2f\n",
			shortID(l.ID), l.Name, l.EMI, l.NextDueDate, l.PaidAmount, l.TotalAmount, l.Progress(), l.RemainingBalance)
	}
	return nil
}

func (a *App) AddLoan(ctx context.Context, _ []string) error {
	var in services.LoanInput
	var err error

	if in.Name, err = a.ask("Loan name"); err != nil {
		return err
	}
	for _, f := range []struct {
		prompt string
		dst    *float64
	}{
		{"Total amount", &in.TotalAmount},
		{"EMI", &in.EMI},
		{"Interest rate %", &in.InterestRate},
	} {
		s, err := a.ask(f.prompt)
		if err != nil {
			return err
		}
		if *f.dst, err = parseAmount(s); err != nil {
			return err
		}
	}
	if in.NextDueDate, err = a.ask("Next due date (YYYY-MM-DD)"); err != nil {
		return err
	}

	l, err := a.loanService.Add(ctx, a.user.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added loan %s\n", shortID(l.ID))
	return nil
}

// PayLoan accepts "payloan <id> [amount]"; the amount defaults to the EMI.
func (a *App) PayLoan(ctx context.Context, args []string) error {
	prefix, err := a.argOrAsk(args, 0, "Loan id")
	if err != nil {
		return err
	}
	loans := a.loanService.List(ctx, a.user.ID)
	ids := make([]string, len(loans))
	for i, l := range loans {
		ids[i] = l.ID
	}
	id, err := matchID(ids, prefix)
	if err != nil {
		return err
	}

	var amount float64
	if len(args) > 1 {
		if amount, err = parseAmount(args[1]); err != nil {
			return err
		}
	} else {
		for _, l := range loans {
			if l.ID == id {
				amount = l.EMI
			}
		}
	}

	l, err := a.loanService.RecordPayment(ctx, a.user.ID, id, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Paid %.2f on %s, remaining %.2f\n", amount, l.Name, l.RemainingBalance)
	return nil
}

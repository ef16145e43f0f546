package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/dailykeep/internal/client/keys"
	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/dmitrijs2005/dailykeep/internal/sanitize"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
	"github.com/google/uuid"
)

const LoanNameMaxLen = 80

type LoanInput struct {
	Name         string
	TotalAmount  float64
	EMI          float64
	InterestRate float64
	NextDueDate  string
}

// LoanService manages the user's loans, stored as one encrypted record.
type LoanService interface {
	List(ctx context.Context, userID string) []models.Loan
	Add(ctx context.Context, userID string, in LoanInput) (models.Loan, error)
	RecordPayment(ctx context.Context, userID, loanID string, amount float64) (models.Loan, error)
	Delete(ctx context.Context, userID, loanID string) error
}

type loanService struct {
	mu      sync.Mutex
	records *records.Store
	clock   timex.Clock
	log     logging.Logger
}

func NewLoanService(rec *records.Store, clock timex.Clock, log logging.Logger) LoanService {
	return &loanService{records: rec, clock: clock, log: log}
}

func (s *loanService) List(ctx context.Context, userID string) []models.Loan {
	return readEncrypted(ctx, s.records, s.log, keys.User(keys.Loans, userID), userID, []models.Loan{})
}

func (s *loanService) save(ctx context.Context, userID string, loans []models.Loan) error {
	if err := writeEncrypted(ctx, s.records, keys.User(keys.Loans, userID), userID, loans); err != nil {
		return fmt.Errorf("saving loans: %w", err)
	}
	return nil
}

func (s *loanService) Add(ctx context.Context, userID string, in LoanInput) (models.Loan, error) {
	name := sanitize.Text(in.Name, LoanNameMaxLen, false)
	if name == "" {
		return models.Loan{}, fmt.Errorf("%w: loan name is required", common.ErrValidation)
	}
	if in.TotalAmount <= 0 {
		return models.Loan{}, fmt.Errorf("%w: total amount must be positive", common.ErrValidation)
	}
	if in.EMI < 0 || in.InterestRate < 0 {
		return models.Loan{}, fmt.Errorf("%w: EMI and interest rate cannot be negative", common.ErrValidation)
	}
	due, err := cleanDueDate(in.NextDueDate)
	if err != nil {
		return models.Loan{}, err
	}

	l := models.Loan{
		ID:               uuid.NewString(),
		Name:             name,
		TotalAmount:      in.TotalAmount,
		EMI:              in.EMI,
		InterestRate:     in.InterestRate,
		NextDueDate:      due,
		RemainingBalance: in.TotalAmount,
		Payments:         []models.Payment{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, userID, append([]models.Loan{l}, s.List(ctx, userID)...)); err != nil {
		return models.Loan{}, err
	}
	return l, nil
}

// RecordPayment adds amount to the paid total and recomputes the remaining
// balance, which never goes below zero.
func (s *loanService) RecordPayment(ctx context.Context, userID, loanID string, amount float64) (models.Loan, error) {
	if amount <= 0 {
		return models.Loan{}, fmt.Errorf("%w: payment must be positive", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loans := s.List(ctx, userID)
	i := slices.IndexFunc(loans, func(l models.Loan) bool { return l.ID == loanID })
	if i < 0 {
		return models.Loan{}, fmt.Errorf("loan %s: %w", loanID, common.ErrorNotFound)
	}

	l := &loans[i]
	l.PaidAmount += amount
	l.RemainingBalance = max(l.TotalAmount-l.PaidAmount, 0)
	l.Payments = append([]models.Payment{{
		ID:     uuid.NewString(),
		Date:   common.DayKey(s.clock.Now()),
		Amount: amount,
	}}, l.Payments...)

	if err := s.save(ctx, userID, loans); err != nil {
		return models.Loan{}, err
	}
	return *l, nil
}

func (s *loanService) Delete(ctx context.Context, userID, loanID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans := s.List(ctx, userID)
	next := slices.DeleteFunc(loans, func(l models.Loan) bool { return l.ID == loanID })
	if len(next) == len(loans) {
		return fmt.Errorf("loan %s: %w", loanID, common.ErrorNotFound)
	}
	return s.save(ctx, userID, next)
}

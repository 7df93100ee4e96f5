package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
)

// ExpenseUseCase handles day-to-day expense records.
type ExpenseUseCase struct {
	recordRepo RecordRepository
	idGen      IDGenerator
	clock      domain.Clock
	rates      domain.RateTable
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(recordRepo RecordRepository, idGen IDGenerator, clock domain.Clock, rates domain.RateTable) *ExpenseUseCase {
	return &ExpenseUseCase{
		recordRepo: recordRepo,
		idGen:      idGen,
		clock:      clock,
		rates:      rates,
	}
}

// AddExpenseInput represents input for recording an expense.
type AddExpenseInput struct {
	Date        time.Time
	UserID      string
	Currency    domain.Currency
	Category    string
	Description string
	Amount      decimal.Decimal
}

// AddExpense records an expense for a user. The amount is a positive
// magnitude; the kind carries the sign.
func (uc *ExpenseUseCase) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.Record, error) {
	now := uc.clock.Now()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	record := &domain.Record{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindExpense,
		UserID:      input.UserID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Date:        date,
		Category:    input.Category,
		Description: input.Description,
		CreatedAt:   now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := uc.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateExpenseInput represents input for editing an expense.
type UpdateExpenseInput struct {
	Date        time.Time
	ID          string
	Currency    domain.Currency
	Category    string
	Description string
	Amount      decimal.Decimal
}

// UpdateExpense edits an existing expense record.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*domain.Record, error) {
	record, err := uc.recordRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if record.Kind != domain.KindExpense {
		return nil, domain.ErrRecordNotFound
	}

	record.Amount = input.Amount
	record.Currency = input.Currency
	record.Category = input.Category
	record.Description = input.Description

	if !input.Date.IsZero() {
		record.Date = input.Date
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := uc.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteExpense removes an expense by ID.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	record, err := uc.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if record.Kind != domain.KindExpense {
		return domain.ErrRecordNotFound
	}

	return uc.recordRepo.Delete(ctx, id)
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListExpenses lists expenses, optionally scoped to one user.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Record, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.recordRepo.List(ctx, RecordFilter{
		UserID: input.UserID,
		Kinds:  []domain.RecordKind{domain.KindExpense},
		Limit:  limit,
		Offset: offset,
	})
}

// MonthlyExpenses lists expenses for one calendar month.
func (uc *ExpenseUseCase) MonthlyExpenses(ctx context.Context, year int, month time.Month, userID string) ([]*domain.Record, error) {
	window := domain.MonthOf(year, month)

	return uc.recordRepo.List(ctx, RecordFilter{
		UserID: userID,
		Kinds:  []domain.RecordKind{domain.KindExpense},
		From:   window.Start,
		To:     window.End,
	})
}

// MonthlySummary aggregates the current month's expenses, normalized to
// the reference currency.
func (uc *ExpenseUseCase) MonthlySummary(ctx context.Context, userID string) (domain.Summary, error) {
	window := domain.CurrentMonth(uc.clock)

	records, err := uc.recordRepo.List(ctx, RecordFilter{
		UserID: userID,
		Kinds:  []domain.RecordKind{domain.KindExpense},
		From:   window.Start,
		To:     window.End,
	})
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Aggregate(records, uc.rates)
}

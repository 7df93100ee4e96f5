package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
)

// SalaryUseCase handles salary inflows and the available-balance
// derivation used by the transfer guard.
type SalaryUseCase struct {
	recordRepo RecordRepository
	idGen      IDGenerator
	clock      domain.Clock
	rates      domain.RateTable
}

// NewSalaryUseCase creates a new SalaryUseCase.
func NewSalaryUseCase(recordRepo RecordRepository, idGen IDGenerator, clock domain.Clock, rates domain.RateTable) *SalaryUseCase {
	return &SalaryUseCase{
		recordRepo: recordRepo,
		idGen:      idGen,
		clock:      clock,
		rates:      rates,
	}
}

// AddSalaryInput represents input for recording a salary inflow.
type AddSalaryInput struct {
	Date        time.Time
	UserID      string
	Currency    domain.Currency
	Description string
	Amount      decimal.Decimal
}

// AddSalary records a salary inflow for a user.
func (uc *SalaryUseCase) AddSalary(ctx context.Context, input AddSalaryInput) (*domain.Record, error) {
	now := uc.clock.Now()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	record := &domain.Record{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindSalary,
		UserID:      input.UserID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Date:        date,
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

// salaryScopeKinds are the record kinds that move the salary scope's
// balance: salary inflows, plain expenses and transfer debits out.
var salaryScopeKinds = []domain.RecordKind{
	domain.KindSalary,
	domain.KindExpense,
	domain.KindSalaryTransfer,
}

// AvailableBalance derives the user's spendable salary balance:
// all salary inflows minus expenses and salary-funded transfers,
// normalized to the reference currency.
func (uc *SalaryUseCase) AvailableBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	records, err := uc.recordRepo.List(ctx, RecordFilter{
		UserID: userID,
		Kinds:  salaryScopeKinds,
	})
	if err != nil {
		return decimal.Zero, err
	}

	summary, err := domain.Aggregate(records, uc.rates)
	if err != nil {
		return decimal.Zero, err
	}

	return summary.Balance, nil
}

// salaryBalanceTx is AvailableBalance re-read inside a transaction
// holding the salary scope lock. Transfer guards must use this, never
// a balance computed before the lock was taken.
func salaryBalanceTx(ctx context.Context, tx Transaction, repo RecordRepository, rates domain.RateTable, userID string) (decimal.Decimal, error) {
	records, err := repo.ListTx(ctx, tx, RecordFilter{
		UserID: userID,
		Kinds:  salaryScopeKinds,
	})
	if err != nil {
		return decimal.Zero, err
	}

	summary, err := domain.Aggregate(records, rates)
	if err != nil {
		return decimal.Zero, err
	}

	return summary.Balance, nil
}

// Summary aggregates the salary scope for a user over an optional
// window. A zero window means all time.
func (uc *SalaryUseCase) Summary(ctx context.Context, userID string, window *domain.Window) (domain.Summary, error) {
	filter := RecordFilter{UserID: userID, Kinds: salaryScopeKinds}
	if window != nil {
		filter.From = window.Start
		filter.To = window.End
	}

	records, err := uc.recordRepo.List(ctx, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Aggregate(records, uc.rates)
}

// HistoryInput represents input for listing salary-scope records.
type HistoryInput struct {
	UserID string
	Limit  int
	Offset int
}

// History lists salary inflows and transfer debits for a user, newest
// first.
func (uc *SalaryUseCase) History(ctx context.Context, input HistoryInput) ([]*domain.Record, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.recordRepo.List(ctx, RecordFilter{
		UserID: input.UserID,
		Kinds:  []domain.RecordKind{domain.KindSalary, domain.KindSalaryTransfer},
		Limit:  limit,
		Offset: offset,
	})
}

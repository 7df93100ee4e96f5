package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/infrastructure/metrics"
)

// InvestmentUseCase handles investment assets, their transaction
// history, the investment-entry ledger and annual returns.
type InvestmentUseCase struct {
	txManager      TransactionManager
	investmentRepo InvestmentRepository
	recordRepo     RecordRepository
	idGen          IDGenerator
	clock          domain.Clock
	rates          domain.RateTable
	retrier        Retrier
	metrics        *metrics.Metrics
}

// NewInvestmentUseCase creates a new InvestmentUseCase.
func NewInvestmentUseCase(
	txManager TransactionManager,
	investmentRepo InvestmentRepository,
	recordRepo RecordRepository,
	idGen IDGenerator,
	clock domain.Clock,
	rates domain.RateTable,
	retrier Retrier,
	m *metrics.Metrics,
) *InvestmentUseCase {
	return &InvestmentUseCase{
		txManager:      txManager,
		investmentRepo: investmentRepo,
		recordRepo:     recordRepo,
		idGen:          idGen,
		clock:          clock,
		rates:          rates,
		retrier:        retrier,
		metrics:        m,
	}
}

// CreateInvestmentInput represents input for creating an investment.
type CreateInvestmentInput struct {
	UserID        string
	Name          string
	Type          domain.InvestmentType
	Currency      domain.Currency
	InitialAmount decimal.Decimal
}

// CreateInvestment registers a new investment asset.
func (uc *InvestmentUseCase) CreateInvestment(ctx context.Context, input CreateInvestmentInput) (*domain.Investment, error) {
	now := uc.clock.Now()

	investment := &domain.Investment{
		ID:            uc.idGen.Generate(),
		UserID:        input.UserID,
		Name:          input.Name,
		Type:          input.Type,
		Currency:      input.Currency,
		CurrentAmount: input.InitialAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := investment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.investmentRepo.Create(ctx, investment); err != nil {
		return nil, err
	}

	return investment, nil
}

// GetInvestment retrieves an investment by ID.
func (uc *InvestmentUseCase) GetInvestment(ctx context.Context, id string) (*domain.Investment, error) {
	return uc.investmentRepo.GetByID(ctx, id)
}

// ListInvestments lists investments, optionally scoped to one user.
func (uc *InvestmentUseCase) ListInvestments(ctx context.Context, userID string) ([]*domain.Investment, error) {
	return uc.investmentRepo.List(ctx, userID)
}

// UpdateInvestmentInput represents input for editing an investment.
type UpdateInvestmentInput struct {
	ID   string
	Name string
	Type domain.InvestmentType
}

// UpdateInvestment edits an investment's name and type. CurrentAmount
// is only ever changed by appending transactions.
func (uc *InvestmentUseCase) UpdateInvestment(ctx context.Context, input UpdateInvestmentInput) (*domain.Investment, error) {
	investment, err := uc.investmentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	investment.Name = input.Name
	investment.Type = input.Type
	investment.UpdatedAt = uc.clock.Now()

	if err := investment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.investmentRepo.Update(ctx, investment); err != nil {
		return nil, err
	}

	return investment, nil
}

// DeleteInvestment removes an investment by ID.
func (uc *InvestmentUseCase) DeleteInvestment(ctx context.Context, id string) error {
	return uc.investmentRepo.Delete(ctx, id)
}

// AddTransactionInput represents input for one contribution event.
type AddTransactionInput struct {
	Date         time.Time
	InvestmentID string
	Description  string
	Amount       decimal.Decimal
	Currency     domain.Currency
}

// AddTransaction appends a contribution to an investment and moves its
// current amount, atomically: the investment row is locked, the
// transaction row written and the amount updated in one database
// transaction.
func (uc *InvestmentUseCase) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.InvestmentTransaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !input.Currency.IsValid() {
		return nil, domain.ErrInvalidCurrency
	}

	now := uc.clock.Now()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	txn := &domain.InvestmentTransaction{
		ID:           uc.idGen.Generate(),
		InvestmentID: input.InvestmentID,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Date:         date,
		Description:  input.Description,
		CreatedAt:    now,
	}

	err := uc.retry(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		investment, err := uc.investmentRepo.GetByIDForUpdate(ctx, tx, input.InvestmentID)
		if err != nil {
			return err
		}

		// Contributions in another currency are normalized into the
		// investment's own currency before moving its amount.
		contributed := input.Amount
		if input.Currency != investment.Currency {
			inRef, err := uc.rates.ToReference(input.Amount, input.Currency)
			if err != nil {
				return err
			}

			contributed, err = fromReference(inRef, investment.Currency, uc.rates)
			if err != nil {
				return err
			}
		}

		if err := uc.investmentRepo.CreateTransaction(ctx, tx, txn); err != nil {
			return err
		}

		newAmount := investment.CurrentAmount.Add(contributed)
		if err := uc.investmentRepo.UpdateAmount(ctx, tx, investment.ID, newAmount, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ListTransactions lists the append-only history of one investment.
func (uc *InvestmentUseCase) ListTransactions(ctx context.Context, investmentID string) ([]*domain.InvestmentTransaction, error) {
	if _, err := uc.investmentRepo.GetByID(ctx, investmentID); err != nil {
		return nil, err
	}

	return uc.investmentRepo.ListTransactions(ctx, investmentID)
}

// InvestmentSummary aggregates the portfolio normalized to the
// reference currency.
type InvestmentSummary struct {
	Total  decimal.Decimal                           `json:"total"`
	ByType map[domain.InvestmentType]decimal.Decimal `json:"byType"`
	Count  int                                       `json:"count"`
}

// Summary totals all investments' current amounts in the reference
// currency, with a per-type breakdown.
func (uc *InvestmentUseCase) Summary(ctx context.Context, userID string) (InvestmentSummary, error) {
	investments, err := uc.investmentRepo.List(ctx, userID)
	if err != nil {
		return InvestmentSummary{}, err
	}

	summary := InvestmentSummary{
		Total:  decimal.Zero,
		ByType: make(map[domain.InvestmentType]decimal.Decimal),
		Count:  len(investments),
	}

	for _, inv := range investments {
		amount, err := uc.rates.ToReference(inv.CurrentAmount, inv.Currency)
		if err != nil {
			return InvestmentSummary{}, err
		}

		summary.Total = summary.Total.Add(amount)

		current, ok := summary.ByType[inv.Type]
		if !ok {
			current = decimal.Zero
		}
		summary.ByType[inv.Type] = current.Add(amount)
	}

	return summary, nil
}

// AddEntryInput represents input for the investment-entry ledger.
type AddEntryInput struct {
	Date        time.Time
	UserID      string
	Currency    domain.Currency
	Description string
	Amount      decimal.Decimal
}

// AddEntry records an inflow into the investment-entry ledger.
func (uc *InvestmentUseCase) AddEntry(ctx context.Context, input AddEntryInput) (*domain.Record, error) {
	now := uc.clock.Now()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	record := &domain.Record{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindInvestmentEntry,
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

// CreateFromSalaryTransfer creates an investment funded out of the
// user's salary scope. The transfer guard re-reads the available
// balance under the salary scope lock; the debit, the entry-ledger
// credit and the investment itself commit together.
func (uc *InvestmentUseCase) CreateFromSalaryTransfer(ctx context.Context, input CreateInvestmentInput) (*domain.Investment, error) {
	now := uc.clock.Now()

	investment := &domain.Investment{
		ID:            uc.idGen.Generate(),
		UserID:        input.UserID,
		Name:          input.Name,
		Type:          input.Type,
		Currency:      input.Currency,
		CurrentAmount: input.InitialAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := investment.Validate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.InitialAmount); err != nil {
		return nil, err
	}

	transferID := uc.idGen.Generate()

	debit := &domain.Record{
		ID:         uc.idGen.Generate(),
		Kind:       domain.KindSalaryTransfer,
		UserID:     input.UserID,
		Amount:     input.InitialAmount,
		Currency:   input.Currency,
		Date:       now,
		Category:   "investment:" + investment.ID,
		TransferID: transferID,
		CreatedAt:  now,
	}

	credit := &domain.Record{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindInvestmentEntry,
		UserID:      input.UserID,
		Amount:      input.InitialAmount,
		Currency:    input.Currency,
		Date:        now,
		Description: input.Name,
		TransferID:  transferID,
		CreatedAt:   now,
	}

	requested, err := uc.rates.ToReference(input.InitialAmount, input.Currency)
	if err != nil {
		return nil, err
	}

	err = uc.retry(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.recordRepo.LockScope(ctx, tx, salaryScope(input.UserID)); err != nil {
			return err
		}

		balance, err := salaryBalanceTx(ctx, tx, uc.recordRepo, uc.rates, input.UserID)
		if err != nil {
			return err
		}

		if err := domain.AuthorizeTransfer(balance, requested); err != nil {
			return err
		}

		if err := uc.recordRepo.CreateTx(ctx, tx, debit); err != nil {
			return err
		}

		if err := uc.recordRepo.CreateTx(ctx, tx, credit); err != nil {
			return err
		}

		if err := uc.investmentRepo.CreateTx(ctx, tx, investment); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
	}

	return investment, nil
}

// AnnualEntriesTotal sums the investment-entry ledger for one year,
// normalized to the reference currency.
func (uc *InvestmentUseCase) AnnualEntriesTotal(ctx context.Context, year int, userID string) (decimal.Decimal, error) {
	window := domain.YearOf(year)

	records, err := uc.recordRepo.List(ctx, RecordFilter{
		UserID: userID,
		Kinds:  []domain.RecordKind{domain.KindInvestmentEntry},
		From:   window.Start,
		To:     window.End,
	})
	if err != nil {
		return decimal.Zero, err
	}

	summary, err := domain.Aggregate(records, uc.rates)
	if err != nil {
		return decimal.Zero, err
	}

	return summary.InflowTotal, nil
}

// UpsertReturn records or replaces the portfolio return for a year.
func (uc *InvestmentUseCase) UpsertReturn(ctx context.Context, year int, percent decimal.Decimal) (*domain.InvestmentReturn, error) {
	if year < 1900 || year > 3000 {
		return nil, domain.ErrInvalidDateRange
	}

	ret := &domain.InvestmentReturn{Year: year, Percent: percent}

	if err := uc.investmentRepo.UpsertReturn(ctx, ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// ListReturns lists all recorded annual returns.
func (uc *InvestmentUseCase) ListReturns(ctx context.Context) ([]*domain.InvestmentReturn, error) {
	return uc.investmentRepo.ListReturns(ctx)
}

// DeleteReturn removes the recorded return for a year.
func (uc *InvestmentUseCase) DeleteReturn(ctx context.Context, year int) error {
	return uc.investmentRepo.DeleteReturn(ctx, year)
}

func (uc *InvestmentUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

// fromReference converts a reference-currency amount into another
// supported currency using the inverse rate.
func fromReference(amount decimal.Decimal, currency domain.Currency, rates domain.RateTable) (decimal.Decimal, error) {
	if currency == domain.ReferenceCurrency {
		return amount, nil
	}

	rate, ok := rates[currency]
	if !ok || rate.IsZero() {
		return decimal.Zero, domain.ErrUnknownCurrency
	}

	return amount.DivRound(rate, 8), nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/infrastructure/metrics"
)

// FundUseCase handles the per-purpose savings funds: their ledgers,
// summaries, and the guarded salary-to-fund transfer.
type FundUseCase struct {
	txManager  TransactionManager
	recordRepo RecordRepository
	idGen      IDGenerator
	clock      domain.Clock
	rates      domain.RateTable
	cache      Cache
	retrier    Retrier
	metrics    *metrics.Metrics
}

// NewFundUseCase creates a new FundUseCase. cache, retrier and metrics
// are optional.
func NewFundUseCase(
	txManager TransactionManager,
	recordRepo RecordRepository,
	idGen IDGenerator,
	clock domain.Clock,
	rates domain.RateTable,
	cache Cache,
	retrier Retrier,
	m *metrics.Metrics,
) *FundUseCase {
	return &FundUseCase{
		txManager:  txManager,
		recordRepo: recordRepo,
		idGen:      idGen,
		clock:      clock,
		rates:      rates,
		cache:      cache,
		retrier:    retrier,
		metrics:    m,
	}
}

// FundSummary is the aggregate a fund page displays.
type FundSummary struct {
	TotalEntries  decimal.Decimal `json:"totalEntries"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
	EntriesCount  int             `json:"entriesCount"`
	ExpensesCount int             `json:"expensesCount"`
}

// FundHistory is the full ledger of a fund, split by direction.
type FundHistory struct {
	Entries  []*domain.Record `json:"entries"`
	Expenses []*domain.Record `json:"expenses"`
}

var fundScopeKinds = []domain.RecordKind{domain.KindFundEntry, domain.KindFundExpense}

// Summary aggregates a fund's lifetime ledger, optionally scoped to one
// user. Served from cache when possible; every mutation of the scope
// deletes the cached value first, so deletes are immediately visible.
func (uc *FundUseCase) Summary(ctx context.Context, fundType domain.FundType, userID string) (FundSummary, error) {
	if !fundType.IsValid() {
		return FundSummary{}, domain.ErrInvalidFundType
	}

	cacheKey := fundScope(string(fundType), userID)

	if uc.metrics != nil {
		uc.metrics.SummaryRequests.WithLabelValues(string(fundType)).Inc()
	}

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var cached FundSummary
			if json.Unmarshal(raw, &cached) == nil {
				uc.countCache(true)
				return cached, nil
			}
		}
		uc.countCache(false)
	}

	records, err := uc.recordRepo.List(ctx, RecordFilter{
		UserID:   userID,
		FundType: fundType,
		Kinds:    fundScopeKinds,
	})
	if err != nil {
		return FundSummary{}, err
	}

	agg, err := domain.Aggregate(records, uc.rates)
	if err != nil {
		return FundSummary{}, err
	}

	summary := FundSummary{
		TotalEntries:  agg.InflowTotal,
		TotalExpenses: agg.OutflowTotal,
		Balance:       agg.Balance,
		EntriesCount:  agg.InflowCount,
		ExpensesCount: agg.OutflowCount,
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, raw, SummaryCacheTTL)
		}
	}

	return summary, nil
}

// History lists a fund's entries and expenses, optionally scoped to one
// user.
func (uc *FundUseCase) History(ctx context.Context, fundType domain.FundType, userID string) (FundHistory, error) {
	if !fundType.IsValid() {
		return FundHistory{}, domain.ErrInvalidFundType
	}

	records, err := uc.recordRepo.List(ctx, RecordFilter{
		UserID:   userID,
		FundType: fundType,
		Kinds:    fundScopeKinds,
	})
	if err != nil {
		return FundHistory{}, err
	}

	history := FundHistory{
		Entries:  make([]*domain.Record, 0, len(records)),
		Expenses: make([]*domain.Record, 0, len(records)),
	}

	for _, r := range records {
		if r.Kind == domain.KindFundEntry {
			history.Entries = append(history.Entries, r)
		} else {
			history.Expenses = append(history.Expenses, r)
		}
	}

	return history, nil
}

// AddFundRecordInput represents input for a fund entry or expense.
type AddFundRecordInput struct {
	Date        time.Time
	UserID      string
	FundType    domain.FundType
	Currency    domain.Currency
	Category    string
	Description string
	Amount      decimal.Decimal
}

// AddEntry records a plain inflow into a fund (money that did not come
// out of the salary scope).
func (uc *FundUseCase) AddEntry(ctx context.Context, input AddFundRecordInput) (*domain.Record, error) {
	record := uc.newFundRecord(domain.KindFundEntry, input)

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := uc.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, input.FundType, input.UserID)
	uc.countRecord()

	return record, nil
}

// AddExpense records an outflow from a fund. The fund's own balance
// guards the write: a fund can be drained to zero but never below.
// Writers of the same fund scope are serialized.
func (uc *FundUseCase) AddExpense(ctx context.Context, input AddFundRecordInput) (*domain.Record, error) {
	record := uc.newFundRecord(domain.KindFundExpense, input)

	if err := record.Validate(); err != nil {
		return nil, err
	}

	requested, err := uc.rates.ToReference(record.Amount, record.Currency)
	if err != nil {
		return nil, err
	}

	err = uc.retry(ctx, func() error {
		return uc.guardedWrite(ctx, fundScope(string(input.FundType), input.UserID),
			func(tx Transaction) (decimal.Decimal, error) {
				return uc.fundBalanceTx(ctx, tx, input.FundType, input.UserID)
			},
			requested,
			record,
		)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, input.FundType, input.UserID)
	uc.countRecord()

	return record, nil
}

// AddEntryFromSalary moves money from the user's salary scope into a
// fund: the transfer guard re-reads the available salary balance under
// the scope lock, then the debit and credit records are written in one
// transaction sharing a transfer ID.
func (uc *FundUseCase) AddEntryFromSalary(ctx context.Context, input AddFundRecordInput) (*domain.Record, error) {
	credit := uc.newFundRecord(domain.KindFundEntry, input)

	if err := credit.Validate(); err != nil {
		return nil, err
	}

	transferID := uc.idGen.Generate()
	credit.TransferID = transferID

	debit := &domain.Record{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindSalaryTransfer,
		UserID:      input.UserID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Date:        credit.Date,
		Category:    "fund:" + string(input.FundType),
		Description: input.Description,
		TransferID:  transferID,
		CreatedAt:   credit.CreatedAt,
	}

	requested, err := uc.rates.ToReference(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	start := uc.clock.Now()

	err = uc.retry(ctx, func() error {
		return uc.guardedWrite(ctx, salaryScope(input.UserID),
			func(tx Transaction) (decimal.Decimal, error) {
				return salaryBalanceTx(ctx, tx, uc.recordRepo, uc.rates, input.UserID)
			},
			requested,
			debit, credit,
		)
	})

	if uc.metrics != nil {
		uc.metrics.TransferDuration.Observe(uc.clock.Now().Sub(start).Seconds())
	}

	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.ErrInsufficientBalance) {
			uc.metrics.TransferDenials.Inc()
		}

		return nil, err
	}

	uc.invalidate(ctx, input.FundType, input.UserID)

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
	}

	return credit, nil
}

// DeleteEntry removes a fund entry by ID.
func (uc *FundUseCase) DeleteEntry(ctx context.Context, id string) error {
	return uc.deleteFundRecord(ctx, id, domain.KindFundEntry)
}

// DeleteExpense removes a fund expense by ID.
func (uc *FundUseCase) DeleteExpense(ctx context.Context, id string) error {
	return uc.deleteFundRecord(ctx, id, domain.KindFundExpense)
}

func (uc *FundUseCase) deleteFundRecord(ctx context.Context, id string, kind domain.RecordKind) error {
	record, err := uc.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if record.Kind != kind {
		return domain.ErrRecordNotFound
	}

	if err := uc.recordRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, record.FundType, record.UserID)

	if uc.metrics != nil {
		uc.metrics.RecordsDeleted.Inc()
	}

	return nil
}

// guardedWrite runs the check-then-act sequence under the scope lock:
// lock, re-derive the scope balance, apply the transfer guard, write
// all records, commit. A failure anywhere rolls the whole pair back.
func (uc *FundUseCase) guardedWrite(
	ctx context.Context,
	scope string,
	balanceTx func(Transaction) (decimal.Decimal, error),
	requested decimal.Decimal,
	records ...*domain.Record,
) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.recordRepo.LockScope(ctx, tx, scope); err != nil {
		return err
	}

	balance, err := balanceTx(tx)
	if err != nil {
		return err
	}

	if err := domain.AuthorizeTransfer(balance, requested); err != nil {
		return err
	}

	for _, r := range records {
		if err := uc.recordRepo.CreateTx(ctx, tx, r); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (uc *FundUseCase) fundBalanceTx(ctx context.Context, tx Transaction, fundType domain.FundType, userID string) (decimal.Decimal, error) {
	records, err := uc.recordRepo.ListTx(ctx, tx, RecordFilter{
		UserID:   userID,
		FundType: fundType,
		Kinds:    fundScopeKinds,
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

func (uc *FundUseCase) newFundRecord(kind domain.RecordKind, input AddFundRecordInput) *domain.Record {
	now := uc.clock.Now()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	return &domain.Record{
		ID:          uc.idGen.Generate(),
		Kind:        kind,
		UserID:      input.UserID,
		FundType:    input.FundType,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Date:        date,
		Category:    input.Category,
		Description: input.Description,
		CreatedAt:   now,
	}
}

// invalidate drops the cached summaries that could include the scope:
// the user's own view and the all-users view.
func (uc *FundUseCase) invalidate(ctx context.Context, fundType domain.FundType, userID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, fundScope(string(fundType), userID))
	_ = uc.cache.Delete(ctx, fundScope(string(fundType), ""))
}

func (uc *FundUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

func (uc *FundUseCase) countRecord() {
	if uc.metrics != nil {
		uc.metrics.RecordsCreated.Inc()
	}
}

func (uc *FundUseCase) countCache(hit bool) {
	if uc.metrics == nil {
		return
	}

	if hit {
		uc.metrics.SummaryCacheHits.Inc()
	} else {
		uc.metrics.SummaryCacheMiss.Inc()
	}
}

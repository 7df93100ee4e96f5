package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iho/financo/internal/domain"
)

// ReportUseCase builds the cross-scope dashboards and annual reports.
type ReportUseCase struct {
	recordRepo RecordRepository
	clock      domain.Clock
	rates      domain.RateTable
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(recordRepo RecordRepository, clock domain.Clock, rates domain.RateTable) *ReportUseCase {
	return &ReportUseCase{
		recordRepo: recordRepo,
		clock:      clock,
		rates:      rates,
	}
}

// Period is the resolved time window of a report.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Dashboard is the current-month view across all scopes.
type Dashboard struct {
	Period              Period          `json:"period"`
	SalariesTotal       decimal.Decimal `json:"salariesTotal"`
	ExpensesTotal       decimal.Decimal `json:"expensesTotal"`
	EntriesTotal        decimal.Decimal `json:"entriesTotal"`
	BalanceOnlyExpenses decimal.Decimal `json:"balanceOnlyExpenses"`
	BalanceWithEntries  decimal.Decimal `json:"balanceWithEntries"`
	ByUser              []UserSummary   `json:"byUser"`
}

// UserSummary is one user's slice of a report.
type UserSummary struct {
	UserID              string          `json:"userId"`
	SalariesTotal       decimal.Decimal `json:"salariesTotal"`
	ExpensesTotal       decimal.Decimal `json:"expensesTotal"`
	EntriesTotal        decimal.Decimal `json:"entriesTotal"`
	BalanceOnlyExpenses decimal.Decimal `json:"balanceOnlyExpenses"`
	BalanceWithEntries  decimal.Decimal `json:"balanceWithEntries"`
}

// AnnualReport is the whole-year counterpart of the dashboard.
type AnnualReport struct {
	Period        Period          `json:"period"`
	Year          int             `json:"year"`
	SalariesTotal decimal.Decimal `json:"salariesTotal"`
	ExpensesTotal decimal.Decimal `json:"expensesTotal"`
	EntriesTotal  decimal.Decimal `json:"entriesTotal"`
	Balance       decimal.Decimal `json:"balance"`
	ByMonth       []MonthTotal    `json:"byMonth"`
}

// MonthTotal is one month's aggregate for trend charts.
type MonthTotal struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Balance  decimal.Decimal `json:"balance"`
}

// Dashboard aggregates the current month for all users. The three
// record classes are fetched concurrently.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*Dashboard, error) {
	window := domain.CurrentMonth(uc.clock)

	return uc.buildReportWindow(ctx, window)
}

// MonthlyReport aggregates one calendar month for all users.
func (uc *ReportUseCase) MonthlyReport(ctx context.Context, year int, month time.Month) (*Dashboard, error) {
	return uc.buildReportWindow(ctx, domain.MonthOf(year, month))
}

func (uc *ReportUseCase) buildReportWindow(ctx context.Context, window domain.Window) (*Dashboard, error) {
	var salaries, expenses, entries []*domain.Record

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		salaries, err = uc.listWindow(gctx, window, domain.KindSalary)
		return err
	})

	g.Go(func() error {
		var err error
		expenses, err = uc.listWindow(gctx, window, domain.KindExpense)
		return err
	})

	g.Go(func() error {
		var err error
		entries, err = uc.listWindow(gctx, window, domain.KindSalaryTransfer)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	salaryTotal, err := uc.total(salaries)
	if err != nil {
		return nil, err
	}

	expenseTotal, err := uc.total(expenses)
	if err != nil {
		return nil, err
	}

	entryTotal, err := uc.total(entries)
	if err != nil {
		return nil, err
	}

	byUser, err := uc.perUser(salaries, expenses, entries)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Period:              Period{From: window.Start, To: window.End},
		SalariesTotal:       salaryTotal,
		ExpensesTotal:       expenseTotal,
		EntriesTotal:        entryTotal,
		BalanceOnlyExpenses: salaryTotal.Sub(expenseTotal),
		BalanceWithEntries:  salaryTotal.Sub(expenseTotal).Sub(entryTotal),
		ByUser:              byUser,
	}, nil
}

// Annual aggregates one calendar year with a per-month breakdown.
func (uc *ReportUseCase) Annual(ctx context.Context, year int) (*AnnualReport, error) {
	window := domain.YearOf(year)

	var salaries, expenses, entries []*domain.Record

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		salaries, err = uc.listWindow(gctx, window, domain.KindSalary)
		return err
	})

	g.Go(func() error {
		var err error
		expenses, err = uc.listWindow(gctx, window, domain.KindExpense)
		return err
	})

	g.Go(func() error {
		var err error
		entries, err = uc.listWindow(gctx, window, domain.KindSalaryTransfer)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	salaryTotal, err := uc.total(salaries)
	if err != nil {
		return nil, err
	}

	expenseTotal, err := uc.total(expenses)
	if err != nil {
		return nil, err
	}

	entryTotal, err := uc.total(entries)
	if err != nil {
		return nil, err
	}

	all := make([]*domain.Record, 0, len(salaries)+len(expenses)+len(entries))
	all = append(all, salaries...)
	all = append(all, expenses...)
	all = append(all, entries...)

	byMonth, err := domain.AggregateByMonth(all, uc.rates)
	if err != nil {
		return nil, err
	}

	months := make([]MonthTotal, 0, len(byMonth))
	for key, s := range byMonth {
		months = append(months, MonthTotal{
			Year:     key.Year,
			Month:    int(key.Month),
			Inflows:  s.InflowTotal,
			Outflows: s.OutflowTotal,
			Balance:  s.Balance,
		})
	}

	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})

	return &AnnualReport{
		Period:        Period{From: window.Start, To: window.End},
		Year:          year,
		SalariesTotal: salaryTotal,
		ExpensesTotal: expenseTotal,
		EntriesTotal:  entryTotal,
		Balance:       salaryTotal.Sub(expenseTotal).Sub(entryTotal),
		ByMonth:       months,
	}, nil
}

// YearlyByUser aggregates one year broken down per user.
func (uc *ReportUseCase) YearlyByUser(ctx context.Context, year int) ([]UserSummary, error) {
	window := domain.YearOf(year)

	var salaries, expenses, entries []*domain.Record

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		salaries, err = uc.listWindow(gctx, window, domain.KindSalary)
		return err
	})

	g.Go(func() error {
		var err error
		expenses, err = uc.listWindow(gctx, window, domain.KindExpense)
		return err
	})

	g.Go(func() error {
		var err error
		entries, err = uc.listWindow(gctx, window, domain.KindSalaryTransfer)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return uc.perUser(salaries, expenses, entries)
}

func (uc *ReportUseCase) listWindow(ctx context.Context, window domain.Window, kind domain.RecordKind) ([]*domain.Record, error) {
	return uc.recordRepo.List(ctx, RecordFilter{
		Kinds: []domain.RecordKind{kind},
		From:  window.Start,
		To:    window.End,
	})
}

func (uc *ReportUseCase) total(records []*domain.Record) (decimal.Decimal, error) {
	var total = decimal.Zero

	for _, r := range records {
		amount, err := uc.rates.ToReference(r.Amount, r.Currency)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(amount)
	}

	return total, nil
}

func (uc *ReportUseCase) perUser(salaries, expenses, entries []*domain.Record) ([]UserSummary, error) {
	salaryByUser, err := domain.AggregateByUser(salaries, uc.rates)
	if err != nil {
		return nil, err
	}

	expenseByUser, err := domain.AggregateByUser(expenses, uc.rates)
	if err != nil {
		return nil, err
	}

	entryByUser, err := domain.AggregateByUser(entries, uc.rates)
	if err != nil {
		return nil, err
	}

	userIDs := make(map[string]struct{})
	for id := range salaryByUser {
		userIDs[id] = struct{}{}
	}
	for id := range expenseByUser {
		userIDs[id] = struct{}{}
	}
	for id := range entryByUser {
		userIDs[id] = struct{}{}
	}

	summaries := make([]UserSummary, 0, len(userIDs))
	for id := range userIDs {
		salary := salaryByUser[id].InflowTotal
		expense := expenseByUser[id].OutflowTotal
		entry := entryByUser[id].OutflowTotal

		summaries = append(summaries, UserSummary{
			UserID:              id,
			SalariesTotal:       salary,
			ExpensesTotal:       expense,
			EntriesTotal:        entry,
			BalanceOnlyExpenses: salary.Sub(expense),
			BalanceWithEntries:  salary.Sub(expense).Sub(entry),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UserID < summaries[j].UserID
	})

	return summaries, nil
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
	"github.com/iho/financo/internal/usecase/mocks"
)

func newReportUseCase(recordRepo *mocks.MockRecordRepository) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(
		recordRepo,
		&mocks.MockClock{Instant: testDate},
		domain.DefaultRates(),
	)
}

func reportRecord(id, userID string, kind domain.RecordKind, amount string, date time.Time) *domain.Record {
	return &domain.Record{
		ID:       id,
		Kind:     kind,
		UserID:   userID,
		Amount:   decimal.RequireFromString(amount),
		Currency: domain.CurrencyEUR,
		Date:     date,
	}
}

func TestReportUseCase_Dashboard(t *testing.T) {
	march := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	february := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)

	recordRepo := mocks.NewMockRecordRepository()
	recordRepo.Seed(
		reportRecord("r1", "alice", domain.KindSalary, "3000", march),
		reportRecord("r2", "bob", domain.KindSalary, "2000", march),
		reportRecord("r3", "alice", domain.KindExpense, "800", march),
		reportRecord("r4", "alice", domain.KindSalaryTransfer, "500", march),
		// Previous month, must not count.
		reportRecord("r5", "alice", domain.KindSalary, "3000", february),
	)

	uc := newReportUseCase(recordRepo)

	dashboard, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !dashboard.SalariesTotal.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("expected salaries 5000, got %s", dashboard.SalariesTotal)
	}
	if !dashboard.ExpensesTotal.Equal(decimal.RequireFromString("800")) {
		t.Errorf("expected expenses 800, got %s", dashboard.ExpensesTotal)
	}
	if !dashboard.EntriesTotal.Equal(decimal.RequireFromString("500")) {
		t.Errorf("expected entries 500, got %s", dashboard.EntriesTotal)
	}
	if !dashboard.BalanceOnlyExpenses.Equal(decimal.RequireFromString("4200")) {
		t.Errorf("expected balance w/o entries 4200, got %s", dashboard.BalanceOnlyExpenses)
	}
	if !dashboard.BalanceWithEntries.Equal(decimal.RequireFromString("3700")) {
		t.Errorf("expected balance with entries 3700, got %s", dashboard.BalanceWithEntries)
	}

	if len(dashboard.ByUser) != 2 {
		t.Fatalf("expected two users, got %d", len(dashboard.ByUser))
	}
	// Sorted by user ID.
	if dashboard.ByUser[0].UserID != "alice" || dashboard.ByUser[1].UserID != "bob" {
		t.Errorf("expected alice then bob, got %s then %s", dashboard.ByUser[0].UserID, dashboard.ByUser[1].UserID)
	}
	if !dashboard.ByUser[0].BalanceWithEntries.Equal(decimal.RequireFromString("1700")) {
		t.Errorf("expected alice balance 1700, got %s", dashboard.ByUser[0].BalanceWithEntries)
	}
	if !dashboard.ByUser[1].BalanceWithEntries.Equal(decimal.RequireFromString("2000")) {
		t.Errorf("expected bob balance 2000, got %s", dashboard.ByUser[1].BalanceWithEntries)
	}
}

func TestReportUseCase_Dashboard_Empty(t *testing.T) {
	uc := newReportUseCase(mocks.NewMockRecordRepository())

	dashboard, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !dashboard.SalariesTotal.IsZero() || !dashboard.BalanceWithEntries.IsZero() {
		t.Error("empty month must report zeros")
	}
	if len(dashboard.ByUser) != 0 {
		t.Errorf("expected no users, got %d", len(dashboard.ByUser))
	}
}

func TestReportUseCase_Annual(t *testing.T) {
	recordRepo := mocks.NewMockRecordRepository()
	recordRepo.Seed(
		reportRecord("r1", "alice", domain.KindSalary, "3000", time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)),
		reportRecord("r2", "alice", domain.KindSalary, "3000", time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)),
		reportRecord("r3", "alice", domain.KindExpense, "1000", time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)),
		// Neighboring year, must not count.
		reportRecord("r4", "alice", domain.KindSalary, "9999", time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)),
	)

	uc := newReportUseCase(recordRepo)

	report, err := uc.Annual(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.SalariesTotal.Equal(decimal.RequireFromString("6000")) {
		t.Errorf("expected salaries 6000, got %s", report.SalariesTotal)
	}
	if !report.Balance.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("expected balance 5000, got %s", report.Balance)
	}

	if len(report.ByMonth) != 2 {
		t.Fatalf("expected two active months, got %d", len(report.ByMonth))
	}
	// Chronological order.
	if report.ByMonth[0].Month != 1 || report.ByMonth[1].Month != 6 {
		t.Errorf("expected January then June, got %d then %d", report.ByMonth[0].Month, report.ByMonth[1].Month)
	}
	if !report.ByMonth[1].Balance.Equal(decimal.RequireFromString("2000")) {
		t.Errorf("expected June balance 2000, got %s", report.ByMonth[1].Balance)
	}
}

func TestReportUseCase_YearlyByUser(t *testing.T) {
	recordRepo := mocks.NewMockRecordRepository()
	recordRepo.Seed(
		reportRecord("r1", "alice", domain.KindSalary, "3000", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
		reportRecord("r2", "bob", domain.KindExpense, "100", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
	)

	uc := newReportUseCase(recordRepo)

	summaries, err := uc.YearlyByUser(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected two users, got %d", len(summaries))
	}
	// A user with only expenses still appears, with a negative balance.
	if !summaries[1].BalanceOnlyExpenses.Equal(decimal.RequireFromString("-100")) {
		t.Errorf("expected bob balance -100, got %s", summaries[1].BalanceOnlyExpenses)
	}
}

func TestReportUseCase_Dashboard_PropagatesStoreErrors(t *testing.T) {
	recordRepo := mocks.NewMockRecordRepository()
	recordRepo.ListFunc = func(ctx context.Context, filter usecase.RecordFilter) ([]*domain.Record, error) {
		return nil, context.DeadlineExceeded
	}

	uc := newReportUseCase(recordRepo)

	if _, err := uc.Dashboard(context.Background()); err == nil {
		t.Error("expected store error to propagate")
	}
}

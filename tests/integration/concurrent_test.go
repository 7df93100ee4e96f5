package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
	"github.com/iho/financo/tests/testutil"
)

// Concurrent transfers race for the same salary balance. The advisory
// lock on the salary scope must serialize them so the balance never
// goes negative, no matter how the goroutines interleave.
func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	fundUC, salaryUC := newFundUseCase(testDB)

	_, err := salaryUC.AddSalary(ctx, usecase.AddSalaryInput{
		UserID:   "user-1",
		Amount:   decimal.NewFromInt(100),
		Currency: domain.CurrencyEUR,
	})
	if err != nil {
		t.Fatalf("failed to record salary: %v", err)
	}

	const (
		workers      = 10
		transferSize = 30
	)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
		denied    atomic.Int64
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := fundUC.AddEntryFromSalary(ctx, usecase.AddFundRecordInput{
				UserID:   "user-1",
				FundType: domain.FundEmergency,
				Amount:   decimal.NewFromInt(transferSize),
				Currency: domain.CurrencyEUR,
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientBalance):
				denied.Add(1)
			default:
				t.Errorf("unexpected transfer error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 100 EUR funds at most three 30 EUR transfers.
	if got := succeeded.Load(); got != 3 {
		t.Fatalf("expected exactly 3 transfers to succeed, got %d", got)
	}
	if got := denied.Load(); got != workers-3 {
		t.Fatalf("expected %d transfers denied, got %d", workers-3, got)
	}

	balance, err := salaryUC.AvailableBalance(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to compute balance: %v", err)
	}
	if balance.IsNegative() {
		t.Fatalf("balance went negative: %s", balance)
	}
	if !balance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected residual balance 10, got %s", balance)
	}

	summary, err := fundUC.Summary(ctx, domain.FundEmergency, "user-1")
	if err != nil {
		t.Fatalf("failed to aggregate fund: %v", err)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected fund balance 90, got %s", summary.Balance)
	}
}

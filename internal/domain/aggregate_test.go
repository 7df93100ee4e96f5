package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAggregate_BalanceIdentity(t *testing.T) {
	t.Parallel()

	rates := DefaultRates()

	tests := []struct {
		name    string
		records []*Record
	}{
		{name: "empty set", records: nil},
		{
			name: "inflows only",
			records: []*Record{
				{Kind: KindSalary, Amount: decimal.RequireFromString("1000.50"), Currency: CurrencyEUR},
				{Kind: KindFundEntry, Amount: decimal.RequireFromString("0.01"), Currency: CurrencyEUR},
			},
		},
		{
			name: "mixed flows and currencies",
			records: []*Record{
				{Kind: KindSalary, Amount: decimal.NewFromInt(2000), Currency: CurrencyEUR},
				{Kind: KindExpense, Amount: decimal.RequireFromString("750.33"), Currency: CurrencyEUR},
				{Kind: KindInvestmentEntry, Amount: decimal.NewFromInt(100), Currency: CurrencyUSD},
				{Kind: KindFundExpense, Amount: decimal.NewFromInt(40), Currency: CurrencyBRL},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Aggregate(tt.records, rates)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !s.Balance.Equal(s.InflowTotal.Sub(s.OutflowTotal)) {
				t.Fatalf("balance identity violated: %s != %s - %s",
					s.Balance, s.InflowTotal, s.OutflowTotal)
			}

			if s.Count() != len(tt.records) {
				t.Fatalf("expected count %d, got %d", len(tt.records), s.Count())
			}
		})
	}
}

func TestAggregate_EmptySetIsZero(t *testing.T) {
	t.Parallel()

	s, err := Aggregate(nil, DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.Balance.IsZero() || !s.InflowTotal.IsZero() || !s.OutflowTotal.IsZero() {
		t.Fatalf("expected all-zero summary, got %+v", s)
	}
}

func TestAggregate_FundScenario(t *testing.T) {
	t.Parallel()

	// Emergency fund: one 500 EUR entry, one 120 EUR expense.
	records := []*Record{
		{Kind: KindFundEntry, FundType: FundEmergency, Amount: decimal.NewFromInt(500), Currency: CurrencyEUR, Date: date(2025, time.January, 10)},
		{Kind: KindFundExpense, FundType: FundEmergency, Amount: decimal.NewFromInt(120), Currency: CurrencyEUR, Date: date(2025, time.February, 3)},
	}

	s, err := Aggregate(records, DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.InflowTotal.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected totalEntries 500, got %s", s.InflowTotal)
	}

	if !s.OutflowTotal.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected totalExpenses 120, got %s", s.OutflowTotal)
	}

	if !s.Balance.Equal(decimal.NewFromInt(380)) {
		t.Errorf("expected balance 380, got %s", s.Balance)
	}

	if s.InflowCount != 1 || s.OutflowCount != 1 {
		t.Errorf("expected counts 1/1, got %d/%d", s.InflowCount, s.OutflowCount)
	}
}

func TestAggregate_MixedCurrencyAnnualTotal(t *testing.T) {
	t.Parallel()

	// 100 USD at 0.90 plus 50 EUR = 140 EUR.
	records := []*Record{
		{Kind: KindInvestmentEntry, Amount: decimal.NewFromInt(100), Currency: CurrencyUSD},
		{Kind: KindInvestmentEntry, Amount: decimal.NewFromInt(50), Currency: CurrencyEUR},
	}

	s, err := Aggregate(records, DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.InflowTotal.Equal(decimal.RequireFromString("140.00")) {
		t.Fatalf("expected 140.00 EUR, got %s", s.InflowTotal)
	}
}

func TestAggregate_UnknownCurrencyFailsWholeAggregation(t *testing.T) {
	t.Parallel()

	records := []*Record{
		{Kind: KindSalary, Amount: decimal.NewFromInt(100), Currency: CurrencyEUR},
		{Kind: KindSalary, Amount: decimal.NewFromInt(100), Currency: Currency("CHF")},
	}

	_, err := Aggregate(records, DefaultRates())
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	t.Parallel()

	records := []*Record{
		{Kind: KindSalary, Amount: decimal.RequireFromString("0.1"), Currency: CurrencyEUR},
		{Kind: KindSalary, Amount: decimal.RequireFromString("0.2"), Currency: CurrencyEUR},
		{Kind: KindExpense, Amount: decimal.RequireFromString("0.3"), Currency: CurrencyUSD},
	}

	first, err := Aggregate(records, DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 100; i++ {
		again, err := Aggregate(records, DefaultRates())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if again.Balance.String() != first.Balance.String() {
			t.Fatalf("aggregation not deterministic: %s vs %s", again.Balance, first.Balance)
		}
	}
}

func TestAggregateByUser(t *testing.T) {
	t.Parallel()

	records := []*Record{
		{UserID: "alice", Kind: KindSalary, Amount: decimal.NewFromInt(2000), Currency: CurrencyEUR},
		{UserID: "alice", Kind: KindExpense, Amount: decimal.NewFromInt(750), Currency: CurrencyEUR},
		{UserID: "bob", Kind: KindSalary, Amount: decimal.NewFromInt(1500), Currency: CurrencyEUR},
	}

	byUser, err := AggregateByUser(records, DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(byUser) != 2 {
		t.Fatalf("expected 2 users, got %d", len(byUser))
	}

	if !byUser["alice"].Balance.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("expected alice balance 1250, got %s", byUser["alice"].Balance)
	}

	if !byUser["bob"].Balance.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected bob balance 1500, got %s", byUser["bob"].Balance)
	}
}

func TestAggregateByFund(t *testing.T) {
	t.Parallel()

	records := []*Record{
		{Kind: KindFundEntry, FundType: FundEmergency, Amount: decimal.NewFromInt(500), Currency: CurrencyEUR},
		{Kind: KindFundExpense, FundType: FundEmergency, Amount: decimal.NewFromInt(120), Currency: CurrencyEUR},
		{Kind: KindFundEntry, FundType: FundTravel, Amount: decimal.NewFromInt(300), Currency: CurrencyEUR},
		{Kind: KindSalary, Amount: decimal.NewFromInt(1000), Currency: CurrencyEUR},
	}

	byFund, err := AggregateByFund(records, DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(byFund) != 2 {
		t.Fatalf("expected 2 funds, got %d", len(byFund))
	}

	if !byFund[FundEmergency].Balance.Equal(decimal.NewFromInt(380)) {
		t.Errorf("expected emergency balance 380, got %s", byFund[FundEmergency].Balance)
	}

	if !byFund[FundTravel].Balance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected travel balance 300, got %s", byFund[FundTravel].Balance)
	}
}

func TestAggregateByMonth(t *testing.T) {
	t.Parallel()

	records := []*Record{
		{Kind: KindExpense, Amount: decimal.NewFromInt(10), Currency: CurrencyEUR, Date: date(2025, time.January, 5)},
		{Kind: KindExpense, Amount: decimal.NewFromInt(20), Currency: CurrencyEUR, Date: date(2025, time.January, 25)},
		{Kind: KindExpense, Amount: decimal.NewFromInt(30), Currency: CurrencyEUR, Date: date(2025, time.February, 1)},
	}

	byMonth, err := AggregateByMonth(records, DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jan := byMonth[MonthKey{Year: 2025, Month: time.January}]
	if !jan.OutflowTotal.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected january outflow 30, got %s", jan.OutflowTotal)
	}

	feb := byMonth[MonthKey{Year: 2025, Month: time.February}]
	if !feb.OutflowTotal.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected february outflow 30, got %s", feb.OutflowTotal)
	}
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentMonth(t *testing.T) {
	t.Parallel()

	clock := fixedClock{now: time.Date(2025, time.June, 17, 15, 4, 5, 0, time.UTC)}
	w := CurrentMonth(clock)

	if !w.Contains(date(2025, time.June, 1)) {
		t.Error("first of month must be included")
	}

	if !w.Contains(time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)) {
		t.Error("last instant of month must be included")
	}

	if w.Contains(date(2025, time.July, 1)) {
		t.Error("first of next month must be excluded")
	}

	if w.Contains(time.Date(2025, time.May, 31, 23, 59, 59, 0, time.UTC)) {
		t.Error("previous month must be excluded")
	}
}

func TestYearOf(t *testing.T) {
	t.Parallel()

	w := YearOf(2025)

	if !w.Contains(date(2025, time.January, 1)) {
		t.Error("jan 1 must be included")
	}

	if !w.Contains(date(2025, time.December, 31)) {
		t.Error("dec 31 must be included")
	}

	if w.Contains(date(2026, time.January, 1)) {
		t.Error("jan 1 of next year must be excluded")
	}
}

func TestRangeOf_BoundaryInclusion(t *testing.T) {
	t.Parallel()

	w, err := RangeOf(date(2025, time.March, 10), date(2025, time.March, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !w.Contains(date(2025, time.March, 10)) {
		t.Error("record dated exactly at start must be included")
	}

	if !w.Contains(date(2025, time.March, 20)) {
		t.Error("record dated exactly at end must be included")
	}

	if w.Contains(date(2025, time.March, 9)) {
		t.Error("one day before start must be excluded")
	}

	if w.Contains(date(2025, time.March, 21)) {
		t.Error("one day after end must be excluded")
	}
}

func TestRangeOf_RejectsInvertedRange(t *testing.T) {
	t.Parallel()

	_, err := RangeOf(date(2025, time.March, 20), date(2025, time.March, 10))
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestRangeOf_SingleDay(t *testing.T) {
	t.Parallel()

	w, err := RangeOf(date(2025, time.March, 10), date(2025, time.March, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !w.Contains(time.Date(2025, time.March, 10, 18, 30, 0, 0, time.UTC)) {
		t.Error("any instant of the single day must be included")
	}
}

func TestFilterRecords(t *testing.T) {
	t.Parallel()

	records := []*Record{
		{ID: "r1", UserID: "alice", Kind: KindSalary, Date: date(2025, time.June, 1), Amount: decimal.NewFromInt(100), Currency: CurrencyEUR},
		{ID: "r2", UserID: "bob", Kind: KindSalary, Date: date(2025, time.June, 5), Amount: decimal.NewFromInt(200), Currency: CurrencyEUR},
		{ID: "r3", UserID: "alice", Kind: KindExpense, Date: date(2025, time.July, 1), Amount: decimal.NewFromInt(50), Currency: CurrencyEUR},
	}

	w := MonthOf(2025, time.June)

	t.Run("scoped to one user", func(t *testing.T) {
		got := FilterRecords(records, w, "alice")
		if len(got) != 1 || got[0].ID != "r1" {
			t.Fatalf("expected [r1], got %v", got)
		}
	})

	t.Run("empty user means all users", func(t *testing.T) {
		got := FilterRecords(records, w, "")
		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d", len(got))
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := make([]*Record, len(records))
		copy(before, records)

		FilterRecords(records, w, "alice")

		for i := range records {
			if records[i] != before[i] {
				t.Fatal("input slice was mutated")
			}
		}
	})
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is the result of aggregating a record set, expressed in the
// reference currency. Balance == InflowTotal - OutflowTotal exactly.
type Summary struct {
	InflowTotal  decimal.Decimal
	OutflowTotal decimal.Decimal
	Balance      decimal.Decimal
	InflowCount  int
	OutflowCount int
}

// Count returns the number of records included in the summary.
func (s Summary) Count() int {
	return s.InflowCount + s.OutflowCount
}

// Aggregate sums the records after normalizing each amount into the
// reference currency. Pure: no I/O, deterministic for a given input,
// and an unknown currency fails the whole aggregation rather than
// contributing a silent zero.
func Aggregate(records []*Record, rates RateTable) (Summary, error) {
	s := Summary{
		InflowTotal:  decimal.Zero,
		OutflowTotal: decimal.Zero,
	}

	for _, r := range records {
		amount, err := rates.ToReference(r.Amount, r.Currency)
		if err != nil {
			return Summary{}, err
		}

		if r.Kind.Direction() == Inflow {
			s.InflowTotal = s.InflowTotal.Add(amount)
			s.InflowCount++
		} else {
			s.OutflowTotal = s.OutflowTotal.Add(amount)
			s.OutflowCount++
		}
	}

	s.Balance = s.InflowTotal.Sub(s.OutflowTotal)

	return s, nil
}

// AggregateByUser partitions records by owning user and aggregates each
// partition.
func AggregateByUser(records []*Record, rates RateTable) (map[string]Summary, error) {
	groups := make(map[string][]*Record)
	for _, r := range records {
		groups[r.UserID] = append(groups[r.UserID], r)
	}

	return aggregateGroups(groups, rates)
}

// AggregateByFund partitions records by fund type and aggregates each
// partition. Records without a fund type are skipped.
func AggregateByFund(records []*Record, rates RateTable) (map[FundType]Summary, error) {
	groups := make(map[FundType][]*Record)
	for _, r := range records {
		if r.FundType == "" {
			continue
		}
		groups[r.FundType] = append(groups[r.FundType], r)
	}

	return aggregateGroups(groups, rates)
}

// AggregateByCategory partitions records by category tag and aggregates
// each partition.
func AggregateByCategory(records []*Record, rates RateTable) (map[string]Summary, error) {
	groups := make(map[string][]*Record)
	for _, r := range records {
		groups[r.Category] = append(groups[r.Category], r)
	}

	return aggregateGroups(groups, rates)
}

// MonthKey identifies a calendar month for trend groupings.
type MonthKey struct {
	Year  int
	Month time.Month
}

// AggregateByMonth partitions records by the calendar month of their
// date and aggregates each partition.
func AggregateByMonth(records []*Record, rates RateTable) (map[MonthKey]Summary, error) {
	groups := make(map[MonthKey][]*Record)
	for _, r := range records {
		key := MonthKey{Year: r.Date.Year(), Month: r.Date.Month()}
		groups[key] = append(groups[key], r)
	}

	return aggregateGroups(groups, rates)
}

func aggregateGroups[K comparable](groups map[K][]*Record, rates RateTable) (map[K]Summary, error) {
	out := make(map[K]Summary, len(groups))

	for key, group := range groups {
		s, err := Aggregate(group, rates)
		if err != nil {
			return nil, err
		}

		out[key] = s
	}

	return out, nil
}

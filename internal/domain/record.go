package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind identifies the kind of money movement a record represents.
type RecordKind string

const (
	KindSalary          RecordKind = "salary"
	KindExpense         RecordKind = "expense"
	KindFundEntry       RecordKind = "fund_entry"
	KindFundExpense     RecordKind = "fund_expense"
	KindInvestmentEntry RecordKind = "investment_entry"

	// KindSalaryTransfer is the debit side of a salary-funded transfer.
	// The credit side is a fund_entry or investment_entry sharing the
	// same TransferID.
	KindSalaryTransfer RecordKind = "salary_transfer"
)

// Direction classifies a record as money coming in or going out.
type Direction int

const (
	Inflow Direction = iota
	Outflow
)

// Direction returns the flow direction implied by the record kind.
// Amounts are stored as non-negative magnitudes; the kind carries the sign.
func (k RecordKind) Direction() Direction {
	switch k {
	case KindSalary, KindFundEntry, KindInvestmentEntry:
		return Inflow
	default:
		return Outflow
	}
}

// IsValid checks if the kind is a known record kind.
func (k RecordKind) IsValid() bool {
	switch k {
	case KindSalary, KindExpense, KindFundEntry, KindFundExpense,
		KindInvestmentEntry, KindSalaryTransfer:
		return true
	}

	return false
}

// FundType names a savings bucket with its own entry/expense ledger.
type FundType string

const (
	FundEmergency FundType = "emergencia"
	FundTravel    FundType = "viagem"
	FundCar       FundType = "carro"
	FundAllowance FundType = "mesada"
)

// IsValid checks if the fund type is one of the known buckets.
func (f FundType) IsValid() bool {
	switch f {
	case FundEmergency, FundTravel, FundCar, FundAllowance:
		return true
	}

	return false
}

// Record is a single dated money movement owned by one user.
type Record struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	UserID      string
	Kind        RecordKind
	FundType    FundType
	Currency    Currency
	Category    string
	Description string
	TransferID  string
	Amount      decimal.Decimal
}

// Validate checks the write-boundary invariants of a record.
func (r *Record) Validate() error {
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}

	if r.UserID == "" {
		return ErrMissingUser
	}

	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}

	if !r.Currency.IsValid() {
		return ErrInvalidCurrency
	}

	if (r.Kind == KindFundEntry || r.Kind == KindFundExpense) && !r.FundType.IsValid() {
		return ErrInvalidFundType
	}

	if r.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

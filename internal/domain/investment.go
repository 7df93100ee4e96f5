package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentType tags an investment asset.
type InvestmentType string

const (
	InvestmentETF         InvestmentType = "etf"
	InvestmentStock       InvestmentType = "stock"
	InvestmentCrypto      InvestmentType = "crypto"
	InvestmentFund        InvestmentType = "fund"
	InvestmentFixedIncome InvestmentType = "fixed_income"
	InvestmentOther       InvestmentType = "other"
)

// IsValid checks if the investment type is known.
func (t InvestmentType) IsValid() bool {
	switch t {
	case InvestmentETF, InvestmentStock, InvestmentCrypto,
		InvestmentFund, InvestmentFixedIncome, InvestmentOther:
		return true
	}

	return false
}

// Investment is an asset holding. CurrentAmount is mutated only by
// appending transactions; the transaction list is the append-only
// history of those mutations.
type Investment struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ID            string
	UserID        string
	Name          string
	Type          InvestmentType
	Currency      Currency
	CurrentAmount decimal.Decimal
}

// Validate checks the write-boundary invariants of an investment.
func (i *Investment) Validate() error {
	if i.UserID == "" {
		return ErrMissingUser
	}

	if err := ValidateName(i.Name); err != nil {
		return err
	}

	if !i.Type.IsValid() {
		return ErrInvalidKind
	}

	if !i.Currency.IsValid() {
		return ErrInvalidCurrency
	}

	if i.CurrentAmount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// InvestmentTransaction is one buy/contribution event against an
// investment.
type InvestmentTransaction struct {
	Date         time.Time
	CreatedAt    time.Time
	ID           string
	InvestmentID string
	Description  string
	Amount       decimal.Decimal
	Currency     Currency
}

// InvestmentReturn records the realized return of the portfolio for one
// year, in percent.
type InvestmentReturn struct {
	Year    int
	Percent decimal.Decimal
}

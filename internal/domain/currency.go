package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is a supported currency code.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyBRL Currency = "BRL"
	CurrencyGBP Currency = "GBP"

	// ReferenceCurrency is the currency all aggregates are normalized into.
	ReferenceCurrency = CurrencyEUR
)

// IsValid checks if the currency is in the supported set.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyBRL, CurrencyGBP:
		return true
	}

	return false
}

// RateTable maps a currency to its multiplier into the reference currency.
// The table is static configuration, not a live market feed.
type RateTable map[Currency]decimal.Decimal

// DefaultRates returns the built-in conversion table.
func DefaultRates() RateTable {
	return RateTable{
		CurrencyEUR: decimal.NewFromInt(1),
		CurrencyUSD: decimal.RequireFromString("0.90"),
		CurrencyBRL: decimal.RequireFromString("0.18"),
		CurrencyGBP: decimal.RequireFromString("1.15"),
	}
}

// ToReference converts amount from the given currency into the reference
// currency. An unknown currency is an error, never a silent zero.
func (t RateTable) ToReference(amount decimal.Decimal, currency Currency) (decimal.Decimal, error) {
	if currency == ReferenceCurrency {
		return amount, nil
	}

	rate, ok := t[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}

	return amount.Mul(rate), nil
}

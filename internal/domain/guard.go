package domain

import (
	"github.com/shopspring/decimal"
)

// AuthorizeTransfer decides whether requested can be moved out of a
// scope whose current balance is sourceBalance. Draining the scope to
// exactly zero is allowed. The caller must derive sourceBalance inside
// the same transaction that writes the transfer, never from an earlier
// read.
func AuthorizeTransfer(sourceBalance, requested decimal.Decimal) error {
	if requested.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if requested.GreaterThan(sourceBalance) {
		return ErrInsufficientBalance
	}

	return nil
}

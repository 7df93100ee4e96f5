package domain

import "errors"

var (
	// Record errors
	ErrInvalidKind    = errors.New("unknown record kind")
	ErrMissingUser    = errors.New("record must have an owning user")
	ErrMissingDate    = errors.New("record must have a date")
	ErrRecordNotFound = errors.New("record not found")

	// Money errors
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrUnknownCurrency = errors.New("unknown currency")

	// Transfer errors
	ErrInsufficientBalance = errors.New("insufficient available balance")

	// Period errors
	ErrInvalidDateRange = errors.New("range start must not be after end")

	// Fund errors
	ErrInvalidFundType = errors.New("unknown fund type")

	// Investment errors
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrReturnNotFound     = errors.New("annual return not found")

	// Reminder errors
	ErrReminderNotFound = errors.New("reminder not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
)

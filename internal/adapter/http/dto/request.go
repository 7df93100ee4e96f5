package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

// AddSalaryRequest represents a request to record a salary inflow.
type AddSalaryRequest struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddSalaryRequest) ToUseCaseInput() usecase.AddSalaryInput {
	return usecase.AddSalaryInput{
		UserID:      r.UserID,
		Amount:      r.Amount,
		Currency:    domain.Currency(r.Currency),
		Description: r.Description,
		Date:        timeOrZero(r.Date),
	}
}

// AddExpenseRequest represents a request to record an expense.
type AddExpenseRequest struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddExpenseRequest) ToUseCaseInput() usecase.AddExpenseInput {
	return usecase.AddExpenseInput{
		UserID:      r.UserID,
		Amount:      r.Amount,
		Currency:    domain.Currency(r.Currency),
		Category:    r.Category,
		Description: r.Description,
		Date:        timeOrZero(r.Date),
	}
}

// UpdateExpenseRequest represents a request to edit an expense.
type UpdateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput(id string) usecase.UpdateExpenseInput {
	return usecase.UpdateExpenseInput{
		ID:          id,
		Amount:      r.Amount,
		Currency:    domain.Currency(r.Currency),
		Category:    r.Category,
		Description: r.Description,
		Date:        timeOrZero(r.Date),
	}
}

// FundRecordRequest represents a request to add a fund entry or
// expense. The fund type comes from the URL.
type FundRecordRequest struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *FundRecordRequest) ToUseCaseInput(fundType domain.FundType) usecase.AddFundRecordInput {
	return usecase.AddFundRecordInput{
		UserID:      r.UserID,
		FundType:    fundType,
		Amount:      r.Amount,
		Currency:    domain.Currency(r.Currency),
		Category:    r.Category,
		Description: r.Description,
		Date:        timeOrZero(r.Date),
	}
}

// CreateInvestmentRequest represents a request to register an
// investment asset.
type CreateInvestmentRequest struct {
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Currency      string          `json:"currency"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvestmentRequest) ToUseCaseInput() usecase.CreateInvestmentInput {
	return usecase.CreateInvestmentInput{
		UserID:        r.UserID,
		Name:          r.Name,
		Type:          domain.InvestmentType(r.Type),
		Currency:      domain.Currency(r.Currency),
		InitialAmount: r.InitialAmount,
	}
}

// UpdateInvestmentRequest represents a request to edit an investment.
type UpdateInvestmentRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateInvestmentRequest) ToUseCaseInput(id string) usecase.UpdateInvestmentInput {
	return usecase.UpdateInvestmentInput{
		ID:   id,
		Name: r.Name,
		Type: domain.InvestmentType(r.Type),
	}
}

// AddTransactionRequest represents a contribution to an investment.
type AddTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddTransactionRequest) ToUseCaseInput(investmentID string) usecase.AddTransactionInput {
	return usecase.AddTransactionInput{
		InvestmentID: investmentID,
		Amount:       r.Amount,
		Currency:     domain.Currency(r.Currency),
		Description:  r.Description,
		Date:         timeOrZero(r.Date),
	}
}

// InvestmentEntryRequest represents an inflow into the
// investment-entry ledger.
type InvestmentEntryRequest struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *InvestmentEntryRequest) ToUseCaseInput() usecase.AddEntryInput {
	return usecase.AddEntryInput{
		UserID:      r.UserID,
		Amount:      r.Amount,
		Currency:    domain.Currency(r.Currency),
		Description: r.Description,
		Date:        timeOrZero(r.Date),
	}
}

// UpsertReturnRequest represents a request to record an annual return.
type UpsertReturnRequest struct {
	Year    int             `json:"year"`
	Percent decimal.Decimal `json:"percent"`
}

// CreateReminderRequest represents a request to create a reminder.
type CreateReminderRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReminderRequest) ToUseCaseInput() usecase.CreateReminderInput {
	return usecase.CreateReminderInput{
		UserID: r.UserID,
		Text:   r.Text,
	}
}

// UpdateReminderRequest represents a request to edit a reminder's text.
type UpdateReminderRequest struct {
	Text string `json:"text"`
}

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

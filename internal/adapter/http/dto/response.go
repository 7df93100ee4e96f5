package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
)

// RecordResponse represents a ledger record in API responses.
type RecordResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Kind        string          `json:"kind"`
	FundType    string          `json:"fund_type,omitempty"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	TransferID  string          `json:"transfer_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordFromDomain converts a domain record to a response.
func RecordFromDomain(r *domain.Record) *RecordResponse {
	return &RecordResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Kind:        string(r.Kind),
		FundType:    string(r.FundType),
		Currency:    string(r.Currency),
		Category:    r.Category,
		Description: r.Description,
		TransferID:  r.TransferID,
		Amount:      r.Amount,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
}

// RecordsFromDomain converts domain records to responses.
func RecordsFromDomain(records []*domain.Record) []*RecordResponse {
	result := make([]*RecordResponse, len(records))
	for i, r := range records {
		result[i] = RecordFromDomain(r)
	}
	return result
}

// ListRecordsResponse wraps a page of records.
type ListRecordsResponse struct {
	Records []*RecordResponse `json:"records"`
	Total   int64             `json:"total"`
}

// SummaryResponse represents an aggregate in API responses. Totals are
// in the reference currency.
type SummaryResponse struct {
	InflowTotal  decimal.Decimal `json:"inflow_total"`
	OutflowTotal decimal.Decimal `json:"outflow_total"`
	Balance      decimal.Decimal `json:"balance"`
	InflowCount  int             `json:"inflow_count"`
	OutflowCount int             `json:"outflow_count"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		InflowTotal:  s.InflowTotal,
		OutflowTotal: s.OutflowTotal,
		Balance:      s.Balance,
		InflowCount:  s.InflowCount,
		OutflowCount: s.OutflowCount,
	}
}

// BalanceResponse represents an available balance.
type BalanceResponse struct {
	UserID  string          `json:"user_id,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// InvestmentResponse represents an investment in API responses.
type InvestmentResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Currency      string          `json:"currency"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvestmentFromDomain converts a domain investment to a response.
func InvestmentFromDomain(i *domain.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		ID:            i.ID,
		UserID:        i.UserID,
		Name:          i.Name,
		Type:          string(i.Type),
		Currency:      string(i.Currency),
		CurrentAmount: i.CurrentAmount,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// InvestmentsFromDomain converts domain investments to responses.
func InvestmentsFromDomain(investments []*domain.Investment) []*InvestmentResponse {
	result := make([]*InvestmentResponse, len(investments))
	for i, inv := range investments {
		result[i] = InvestmentFromDomain(inv)
	}
	return result
}

// TransactionResponse represents a contribution event.
type TransactionResponse struct {
	ID           string          `json:"id"`
	InvestmentID string          `json:"investment_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  string          `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.InvestmentTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		InvestmentID: t.InvestmentID,
		Amount:       t.Amount,
		Currency:     string(t.Currency),
		Description:  t.Description,
		Date:         t.Date,
		CreatedAt:    t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.InvestmentTransaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ReturnResponse represents an annual portfolio return.
type ReturnResponse struct {
	Year    int             `json:"year"`
	Percent decimal.Decimal `json:"percent"`
}

// ReturnFromDomain converts a domain return to a response.
func ReturnFromDomain(r *domain.InvestmentReturn) *ReturnResponse {
	return &ReturnResponse{Year: r.Year, Percent: r.Percent}
}

// ReturnsFromDomain converts domain returns to responses.
func ReturnsFromDomain(returns []*domain.InvestmentReturn) []*ReturnResponse {
	result := make([]*ReturnResponse, len(returns))
	for i, r := range returns {
		result[i] = ReturnFromDomain(r)
	}
	return result
}

// ReminderResponse represents a reminder in API responses.
type ReminderResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReminderFromDomain converts a domain reminder to a response.
func ReminderFromDomain(r *domain.Reminder) *ReminderResponse {
	return &ReminderResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RemindersFromDomain converts domain reminders to responses.
func RemindersFromDomain(reminders []*domain.Reminder) []*ReminderResponse {
	result := make([]*ReminderResponse, len(reminders))
	for i, r := range reminders {
		result[i] = ReminderFromDomain(r)
	}
	return result
}

// UserResponse represents a user in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

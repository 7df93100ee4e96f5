package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
)

// RecordFilter narrows a record listing. Zero values mean "no
// restriction". From is inclusive, To exclusive, matching
// domain.Window.
type RecordFilter struct {
	From     time.Time
	To       time.Time
	UserID   string
	FundType domain.FundType
	Category string
	Kinds    []domain.RecordKind
	Limit    int
	Offset   int
}

// RecordRepository defines data access for money-movement records.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.Record) error
	CreateTx(ctx context.Context, tx Transaction, record *domain.Record) error
	GetByID(ctx context.Context, id string) (*domain.Record, error)
	List(ctx context.Context, filter RecordFilter) ([]*domain.Record, error)
	ListTx(ctx context.Context, tx Transaction, filter RecordFilter) ([]*domain.Record, error)
	Update(ctx context.Context, record *domain.Record) error
	Delete(ctx context.Context, id string) error

	// LockScope serializes writers of one balance scope for the duration
	// of the transaction (advisory lock keyed by the scope string).
	LockScope(ctx context.Context, tx Transaction, scope string) error
}

// InvestmentRepository defines data access for investments, their
// append-only transaction history and annual returns.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *domain.Investment) error
	CreateTx(ctx context.Context, tx Transaction, investment *domain.Investment) error
	GetByID(ctx context.Context, id string) (*domain.Investment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Investment, error)
	List(ctx context.Context, userID string) ([]*domain.Investment, error)
	Update(ctx context.Context, investment *domain.Investment) error
	UpdateAmount(ctx context.Context, tx Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error

	CreateTransaction(ctx context.Context, tx Transaction, txn *domain.InvestmentTransaction) error
	ListTransactions(ctx context.Context, investmentID string) ([]*domain.InvestmentTransaction, error)

	UpsertReturn(ctx context.Context, ret *domain.InvestmentReturn) error
	ListReturns(ctx context.Context) ([]*domain.InvestmentReturn, error)
	DeleteReturn(ctx context.Context, year int) error
}

// ReminderRepository defines data access for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error)
	Update(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations for derived summaries. Mutating a
// scope must delete its cached summary so aggregates are never stale.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a claimed key so the request can be retried.
	Delete(ctx context.Context, key string) error
}

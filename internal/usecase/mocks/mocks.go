package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

// MockRecordRepository is a mock implementation of RecordRepository
// backed by an in-memory map. Any Func field overrides the default
// behavior of the matching method.
type MockRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.Record

	CreateFunc    func(ctx context.Context, record *domain.Record) error
	CreateTxFunc  func(ctx context.Context, tx usecase.Transaction, record *domain.Record) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Record, error)
	ListFunc      func(ctx context.Context, filter usecase.RecordFilter) ([]*domain.Record, error)
	ListTxFunc    func(ctx context.Context, tx usecase.Transaction, filter usecase.RecordFilter) ([]*domain.Record, error)
	UpdateFunc    func(ctx context.Context, record *domain.Record) error
	DeleteFunc    func(ctx context.Context, id string) error
	LockScopeFunc func(ctx context.Context, tx usecase.Transaction, scope string) error

	LockedScopes []string
}

func NewMockRecordRepository() *MockRecordRepository {
	return &MockRecordRepository{
		records: make(map[string]*domain.Record),
	}
}

func (m *MockRecordRepository) Create(ctx context.Context, record *domain.Record) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

func (m *MockRecordRepository) CreateTx(ctx context.Context, tx usecase.Transaction, record *domain.Record) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, record)
	}
	return m.Create(ctx, record)
}

func (m *MockRecordRepository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (m *MockRecordRepository) List(ctx context.Context, filter usecase.RecordFilter) ([]*domain.Record, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Record
	for _, r := range m.records {
		if matches(r, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRecordRepository) ListTx(ctx context.Context, tx usecase.Transaction, filter usecase.RecordFilter) ([]*domain.Record, error) {
	if m.ListTxFunc != nil {
		return m.ListTxFunc(ctx, tx, filter)
	}
	return m.List(ctx, filter)
}

func (m *MockRecordRepository) Update(ctx context.Context, record *domain.Record) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[record.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	m.records[record.ID] = record
	return nil
}

func (m *MockRecordRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MockRecordRepository) LockScope(ctx context.Context, tx usecase.Transaction, scope string) error {
	if m.LockScopeFunc != nil {
		return m.LockScopeFunc(ctx, tx, scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LockedScopes = append(m.LockedScopes, scope)
	return nil
}

// Seed stores records directly, bypassing any Func overrides.
func (m *MockRecordRepository) Seed(records ...*domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.records[r.ID] = r
	}
}

// Count returns the number of stored records.
func (m *MockRecordRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func matches(r *domain.Record, f usecase.RecordFilter) bool {
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if f.FundType != "" && r.FundType != f.FundType {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if len(f.Kinds) > 0 {
		found := false
		for _, k := range f.Kinds {
			if r.Kind == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !r.Date.Before(f.To) {
		return false
	}
	return true
}

// MockInvestmentRepository is a mock implementation of InvestmentRepository.
type MockInvestmentRepository struct {
	mu           sync.RWMutex
	investments  map[string]*domain.Investment
	transactions map[string][]*domain.InvestmentTransaction
	returns      map[int]*domain.InvestmentReturn

	CreateFunc            func(ctx context.Context, investment *domain.Investment) error
	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Investment, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Investment, error)
	ListFunc              func(ctx context.Context, userID string) ([]*domain.Investment, error)
	UpdateFunc            func(ctx context.Context, investment *domain.Investment) error
	UpdateAmountFunc      func(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error
	DeleteFunc            func(ctx context.Context, id string) error
	CreateTransactionFunc func(ctx context.Context, tx usecase.Transaction, txn *domain.InvestmentTransaction) error
	ListTransactionsFunc  func(ctx context.Context, investmentID string) ([]*domain.InvestmentTransaction, error)
	UpsertReturnFunc      func(ctx context.Context, ret *domain.InvestmentReturn) error
	ListReturnsFunc       func(ctx context.Context) ([]*domain.InvestmentReturn, error)
	DeleteReturnFunc      func(ctx context.Context, year int) error
}

func NewMockInvestmentRepository() *MockInvestmentRepository {
	return &MockInvestmentRepository{
		investments:  make(map[string]*domain.Investment),
		transactions: make(map[string][]*domain.InvestmentTransaction),
		returns:      make(map[int]*domain.InvestmentReturn),
	}
}

func (m *MockInvestmentRepository) Create(ctx context.Context, investment *domain.Investment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, investment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.investments[investment.ID] = investment
	return nil
}

func (m *MockInvestmentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, investment)
	}
	return m.Create(ctx, investment)
}

func (m *MockInvestmentRepository) GetByID(ctx context.Context, id string) (*domain.Investment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.investments[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrInvestmentNotFound
}

func (m *MockInvestmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Investment, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInvestmentRepository) List(ctx context.Context, userID string) ([]*domain.Investment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Investment
	for _, inv := range m.investments {
		if userID == "" || inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *MockInvestmentRepository) Update(ctx context.Context, investment *domain.Investment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, investment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.investments[investment.ID]; !ok {
		return domain.ErrInvestmentNotFound
	}
	m.investments[investment.ID] = investment
	return nil
}

func (m *MockInvestmentRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateAmountFunc != nil {
		return m.UpdateAmountFunc(ctx, tx, id, amount, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.investments[id]
	if !ok {
		return domain.ErrInvestmentNotFound
	}
	inv.CurrentAmount = amount
	inv.UpdatedAt = updatedAt
	return nil
}

func (m *MockInvestmentRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.investments[id]; !ok {
		return domain.ErrInvestmentNotFound
	}
	delete(m.investments, id)
	return nil
}

func (m *MockInvestmentRepository) CreateTransaction(ctx context.Context, tx usecase.Transaction, txn *domain.InvestmentTransaction) error {
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.InvestmentID] = append(m.transactions[txn.InvestmentID], txn)
	return nil
}

func (m *MockInvestmentRepository) ListTransactions(ctx context.Context, investmentID string) ([]*domain.InvestmentTransaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, investmentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transactions[investmentID], nil
}

func (m *MockInvestmentRepository) UpsertReturn(ctx context.Context, ret *domain.InvestmentReturn) error {
	if m.UpsertReturnFunc != nil {
		return m.UpsertReturnFunc(ctx, ret)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returns[ret.Year] = ret
	return nil
}

func (m *MockInvestmentRepository) ListReturns(ctx context.Context) ([]*domain.InvestmentReturn, error) {
	if m.ListReturnsFunc != nil {
		return m.ListReturnsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.InvestmentReturn
	for _, r := range m.returns {
		out = append(out, r)
	}
	return out, nil
}

func (m *MockInvestmentRepository) DeleteReturn(ctx context.Context, year int) error {
	if m.DeleteReturnFunc != nil {
		return m.DeleteReturnFunc(ctx, year)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.returns[year]; !ok {
		return domain.ErrReturnNotFound
	}
	delete(m.returns, year)
	return nil
}

// MockReminderRepository is a mock implementation of ReminderRepository.
type MockReminderRepository struct {
	mu        sync.RWMutex
	reminders map[string]*domain.Reminder

	CreateFunc     func(ctx context.Context, reminder *domain.Reminder) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Reminder, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.Reminder, error)
	UpdateFunc     func(ctx context.Context, reminder *domain.Reminder) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{
		reminders: make(map[string]*domain.Reminder),
	}
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reminder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[reminder.ID] = reminder
	return nil
}

func (m *MockReminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.reminders[id]; ok {
		return r, nil
	}
	return nil, domain.ErrReminderNotFound
}

func (m *MockReminderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Reminder
	for _, r := range m.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockReminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, reminder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[reminder.ID]; !ok {
		return domain.ErrReminderNotFound
	}
	m.reminders[reminder.ID] = reminder
	return nil
}

func (m *MockReminderRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[id]; !ok {
		return domain.ErrReminderNotFound
	}
	delete(m.reminders, id)
	return nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock TransactionManager. Every Begin
// returns a fresh MockTransaction and records it.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.Transactions = append(m.Transactions, tx)
	m.mu.Unlock()
	return tx, nil
}

// Last returns the most recently begun transaction, or nil.
func (m *MockTransactionManager) Last() *MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Transactions) == 0 {
		return nil
	}
	return m.Transactions[len(m.Transactions)-1]
}

// MockIDGenerator yields sequential deterministic IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockRetrier runs the operation once, without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockClock returns a fixed instant.
type MockClock struct {
	Instant time.Time
}

func (c *MockClock) Now() time.Time {
	return c.Instant
}

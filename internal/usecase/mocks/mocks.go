package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
	"github.com/mcheviron/ledgerbank/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc                      func(ctx context.Context, account *domain.Account) error
	GetByIDFunc                     func(ctx context.Context, id string) (*domain.Account, error)
	GetByAccountNumberFunc          func(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetByEmailOrNationalIDFunc      func(ctx context.Context, email, nationalID string) (*domain.Account, error)
	GetByAccountNumberForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountNumber string) (*domain.Account, error)
	UpdateBalanceFunc               func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Email == account.Email || existing.NationalID == account.NationalID ||
			existing.AccountNumber == account.AccountNumber {
			return domain.ErrDuplicateAccount
		}
	}
	clone := *account
	m.accounts[account.ID] = &clone
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		clone := *acc
		return &clone, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if m.GetByAccountNumberFunc != nil {
		return m.GetByAccountNumberFunc(ctx, accountNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.AccountNumber == accountNumber {
			clone := *acc
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByEmailOrNationalID(ctx context.Context, email, nationalID string) (*domain.Account, error) {
	if m.GetByEmailOrNationalIDFunc != nil {
		return m.GetByEmailOrNationalIDFunc(ctx, email, nationalID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Email == email || acc.NationalID == nationalID {
			clone := *acc
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *MockAccountRepository) GetByAccountNumberForUpdate(ctx context.Context, tx usecase.Transaction, accountNumber string) (*domain.Account, error) {
	if m.GetByAccountNumberForUpdateFunc != nil {
		return m.GetByAccountNumberForUpdateFunc(ctx, tx, accountNumber)
	}
	return m.GetByAccountNumber(ctx, accountNumber)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

// Seed inserts an account without uniqueness checks.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *account
	m.accounts[account.ID] = &clone
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *txn
	m.txns = append(m.txns, &clone)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.txns {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of stored transactions.
func (m *MockTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txns)
}

// MockTransactionManager emulates the row-lock serialization of the real
// store: Begin blocks until the previous transaction commits or rolls
// back, so concurrent read-modify-write sequences do not interleave.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	return &MockTransaction{release: m.mu.Unlock}, nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	once    sync.Once
	release func()

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.done()
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.done()
	return nil
}

func (t *MockTransaction) done() {
	if t.release != nil {
		t.once.Do(t.release)
	}
}

// MockIDGenerator is a mock ID generator.
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

// MockPinHasher is a reversible stand-in for the bcrypt hasher. Hashes
// are "hashed:<pin>" so tests can seed accounts without real hashing.
type MockPinHasher struct {
	HashFunc   func(pin string) (string, error)
	VerifyFunc func(pin, hash string) bool
}

func NewMockPinHasher() *MockPinHasher {
	return &MockPinHasher{}
}

func (m *MockPinHasher) Hash(pin string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(pin)
	}
	return "hashed:" + pin, nil
}

func (m *MockPinHasher) Verify(pin, hash string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(pin, hash)
	}
	return hash == "hashed:"+pin
}

// MockNotifier records notifications for assertions.
type MockNotifier struct {
	mu sync.Mutex

	Transactions []string
	Exports      []string

	TransactionRecordedFunc func(ctx context.Context, email string, txnType domain.TransactionType, amount, balanceAfter decimal.Decimal) error
	LogsExportedFunc        func(ctx context.Context, email string, count int) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) TransactionRecorded(ctx context.Context, email string, txnType domain.TransactionType, amount, balanceAfter decimal.Decimal) error {
	if m.TransactionRecordedFunc != nil {
		return m.TransactionRecordedFunc(ctx, email, txnType, amount, balanceAfter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, fmt.Sprintf("%s %s %s %s", email, txnType, amount, balanceAfter))
	return nil
}

func (m *MockNotifier) LogsExported(ctx context.Context, email string, count int) error {
	if m.LogsExportedFunc != nil {
		return m.LogsExportedFunc(ctx, email, count)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exports = append(m.Exports, fmt.Sprintf("%s %d", email, count))
	return nil
}

// TransactionCount returns how many transaction notifications were recorded.
func (m *MockNotifier) TransactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Transactions)
}

// MockCache is an in-memory cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Has reports whether the key is present.
func (m *MockCache) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}

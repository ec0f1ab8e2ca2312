package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	// GetByEmailOrNationalID returns (nil, nil) when no account matches
	// either key. Used for duplicate detection at account opening.
	GetByEmailOrNationalID(ctx context.Context, email, nationalID string) (*domain.Account, error)
	// GetByAccountNumberForUpdate locks the account row for the duration
	// of tx so concurrent balance mutations serialize per account.
	GetByAccountNumberForUpdate(ctx context.Context, tx Transaction, accountNumber string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	// Create appends a ledger line inside tx, the same unit of work as
	// the balance update it snapshots.
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
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

// PinHasher hashes and verifies account PINs.
type PinHasher interface {
	// Hash produces a salted one-way hash; a fresh salt is generated per call.
	Hash(pin string) (string, error)
	// Verify reports whether pin matches hash. A wrong PIN or malformed
	// hash is false, never an error.
	Verify(pin, hash string) bool
}

// Notifier is informed of completed operations. Implementations are
// best-effort: the caller logs and swallows any error.
type Notifier interface {
	TransactionRecorded(ctx context.Context, email string, txnType domain.TransactionType, amount, balanceAfter decimal.Decimal) error
	LogsExported(ctx context.Context, email string, count int) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

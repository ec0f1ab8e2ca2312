package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a ledger transaction.
type TransactionType string

const (
	TransactionTypeCredit   TransactionType = "Credit"
	TransactionTypeWithdraw TransactionType = "Withdraw"
)

// IsValid checks if the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeWithdraw
}

// Transaction is a single immutable line of the per-account ledger.
// BalanceAfter snapshots the account balance at the moment this
// transaction was committed.
type Transaction struct {
	ID           string
	AccountID    string
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Timestamp    time.Time
	Description  string
}

// Validate checks transaction invariants before it is persisted.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidAmount, t.Type)
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.AccountID == "" {
		return ErrAccountNotFound
	}

	return nil
}

// TransactionDescription derives the human-readable description stored
// alongside a ledger line.
func TransactionDescription(t TransactionType, amount decimal.Decimal) string {
	return fmt.Sprintf("%s of amount %s", t, amount.StringFixed(2))
}

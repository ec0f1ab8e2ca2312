package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType determines the minimum-balance rules of an account.
type AccountType string

const (
	// AccountTypeSavings keeps a 500-unit floor after every withdrawal.
	AccountTypeSavings AccountType = "Savings"

	// AccountTypeCurrent has no balance floor.
	AccountTypeCurrent AccountType = "Current"
)

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return t == AccountTypeSavings || t == AccountTypeCurrent
}

// SavingsMinimumBalance is the lowest balance a savings account may reach
// after a withdrawal.
var SavingsMinimumBalance = decimal.NewFromInt(500)

// Account represents a customer account holding a balance.
type Account struct {
	ID            string
	Name          string
	Email         string
	NationalID    string
	AccountType   AccountType
	Branch        string
	AccountNumber string
	PINHash       string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MinimumBalance returns the balance floor for this account's type.
func (a *Account) MinimumBalance() decimal.Decimal {
	if a.AccountType == AccountTypeSavings {
		return SavingsMinimumBalance
	}

	return decimal.Zero
}

// OpeningBalance returns the balance an account of this type starts with.
// Savings accounts open funded at the floor so the withdrawal rule holds
// from the first transaction.
func OpeningBalance(t AccountType) decimal.Decimal {
	if t == AccountTypeSavings {
		return SavingsMinimumBalance
	}

	return decimal.Zero
}

// ValidateWithdraw checks if the account can be debited by amount.
// The insufficient-funds check is evaluated strictly before the
// minimum-balance check so callers see distinct failures.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	if a.Balance.Sub(amount).LessThan(a.MinimumBalance()) {
		return ErrBelowMinimumBalance
	}

	return nil
}

// ApplyCredit returns the new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyWithdraw returns the new balance after withdrawal.
func (a *Account) ApplyWithdraw(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

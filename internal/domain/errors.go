package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account with this email or national ID already exists")

	// Ledger errors
	ErrInvalidCredentials  = errors.New("invalid PIN")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimumBalance = errors.New("cannot withdraw beyond minimum balance")
	ErrNoTransactions      = errors.New("no transaction logs found")
)

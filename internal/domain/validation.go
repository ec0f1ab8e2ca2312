package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName        = errors.New("invalid account holder name")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidNationalID  = errors.New("national ID must be 12 digits")
	ErrInvalidAccountType = errors.New("account type must be Savings or Current")
	ErrInvalidBranch      = errors.New("branch cannot be empty")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1

	// AccountNumberLength is the fixed length of generated account numbers.
	AccountNumberLength = 16

	// PINLength is the fixed length of generated PINs.
	PINLength = 4

	MaxTransactionAmount = "1000000000" // 1 billion
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nationalIDRegex = regexp.MustCompile(`^[0-9]{12}$`)
	digitsRegex     = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateName validates an account holder name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateNationalID validates the identity document number.
func ValidateNationalID(id string) error {
	if !nationalIDRegex.MatchString(id) {
		return ErrInvalidNationalID
	}

	return nil
}

// ValidateAccountNumber checks the fixed-length numeric format.
func ValidateAccountNumber(number string) error {
	if len(number) != AccountNumberLength || !digitsRegex.MatchString(number) {
		return ErrAccountNotFound
	}

	return nil
}

// ValidateAmount validates a credit/withdraw amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransactionAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransactionAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

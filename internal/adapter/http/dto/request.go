package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
	"github.com/mcheviron/ledgerbank/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	NationalID  string `json:"national_id"`
	AccountType string `json:"account_type"`
	Branch      string `json:"branch"`
}

// Validate checks the request before it reaches the use case.
func (r *OpenAccountRequest) Validate() error {
	if err := domain.ValidateName(r.Name); err != nil {
		return err
	}

	if err := domain.ValidateEmail(r.Email); err != nil {
		return err
	}

	if err := domain.ValidateNationalID(r.NationalID); err != nil {
		return err
	}

	if !domain.AccountType(r.AccountType).IsValid() {
		return domain.ErrInvalidAccountType
	}

	if r.Branch == "" {
		return domain.ErrInvalidBranch
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		Name:        r.Name,
		Email:       r.Email,
		NationalID:  r.NationalID,
		AccountType: domain.AccountType(r.AccountType),
		Branch:      r.Branch,
	}
}

// AmountRequest is the shared shape of credit and withdraw requests.
type AmountRequest struct {
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	PIN           string          `json:"pin"`
	Amount        decimal.Decimal `json:"amount"`
}

// Validate guarantees the engine's preconditions: non-empty account
// number, PIN, and name, and an amount of at least 1. The engine still
// re-checks the amount itself.
func (r *AmountRequest) Validate() error {
	if err := domain.ValidateAccountNumber(r.AccountNumber); err != nil {
		return err
	}

	if r.PIN == "" {
		return domain.ErrInvalidCredentials
	}

	if err := domain.ValidateName(r.Name); err != nil {
		return err
	}

	if r.Amount.LessThan(decimal.NewFromInt(1)) {
		return domain.ErrInvalidAmount
	}

	return nil
}

// ToCreditInput converts to use case input.
func (r *AmountRequest) ToCreditInput() usecase.CreditInput {
	return usecase.CreditInput{
		AccountNumber: r.AccountNumber,
		PIN:           r.PIN,
		Amount:        r.Amount,
	}
}

// ToWithdrawInput converts to use case input.
func (r *AmountRequest) ToWithdrawInput() usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountNumber: r.AccountNumber,
		PIN:           r.PIN,
		Amount:        r.Amount,
	}
}

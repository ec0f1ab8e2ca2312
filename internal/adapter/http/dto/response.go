package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
	"github.com/mcheviron/ledgerbank/internal/usecase"
)

// AccountResponse represents an account in API responses. The PIN hash
// never appears here.
type AccountResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	NationalID    string          `json:"national_id"`
	AccountType   string          `json:"account_type"`
	Branch        string          `json:"branch"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		NationalID:    a.NationalID,
		AccountType:   string(a.AccountType),
		Branch:        a.Branch,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// OpenAccountResponse carries the created account and its one-time PIN.
type OpenAccountResponse struct {
	Account *AccountResponse `json:"account"`
	PIN     string           `json:"pin"`
}

// TransactionResponse represents a ledger line in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
	Description  string          `json:"description"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Timestamp:    t.Timestamp,
		Description:  t.Description,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}

	return result
}

// ListTransactionsResponse wraps a log listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// BalanceResponse represents a balance lookup.
type BalanceResponse struct {
	Name          string          `json:"name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// BalanceFromUseCase converts the balance projection to a response.
func BalanceFromUseCase(b *usecase.BalanceInfo) *BalanceResponse {
	return &BalanceResponse{
		Name:          b.Name,
		AccountNumber: b.AccountNumber,
		Balance:       b.Balance,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

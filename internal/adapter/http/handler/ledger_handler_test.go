package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/adapter/http/dto"
	"github.com/mcheviron/ledgerbank/internal/domain"
	"github.com/mcheviron/ledgerbank/internal/usecase"
)

type ledgerServiceStub struct {
	creditFn   func(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error)
	withdrawFn func(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	balanceFn  func(ctx context.Context, accountNumber string) (*usecase.BalanceInfo, error)
	listFn     func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

func (s *ledgerServiceStub) Credit(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error) {
	return s.creditFn(ctx, input)
}

func (s *ledgerServiceStub) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error) {
	return s.withdrawFn(ctx, input)
}

func (s *ledgerServiceStub) GetBalance(ctx context.Context, accountNumber string) (*usecase.BalanceInfo, error) {
	return s.balanceFn(ctx, accountNumber)
}

func (s *ledgerServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func sampleTransaction(txnType domain.TransactionType) *domain.Transaction {
	return &domain.Transaction{
		ID:           "txn-1",
		AccountID:    "acc-1",
		Type:         txnType,
		Amount:       decimal.NewFromInt(100),
		BalanceAfter: decimal.NewFromInt(600),
		Timestamp:    time.Now().UTC(),
		Description:  domain.TransactionDescription(txnType, decimal.NewFromInt(100)),
	}
}

func amountRequestBody() []byte {
	body, _ := json.Marshal(dto.AmountRequest{
		AccountNumber: "1234567890123456",
		Name:          "Alice Smith",
		PIN:           "4321",
		Amount:        decimal.NewFromInt(100),
	})

	return body
}

func TestLedgerHandler_Credit_Success(t *testing.T) {
	var captured usecase.CreditInput
	handler := NewLedgerHandler(&ledgerServiceStub{
		creditFn: func(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error) {
			captured = input
			return sampleTransaction(domain.TransactionTypeCredit), nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger/credit", bytes.NewReader(amountRequestBody()))
	rec := httptest.NewRecorder()

	handler.Credit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.AccountNumber != "1234567890123456" || captured.PIN != "4321" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Type != "Credit" {
		t.Fatalf("expected Credit, got %s", resp.Type)
	}
}

func TestLedgerHandler_Credit_InvalidJSON(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		creditFn: func(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error) {
			t.Fatal("Credit should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger/credit", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()

	handler.Credit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_Withdraw_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"wrong PIN", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusBadRequest},
		{"below minimum balance", domain.ErrBelowMinimumBalance, http.StatusBadRequest},
		{"unknown account", domain.ErrAccountNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLedgerHandler(&ledgerServiceStub{
				withdrawFn: func(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error) {
					return nil, tt.err
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/ledger/withdraw", bytes.NewReader(amountRequestBody()))
			rec := httptest.NewRecorder()

			handler.Withdraw(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestLedgerHandler_Withdraw_Success(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		withdrawFn: func(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error) {
			return sampleTransaction(domain.TransactionTypeWithdraw), nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger/withdraw", bytes.NewReader(amountRequestBody()))
	rec := httptest.NewRecorder()

	handler.Withdraw(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLedgerHandler_GetBalance(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		balanceFn: func(ctx context.Context, accountNumber string) (*usecase.BalanceInfo, error) {
			if accountNumber != "1234567890123456" {
				t.Fatalf("expected account number to pass through, got %s", accountNumber)
			}
			return &usecase.BalanceInfo{
				Name:          "Alice Smith",
				AccountNumber: accountNumber,
				Balance:       decimal.NewFromInt(500),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/balance/1234567890123456", nil)
	req = setChiURLParam(req, "accountNumber", "1234567890123456")
	rec := httptest.NewRecorder()

	handler.GetBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance.String() != "500" {
		t.Fatalf("expected balance 500, got %s", resp.Balance)
	}
}

func TestLedgerHandler_GetBalance_NotFound(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		balanceFn: func(ctx context.Context, accountNumber string) (*usecase.BalanceInfo, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/balance/0000000000000000", nil)
	req = setChiURLParam(req, "accountNumber", "0000000000000000")
	rec := httptest.NewRecorder()

	handler.GetBalance(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLedgerHandler_ListTransactions(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
			if input.AccountID != "acc-1" || input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected acc-1 limit=5 offset=2, got %+v", input)
			}
			return []*domain.Transaction{
				sampleTransaction(domain.TransactionTypeCredit),
				sampleTransaction(domain.TransactionTypeWithdraw),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/transactions?limit=5&offset=2", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(resp.Transactions))
	}
}

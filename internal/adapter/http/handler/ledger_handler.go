package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcheviron/ledgerbank/internal/adapter/http/dto"
	"github.com/mcheviron/ledgerbank/internal/domain"
	"github.com/mcheviron/ledgerbank/internal/infrastructure/metrics"
	"github.com/mcheviron/ledgerbank/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Credit(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	GetBalance(ctx context.Context, accountNumber string) (*usecase.BalanceInfo, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// LedgerHandler handles credit/withdraw/balance HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Credit credits an amount to an account.
func (h *LedgerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAmountRequest(w, r)
	if !ok {
		return
	}

	txn, err := h.ledgerUC.Credit(r.Context(), req.ToCreditInput())
	if err != nil {
		metrics.LedgerErrors.WithLabelValues(errorReason(err)).Inc()

		status := mapDomainError(err)
		writeError(w, status, "credit failed", err.Error())

		return
	}

	h.recordMetrics(txn)

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Withdraw withdraws an amount from an account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAmountRequest(w, r)
	if !ok {
		return
	}

	txn, err := h.ledgerUC.Withdraw(r.Context(), req.ToWithdrawInput())
	if err != nil {
		metrics.LedgerErrors.WithLabelValues(errorReason(err)).Inc()

		status := mapDomainError(err)
		writeError(w, status, "withdrawal failed", err.Error())

		return
	}

	h.recordMetrics(txn)

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// GetBalance returns the current balance for an account number.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	if accountNumber == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), accountNumber)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromUseCase(balance))
}

// ListTransactions lists an account's ledger with pagination.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.ledgerUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}

func (h *LedgerHandler) decodeAmountRequest(w http.ResponseWriter, r *http.Request) (*dto.AmountRequest, bool) {
	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	if err := req.Validate(); err != nil {
		writeError(w, mapDomainError(err), "invalid request", err.Error())
		return nil, false
	}

	return &req, true
}

func (h *LedgerHandler) recordMetrics(txn *domain.Transaction) {
	metrics.TransactionsRecorded.WithLabelValues(string(txn.Type)).Inc()

	amount, _ := txn.Amount.Float64()
	metrics.TransactionAmount.Observe(amount)
}

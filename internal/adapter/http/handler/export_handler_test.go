package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mcheviron/ledgerbank/internal/domain"
)

type exportServiceStub struct {
	exportFn func(ctx context.Context, accountID string, w io.Writer) (int, error)
}

func (s *exportServiceStub) ExportCSV(ctx context.Context, accountID string, w io.Writer) (int, error) {
	return s.exportFn(ctx, accountID, w)
}

func TestExportHandler_ExportTransactions(t *testing.T) {
	handler := NewExportHandler(&exportServiceStub{
		exportFn: func(ctx context.Context, accountID string, w io.Writer) (int, error) {
			if accountID != "acc-1" {
				t.Fatalf("expected acc-1, got %s", accountID)
			}
			fmt.Fprintln(w, "id,type,amount,balance_after,timestamp,description")
			fmt.Fprintln(w, "txn-1,Credit,100.00,100.00,2025-01-02T03:04:05Z,Credit of amount 100.00")
			return 1, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/transactions/export", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ExportTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("expected text/csv, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Errorf("expected attachment disposition, got %q", got)
	}
	if got := rec.Header().Get("X-Record-Count"); got != "1" {
		t.Errorf("expected record count 1, got %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "id,type,amount") {
		t.Errorf("expected CSV body, got %q", rec.Body.String())
	}
}

func TestExportHandler_ExportTransactions_EmptyLedger(t *testing.T) {
	handler := NewExportHandler(&exportServiceStub{
		exportFn: func(ctx context.Context, accountID string, w io.Writer) (int, error) {
			return 0, domain.ErrNoTransactions
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/transactions/export", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ExportTransactions(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// The failure surfaces as JSON, never a truncated CSV.
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
}

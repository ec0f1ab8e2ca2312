package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcheviron/ledgerbank/internal/infrastructure/metrics"
)

// ExportService defines the behavior needed by ExportHandler.
type ExportService interface {
	ExportCSV(ctx context.Context, accountID string, w io.Writer) (int, error)
}

// ExportHandler serves transaction log downloads.
type ExportHandler struct {
	exportUC ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC ExportService) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

// ExportTransactions streams an account's transaction log as a CSV attachment.
func (h *ExportHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	// Buffer the export so a late failure can still produce a JSON error
	// instead of a truncated download.
	var buf bytes.Buffer

	count, err := h.exportUC.ExportCSV(r.Context(), id, &buf)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "export failed", err.Error())

		return
	}

	metrics.LogsExported.Inc()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "transactions-"+id+".csv"))
	w.Header().Set("X-Record-Count", fmt.Sprintf("%d", count))
	w.WriteHeader(http.StatusOK)

	_, _ = buf.WriteTo(w)
}

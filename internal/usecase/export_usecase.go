package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// exportColumns are the header row of the exported report, in the order
// the original back office presented them.
var exportColumns = []string{"id", "type", "amount", "balance_after", "timestamp", "description"}

// ExportUseCase renders an account's ledger to a tabular artifact.
// Rendering is a read-only concern layered on top of the ledger.
type ExportUseCase struct {
	ledger      *LedgerUseCase
	accountRepo AccountRepository
	notifier    Notifier
	logger      zerolog.Logger
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(ledger *LedgerUseCase, accountRepo AccountRepository, notifier Notifier, logger zerolog.Logger) *ExportUseCase {
	return &ExportUseCase{
		ledger:      ledger,
		accountRepo: accountRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// ExportCSV writes the account's full ledger to w as CSV, chronological
// order, one row per transaction. Returns the number of exported rows.
// Fails with domain.ErrNoTransactions when the ledger is empty; nothing
// is written in that case.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, accountID string, w io.Writer) (int, error) {
	txns, err := uc.ledger.GetTransactionLogs(ctx, accountID)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(exportColumns); err != nil {
		return 0, fmt.Errorf("writing export header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.ID,
			string(txn.Type),
			txn.Amount.StringFixed(2),
			txn.BalanceAfter.StringFixed(2),
			txn.Timestamp.UTC().Format(time.RFC3339),
			txn.Description,
		}

		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("writing export row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing export: %w", err)
	}

	uc.notifyExported(ctx, accountID, len(txns))

	return len(txns), nil
}

// notifyExported informs the owner how many records were exported.
// Best-effort: failures are logged, never surfaced.
func (uc *ExportUseCase) notifyExported(ctx context.Context, accountID string, count int) {
	if uc.notifier == nil {
		return
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("export notification skipped")
		return
	}

	if err := uc.notifier.LogsExported(ctx, account.Email, count); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("export notification failed")
	}
}

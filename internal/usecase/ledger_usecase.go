package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
)

// LedgerUseCase orchestrates credit/withdraw requests: it verifies the
// caller's PIN, enforces balance rules, mutates the balance, and appends
// the ledger line, all as one unit of work.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	pinHasher   PinHasher
	notifier    Notifier
	cache       Cache
	retrier     Retrier
	logger      zerolog.Logger
}

// LedgerConfig holds dependencies for LedgerUseCase. Cache and Retrier
// are optional.
type LedgerConfig struct {
	TxManager   TransactionManager
	AccountRepo AccountRepository
	TxnRepo     TransactionRepository
	IDGen       IDGenerator
	PinHasher   PinHasher
	Notifier    Notifier
	Cache       Cache
	Retrier     Retrier
	Logger      zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(cfg LedgerConfig) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   cfg.TxManager,
		accountRepo: cfg.AccountRepo,
		txnRepo:     cfg.TxnRepo,
		idGen:       cfg.IDGen,
		pinHasher:   cfg.PinHasher,
		notifier:    cfg.Notifier,
		cache:       cfg.Cache,
		retrier:     cfg.Retrier,
		logger:      cfg.Logger,
	}
}

// CreditInput represents a credit request.
type CreditInput struct {
	AccountNumber string
	PIN           string
	Amount        decimal.Decimal
}

// WithdrawInput represents a withdrawal request.
type WithdrawInput struct {
	AccountNumber string
	PIN           string
	Amount        decimal.Decimal
}

// Credit adds amount to the account balance and appends the ledger line.
func (uc *LedgerUseCase) Credit(ctx context.Context, input CreditInput) (*domain.Transaction, error) {
	return uc.record(ctx, input.AccountNumber, input.PIN, input.Amount, domain.TransactionTypeCredit)
}

// Withdraw subtracts amount from the account balance and appends the
// ledger line. Fails with ErrInsufficientBalance when the balance does not
// cover the amount, and with ErrBelowMinimumBalance when the withdrawal
// would breach the account type's floor.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	return uc.record(ctx, input.AccountNumber, input.PIN, input.Amount, domain.TransactionTypeWithdraw)
}

// record runs the shared pipeline: load, verify PIN, validate amount,
// then the atomic balance-rule/mutate/append unit, then best-effort
// notification. The PIN check always precedes balance rules so callers
// cannot probe balance constraints without valid credentials.
func (uc *LedgerUseCase) record(
	ctx context.Context,
	accountNumber, pin string,
	amount decimal.Decimal,
	txnType domain.TransactionType,
) (*domain.Transaction, error) {
	account, err := uc.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	// Verified outside the row lock: bcrypt comparison is slow on purpose
	// and must not extend the critical section.
	if !uc.pinHasher.Verify(pin, account.PINHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// The DTO layer already checks this; the engine does not trust it.
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	operation := func() error {
		var opErr error
		txn, opErr = uc.applyAtomic(ctx, accountNumber, amount, txnType)
		return opErr
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		return nil, err
	}

	uc.invalidateBalance(ctx, accountNumber)
	uc.notifyTransaction(ctx, account.Email, txn)

	return txn, nil
}

// applyAtomic holds the account row lock across check-mutate-append so
// concurrent calls on one account serialize, and commits the balance
// update and the ledger line as one unit.
func (uc *LedgerUseCase) applyAtomic(
	ctx context.Context,
	accountNumber string,
	amount decimal.Decimal,
	txnType domain.TransactionType,
) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByAccountNumberForUpdate(ctx, tx, accountNumber)
	if err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal

	switch txnType {
	case domain.TransactionTypeWithdraw:
		if err := account.ValidateWithdraw(amount); err != nil {
			return nil, err
		}

		newBalance = account.ApplyWithdraw(amount)
	default:
		newBalance = account.ApplyCredit(amount)
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:           uc.idGen.Generate(),
		AccountID:    account.ID,
		Type:         txnType,
		Amount:       amount,
		BalanceAfter: newBalance,
		Timestamp:    now,
		Description:  domain.TransactionDescription(txnType, amount),
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// BalanceInfo is the read-only balance projection of an account.
type BalanceInfo struct {
	Name          string          `json:"name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// GetBalance returns the current balance for an account number. Pure
// read; served from cache when one is configured.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, accountNumber string) (*BalanceInfo, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, balanceKey(accountNumber)); err == nil {
			var info BalanceInfo
			if err := json.Unmarshal([]byte(cached), &info); err == nil {
				return &info, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	info := &BalanceInfo{
		Name:          account.Name,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(info); err == nil {
			if err := uc.cache.Set(ctx, balanceKey(accountNumber), string(encoded), BalanceCacheTTL); err != nil {
				uc.logger.Warn().Err(err).Str("account_number", accountNumber).Msg("balance cache set failed")
			}
		}
	}

	return info, nil
}

// GetTransactionLogs returns the account's ledger in insertion order.
// Fails with ErrNoTransactions when the ledger is empty.
func (uc *LedgerUseCase) GetTransactionLogs(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	txns, err := uc.txnRepo.ListByAccount(ctx, accountID, 0, 0)
	if err != nil {
		return nil, err
	}

	if len(txns) == 0 {
		return nil, domain.ErrNoTransactions
	}

	return txns, nil
}

// ListTransactionsInput represents input for paginated log listing.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions lists ledger lines for an account with pagination.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// notifyTransaction informs the sink after commit. Failures are logged
// and swallowed; they never roll back or fail the ledger operation.
func (uc *LedgerUseCase) notifyTransaction(ctx context.Context, email string, txn *domain.Transaction) {
	if uc.notifier == nil {
		return
	}

	if err := uc.notifier.TransactionRecorded(ctx, email, txn.Type, txn.Amount, txn.BalanceAfter); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("transaction_id", txn.ID).
			Str("type", string(txn.Type)).
			Msg("transaction notification failed")
	}
}

func (uc *LedgerUseCase) invalidateBalance(ctx context.Context, accountNumber string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, balanceKey(accountNumber)); err != nil {
		uc.logger.Warn().Err(err).Str("account_number", accountNumber).Msg("balance cache invalidation failed")
	}
}

func balanceKey(accountNumber string) string {
	return "balance:" + accountNumber
}

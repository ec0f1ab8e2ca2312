package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/mcheviron/ledgerbank/internal/domain"
)

// AccountUseCase handles account opening and lookup.
type AccountUseCase struct {
	accountRepo AccountRepository
	pinHasher   PinHasher
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, pinHasher PinHasher, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		pinHasher:   pinHasher,
		idGen:       idGen,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	Name        string
	Email       string
	NationalID  string
	AccountType domain.AccountType
	Branch      string
}

// OpenAccountOutput carries the created account and its generated PIN.
// The plaintext PIN is surfaced exactly once, here; only its hash is stored.
type OpenAccountOutput struct {
	Account *domain.Account
	PIN     string
}

// OpenAccount creates a new account with a system-generated account number
// and PIN. Savings accounts open funded at the minimum-balance floor.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*OpenAccountOutput, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidateNationalID(input.NationalID); err != nil {
		return nil, err
	}

	if !input.AccountType.IsValid() {
		return nil, domain.ErrInvalidAccountType
	}

	if input.Branch == "" {
		return nil, domain.ErrInvalidBranch
	}

	// Pre-check closes the common case early; the store's unique
	// constraints close the race between two concurrent openings.
	existing, err := uc.accountRepo.GetByEmailOrNationalID(ctx, input.Email, input.NationalID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, domain.ErrDuplicateAccount
	}

	accountNumber, err := generateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("generating account number: %w", err)
	}

	pin, err := generatePIN()
	if err != nil {
		return nil, fmt.Errorf("generating PIN: %w", err)
	}

	pinHash, err := uc.pinHasher.Hash(pin)
	if err != nil {
		return nil, fmt.Errorf("hashing PIN: %w", err)
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		Name:          input.Name,
		Email:         input.Email,
		NationalID:    input.NationalID,
		AccountType:   input.AccountType,
		Branch:        input.Branch,
		AccountNumber: accountNumber,
		PINHash:       pinHash,
		Balance:       domain.OpeningBalance(input.AccountType),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	// Never hand the hash back to callers.
	account.PINHash = ""

	return &OpenAccountOutput{Account: account, PIN: pin}, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.PINHash = ""

	return account, nil
}

// generateAccountNumber produces a fixed-length numeric account number.
func generateAccountNumber() (string, error) {
	digits := make([]byte, domain.AccountNumberLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}

// generatePIN produces a 4-digit PIN in [1000, 9999].
func generatePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

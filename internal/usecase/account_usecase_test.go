package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
	"github.com/mcheviron/ledgerbank/internal/usecase"
	"github.com/mcheviron/ledgerbank/internal/usecase/mocks"
)

func validOpenAccountInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		Name:        "Alice Smith",
		Email:       "alice@example.com",
		NationalID:  "123456789012",
		AccountType: domain.AccountTypeSavings,
		Branch:      "Downtown",
	}
}

func TestAccountUseCase_OpenAccount(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*usecase.OpenAccountInput)
		wantErr error
	}{
		{
			name:   "valid savings account",
			mutate: func(in *usecase.OpenAccountInput) {},
		},
		{
			name: "valid current account",
			mutate: func(in *usecase.OpenAccountInput) {
				in.AccountType = domain.AccountTypeCurrent
			},
		},
		{
			name: "empty name",
			mutate: func(in *usecase.OpenAccountInput) {
				in.Name = ""
			},
			wantErr: domain.ErrInvalidName,
		},
		{
			name: "malformed email",
			mutate: func(in *usecase.OpenAccountInput) {
				in.Email = "not-an-email"
			},
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name: "short national ID",
			mutate: func(in *usecase.OpenAccountInput) {
				in.NationalID = "12345"
			},
			wantErr: domain.ErrInvalidNationalID,
		},
		{
			name: "non-numeric national ID",
			mutate: func(in *usecase.OpenAccountInput) {
				in.NationalID = "12345678901a"
			},
			wantErr: domain.ErrInvalidNationalID,
		},
		{
			name: "unknown account type",
			mutate: func(in *usecase.OpenAccountInput) {
				in.AccountType = "Checking"
			},
			wantErr: domain.ErrInvalidAccountType,
		},
		{
			name: "empty branch",
			mutate: func(in *usecase.OpenAccountInput) {
				in.Branch = ""
			},
			wantErr: domain.ErrInvalidBranch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			uc := usecase.NewAccountUseCase(accRepo, mocks.NewMockPinHasher(), mocks.NewMockIDGenerator())

			input := validOpenAccountInput()
			tt.mutate(&input)

			out, err := uc.OpenAccount(context.Background(), input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			account := out.Account

			if len(account.AccountNumber) != domain.AccountNumberLength {
				t.Errorf("expected %d-digit account number, got %q", domain.AccountNumberLength, account.AccountNumber)
			}
			for _, c := range account.AccountNumber {
				if c < '0' || c > '9' {
					t.Errorf("account number must be numeric, got %q", account.AccountNumber)
					break
				}
			}

			pin, err := strconv.Atoi(out.PIN)
			if err != nil || pin < 1000 || pin > 9999 {
				t.Errorf("expected 4-digit PIN in [1000, 9999], got %q", out.PIN)
			}

			if account.PINHash != "" {
				t.Error("PIN hash must not be returned to callers")
			}

			wantBalance := decimal.Zero
			if input.AccountType == domain.AccountTypeSavings {
				wantBalance = domain.SavingsMinimumBalance
			}
			if !account.Balance.Equal(wantBalance) {
				t.Errorf("expected opening balance %s, got %s", wantBalance, account.Balance)
			}

			// The stored record keeps the hash, only the returned copy is scrubbed.
			stored, err := accRepo.GetByID(context.Background(), account.ID)
			if err != nil {
				t.Fatalf("failed to reload account: %v", err)
			}
			if stored.PINHash != "hashed:"+out.PIN {
				t.Errorf("expected stored hash for PIN %s, got %q", out.PIN, stored.PINHash)
			}
		})
	}
}

func TestAccountUseCase_OpenAccount_Duplicates(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Seed(&domain.Account{
		ID:            "acc-existing",
		Name:          "Bob Jones",
		Email:         "bob@example.com",
		NationalID:    "999999999012",
		AccountType:   domain.AccountTypeCurrent,
		Branch:        "Uptown",
		AccountNumber: "0000111122223333",
		PINHash:       "hashed:1111",
		Balance:       decimal.Zero,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	})

	uc := usecase.NewAccountUseCase(accRepo, mocks.NewMockPinHasher(), mocks.NewMockIDGenerator())

	tests := []struct {
		name  string
		email string
		natID string
	}{
		{name: "duplicate email", email: "bob@example.com", natID: "123456789012"},
		{name: "duplicate national ID", email: "carol@example.com", natID: "999999999012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validOpenAccountInput()
			input.Email = tt.email
			input.NationalID = tt.natID

			if _, err := uc.OpenAccount(context.Background(), input); !errors.Is(err, domain.ErrDuplicateAccount) {
				t.Fatalf("expected ErrDuplicateAccount, got %v", err)
			}
		})
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Seed(&domain.Account{
		ID:            "acc-1",
		Name:          "Alice Smith",
		Email:         "alice@example.com",
		NationalID:    "123456789012",
		AccountType:   domain.AccountTypeSavings,
		Branch:        "Downtown",
		AccountNumber: "1234567890123456",
		PINHash:       "hashed:4321",
		Balance:       decimal.NewFromInt(500),
	})

	uc := usecase.NewAccountUseCase(accRepo, mocks.NewMockPinHasher(), mocks.NewMockIDGenerator())

	account, err := uc.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.PINHash != "" {
		t.Error("PIN hash must not be returned to callers")
	}
	if account.Name != "Alice Smith" {
		t.Errorf("expected name Alice Smith, got %s", account.Name)
	}

	if _, err := uc.GetAccount(context.Background(), "acc-missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

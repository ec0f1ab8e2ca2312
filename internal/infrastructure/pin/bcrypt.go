package pin

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements usecase.PinHasher with bcrypt. bcrypt encodes
// a per-call random salt into the hash itself, and its cost makes
// offline brute force of 4-digit PINs expensive.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost.
// Tests use the minimum cost to stay fast.
func NewBcryptHasherWithCost(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{cost: cost}
}

// Hash produces a salted hash of the PIN.
func (h *BcryptHasher) Hash(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Verify reports whether pin matches hash. A mismatch or a malformed
// hash is false, never an error.
func (h *BcryptHasher) Verify(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

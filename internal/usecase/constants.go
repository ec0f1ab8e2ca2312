package usecase

import "time"

const (
	// BalanceCacheTTL is how long a balance lookup stays cached before
	// expiring on its own. Mutations invalidate eagerly.
	BalanceCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

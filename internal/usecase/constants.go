package usecase

import "time"

const (
	// DefaultTransactionTimeout caps a single guarded write transaction
	// so a stuck transfer cannot hold the scope lock indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// SummaryCacheTTL bounds how long a cached fund summary may live.
	// Mutations delete the key eagerly; the TTL is only a backstop.
	SummaryCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	defaultPageSize = 20
	maxPageSize     = 100
)

// Balance scope keys. A scope is the (user, ledger) pair whose balance
// is guarded; writers of the same scope are serialized.
func salaryScope(userID string) string {
	return "salary:" + userID
}

func fundScope(fundType, userID string) string {
	return "fund:" + fundType + ":" + userID
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

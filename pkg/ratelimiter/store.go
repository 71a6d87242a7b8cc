package ratelimiter

import (
	"context"
	"time"
)

// Store holds per-key bucket state. The Redis implementation is shared
// across instances so a caller hammering the API cannot reset their budget
// by hitting a different replica.
type Store interface {
	// ConsumeTokens takes tokens from the bucket at key, refilling first
	// based on elapsed time. A negative remaining count means the caller
	// went over budget and the request should be rejected with resetAt as
	// the earliest retry time.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset drops the bucket state for key.
	Reset(ctx context.Context, key string) error
}

package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. ConsumeTokens returns the tokens left after
// taking n; a negative value means the request is denied and nothing was
// taken.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, n int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

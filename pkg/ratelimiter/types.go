package ratelimiter

import "time"

// Result is the outcome of one rate limit check.
type Result struct {
	Limit     int
	Remaining int // negative when the request was denied
	ResetAt   time.Time
}

func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long a denied caller should wait. Zero when allowed.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, r.ResetAt.Sub(now))
}

// Config defines the token bucket.
type Config struct {
	Capacity       int           `env:"CAPACITY" envDefault:"20"`
	RefillRate     int           `env:"REFILL_RATE" envDefault:"5"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1m"`
}

// Package ratelimiter implements token bucket rate limiting with in-memory
// and Redis stores plus HTTP middleware.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     5,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, clientip.Key)).Get("/auth/signin", signIn)
//
// A bucket starts full at Capacity and gains RefillRate tokens per elapsed
// RefillInterval. Denied requests take no tokens. RedisStore runs the same
// algorithm in a Lua script so several dashboard instances share limits.
package ratelimiter

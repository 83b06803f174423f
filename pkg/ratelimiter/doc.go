// Package ratelimiter throttles requests with token buckets.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	limiter, err := ratelimiter.New(store, ratelimiter.PerMinute(60, 10))
//	r.With(ratelimiter.Middleware(limiter, keyByIP, nil)).Post("/validate", h)
package ratelimiter

package ratelimiter

import (
	"net/http"
	"strconv"
	"time"
)

// KeyFunc picks the bucket of a request, usually the client address.
type KeyFunc func(r *http.Request) string

// DeniedFunc writes the response for a throttled request, or for a store
// failure when err is set.
type DeniedFunc func(w http.ResponseWriter, r *http.Request, res Result, err error)

// Middleware throttles requests per key and sets the X-RateLimit headers.
// Requests with an empty key are not limited.
func Middleware(l *Limiter, key KeyFunc, denied DeniedFunc) func(http.Handler) http.Handler {
	if denied == nil {
		denied = func(w http.ResponseWriter, _ *http.Request, _ Result, err error) {
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), k)
			if err != nil {
				denied(w, r, res, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			if !res.Allowed() {
				if secs := int(res.RetryAfter().Round(time.Second).Seconds()); secs > 0 {
					h.Set("Retry-After", strconv.Itoa(secs))
				}
				denied(w, r, res, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

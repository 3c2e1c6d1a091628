package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes is used when MaxBytes is given a non-positive limit.
const DefaultMaxBodyBytes = 1 << 20

// MaxBytes caps request bodies. Reads past the cap fail and the handler
// answers 413 or 400 as it sees fit.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"strings"
)

// Methods and headers the auth endpoints accept cross-origin.
var (
	CORSAllowedMethods = []string{"POST", "OPTIONS"}
	CORSAllowedHeaders = []string{"Accept", "Content-Type"}
)

// CORS sets CORS headers for allowed origins and answers preflight requests.
// With no origins it is a no-op.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimSpace(o)] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowed[origin] {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(CORSAllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", strings.Join(CORSAllowedHeaders, ", "))
				h.Set("Access-Control-Max-Age", "86400")
				h.Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

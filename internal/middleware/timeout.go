package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds handler execution when no explicit
// timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

const timeoutBody = `{"success":false,"error":"request timed out","code":"internal_error"}`

// Timeout enforces a deadline on request handlers. The request context
// is cancelled at the deadline and a JSON error body is written if the
// handler has not responded.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			handler := http.TimeoutHandler(next, timeout, timeoutBody)
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

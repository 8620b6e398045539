package middleware

import (
	"net/http"

	"github.com/voxday/planner-api/internal/envelope"
)

// DefaultMaxRequestSize caps request bodies at 1MB. Tool-call payloads
// are small; anything larger is abuse or a client bug.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize limits the size of request bodies.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				envelope.WriteError(w, http.StatusRequestEntityTooLarge, envelope.CodeValidationFailed, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			defer r.Body.Close()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/voxday/planner-api/internal/envelope"
)

// APIKeyHeader is the header carrying the shared secret on tool requests.
const APIKeyHeader = "X-Api-Key"

// Auth creates authentication middleware that checks the shared secret.
// The voice platform sends the same static key on every tool call; there is
// no per-user credential. An empty configured secret rejects everything
// rather than letting a misconfigured deployment run open.
func Auth(sharedSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(APIKeyHeader)
			if sharedSecret == "" || presented == "" {
				envelope.WriteError(w, http.StatusUnauthorized, envelope.CodeUnauthorized, "Missing or invalid API key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(sharedSecret)) != 1 {
				envelope.WriteError(w, http.StatusUnauthorized, envelope.CodeUnauthorized, "Missing or invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

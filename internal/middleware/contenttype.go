package middleware

import (
	"net/http"
	"strings"

	"github.com/voxday/planner-api/internal/envelope"
)

// ContentType rejects body-carrying requests that are not JSON. The
// tool-call surface is JSON only, including charset-suffixed variants.
func ContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut:
			ct := r.Header.Get("Content-Type")
			if ct == "" {
				envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, "Content-Type header is required")
				return
			}
			if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				envelope.WriteError(w, http.StatusUnsupportedMediaType, envelope.CodeValidationFailed, "Content-Type must be application/json")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

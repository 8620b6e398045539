// Package request has helpers for reading client details off incoming
// HTTP requests.
package request

import (
	"net/http"
	"strings"
)

// ClientIP returns the originating client address. Proxy headers win
// over the socket address: X-Forwarded-For's first hop, then X-Real-IP,
// then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}

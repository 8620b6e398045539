package request

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.1:52311",
			want:       "10.0.0.1:52311",
		},
		{
			name:       "x-forwarded-for single hop",
			forwarded:  "203.0.113.7",
			remoteAddr: "10.0.0.1:52311",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for takes first of chain",
			forwarded:  "203.0.113.7, 198.51.100.2, 10.0.0.1",
			remoteAddr: "10.0.0.1:52311",
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip when no forwarded header",
			realIP:     " 198.51.100.9 ",
			remoteAddr: "10.0.0.1:52311",
			want:       "198.51.100.9",
		},
		{
			name:       "forwarded wins over real-ip",
			forwarded:  "203.0.113.7",
			realIP:     "198.51.100.9",
			remoteAddr: "10.0.0.1:52311",
			want:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("POST", "/api/v1/tools/todos/get", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

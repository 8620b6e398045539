package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListUpcoming(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"events":[{"summary":"standup","start":"2025-06-01T09:00:00Z"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok_123")
	c.now = func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }

	events, err := c.ListUpcoming(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListUpcoming returned error: %v", err)
	}

	if gotPath != "/events" {
		t.Errorf("path = %q, want /events", gotPath)
	}
	if gotAuth != "Bearer tok_123" {
		t.Errorf("Authorization = %q, want Bearer tok_123", gotAuth)
	}
	if gotQuery["user_id"] != "user-1" {
		t.Errorf("user_id = %q", gotQuery["user_id"])
	}
	if gotQuery["time_min"] != "2025-06-01T08:00:00Z" {
		t.Errorf("time_min = %q", gotQuery["time_min"])
	}
	if gotQuery["time_max"] != "2025-06-02T08:00:00Z" {
		t.Errorf("time_max = %q", gotQuery["time_max"])
	}
	if gotQuery["max_results"] != "50" {
		t.Errorf("max_results = %q", gotQuery["max_results"])
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0]["summary"] != "standup" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestListUpcoming_CapsEventCount(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		events := make([]Event, MaxEvents+10)
		for i := range events {
			events[i] = Event{"summary": fmt.Sprintf("e%d", i)}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"events": events})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	events, err := c.ListUpcoming(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListUpcoming returned error: %v", err)
	}
	if len(events) != MaxEvents {
		t.Errorf("got %d events, want %d", len(events), MaxEvents)
	}
}

func TestListUpcoming_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	if _, err := c.ListUpcoming(context.Background(), "user-1"); err == nil {
		t.Fatal("ListUpcoming returned nil error for upstream failure")
	}
}

func TestListUpcoming_EmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	events, err := c.ListUpcoming(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListUpcoming returned error: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("events = %v, want empty non-nil slice", events)
	}
}

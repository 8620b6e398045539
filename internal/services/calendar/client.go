// Package calendar is a thin passthrough to the external calendar API.
// Events are relayed as the upstream returns them; this service does not
// model calendar data.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// MaxEvents caps how many upcoming events one request returns.
const MaxEvents = 50

// lookahead is the window queried for upcoming events.
const lookahead = 24 * time.Hour

// Event is an upstream calendar event, passed through untouched.
type Event map[string]any

// EventLister lists upcoming events. Tests substitute a fake.
type EventLister interface {
	ListUpcoming(ctx context.Context, userID string) ([]Event, error)
}

// Client is an HTTP client for the calendar API using a service-level access
// token. Calendar access is single-tenant; there is no per-user OAuth here.
type Client struct {
	http *resty.Client
	now  func() time.Time
}

// NewClient creates a calendar API client.
func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(token).
		SetTimeout(30 * time.Second)

	return &Client{http: c, now: time.Now}
}

type listResponse struct {
	Events []Event `json:"events"`
}

// ListUpcoming returns the user's events within the next 24 hours, capped at
// MaxEvents.
func (c *Client) ListUpcoming(ctx context.Context, userID string) ([]Event, error) {
	now := c.now().UTC()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"user_id":     userID,
			"time_min":    now.Format(time.RFC3339),
			"time_max":    now.Add(lookahead).Format(time.RFC3339),
			"max_results": fmt.Sprintf("%d", MaxEvents),
		}).
		Get("/events")
	if err != nil {
		return nil, fmt.Errorf("calendar request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("calendar status %d: %s", resp.StatusCode(), resp.String())
	}

	var body listResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode calendar response: %w", err)
	}

	events := body.Events
	if events == nil {
		events = []Event{}
	}
	if len(events) > MaxEvents {
		events = events[:MaxEvents]
	}
	return events, nil
}

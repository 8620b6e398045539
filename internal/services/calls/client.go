// Package calls schedules outbound check-in calls through the voice
// platform's call API.
package calls

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Customer identifies who the outbound call dials.
type Customer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// SchedulePlan is the window within which the platform may place the call.
type SchedulePlan struct {
	EarliestAt time.Time `json:"earliestAt"`
	LatestAt   time.Time `json:"latestAt"`
}

// CallRequest is the scheduling request submitted to the call service.
type CallRequest struct {
	Name          string       `json:"name"`
	AssistantID   string       `json:"assistantId"`
	PhoneNumberID string       `json:"phoneNumberId"`
	Customer      Customer     `json:"customer"`
	SchedulePlan  SchedulePlan `json:"schedulePlan"`
}

// CallSubmitter submits scheduling requests. The concrete Client talks to
// the real call service; tests substitute a fake.
type CallSubmitter interface {
	SubmitCall(ctx context.Context, req *CallRequest) error
}

// Client is an HTTP client for the outbound call service.
type Client struct {
	http *resty.Client
}

// NewClient creates a call service client.
func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second)

	return &Client{http: c}
}

// SubmitCall submits a scheduling request. Any non-2xx status is an error;
// there are no retries.
func (c *Client) SubmitCall(ctx context.Context, req *CallRequest) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/call")
	if err != nil {
		return fmt.Errorf("call service request: %w", err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("call service status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

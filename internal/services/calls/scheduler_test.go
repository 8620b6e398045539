package calls

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/voxday/planner-api/internal/models"
	"github.com/voxday/planner-api/internal/timeofday"
)

type fakeSubmitter struct {
	req *CallRequest
	err error
}

func (f *fakeSubmitter) SubmitCall(ctx context.Context, req *CallRequest) error {
	f.req = req
	return f.err
}

func newTestScheduler(sub CallSubmitter, now time.Time) *Scheduler {
	parser := timeofday.NewParser(time.UTC, timeofday.WithNow(func() time.Time { return now }))
	return NewScheduler(parser, sub, "asst_1", "pn_1", zap.NewNop())
}

func TestSchedule_BuildsRequest(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	sub := &fakeSubmitter{}
	s := newTestScheduler(sub, now)

	err := s.Schedule(context.Background(), "user-1", "Ada", "+15551234567", "8:00 AM", models.CallKindMorning)
	if err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}
	if sub.req == nil {
		t.Fatal("no request was submitted")
	}

	wantEarliest := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if !sub.req.SchedulePlan.EarliestAt.Equal(wantEarliest) {
		t.Errorf("EarliestAt = %v, want %v", sub.req.SchedulePlan.EarliestAt, wantEarliest)
	}
	if !sub.req.SchedulePlan.LatestAt.Equal(wantEarliest.Add(5 * time.Minute)) {
		t.Errorf("LatestAt = %v, want %v", sub.req.SchedulePlan.LatestAt, wantEarliest.Add(5*time.Minute))
	}
	if sub.req.Customer.Number != "+15551234567" || sub.req.Customer.Name != "Ada" {
		t.Errorf("unexpected customer: %+v", sub.req.Customer)
	}
	if sub.req.AssistantID != "asst_1" || sub.req.PhoneNumberID != "pn_1" {
		t.Errorf("unexpected identifiers: %+v", sub.req)
	}
}

func TestSchedule_ParseFailureDoesNotSubmit(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	s := newTestScheduler(sub, time.Now())

	err := s.Schedule(context.Background(), "user-1", "Ada", "+15551234567", "noon", models.CallKindEvening)
	if err != nil {
		t.Fatalf("Schedule returned error for parse failure, want nil: %v", err)
	}
	if sub.req != nil {
		t.Errorf("request was submitted despite parse failure: %+v", sub.req)
	}
}

func TestSchedule_MissingPhoneDoesNotSubmit(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	s := newTestScheduler(sub, time.Now())

	if err := s.Schedule(context.Background(), "user-1", "Ada", "", "8:00 AM", models.CallKindMorning); err != nil {
		t.Fatalf("Schedule returned error, want nil: %v", err)
	}
	if sub.req != nil {
		t.Error("request was submitted without a phone number")
	}
}

func TestSchedule_SubmitFailurePropagates(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{err: errors.New("service unavailable")}
	s := newTestScheduler(sub, time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC))

	err := s.Schedule(context.Background(), "user-1", "Ada", "+15551234567", "8:00 AM", models.CallKindMorning)
	if err == nil {
		t.Fatal("Schedule returned nil error, want submission failure")
	}
}

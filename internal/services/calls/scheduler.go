package calls

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/voxday/planner-api/internal/models"
	"github.com/voxday/planner-api/internal/timeofday"
)

// scheduleWindow is how long after the earliest instant the platform may
// still place the call.
const scheduleWindow = 5 * time.Minute

// Scheduler turns a user's preferred call time into a scheduling request and
// submits it.
type Scheduler struct {
	parser        *timeofday.Parser
	submitter     CallSubmitter
	assistantID   string
	phoneNumberID string
	log           *zap.Logger
}

// NewScheduler creates a scheduler submitting through submitter.
func NewScheduler(parser *timeofday.Parser, submitter CallSubmitter, assistantID, phoneNumberID string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		parser:        parser,
		submitter:     submitter,
		assistantID:   assistantID,
		phoneNumberID: phoneNumberID,
		log:           log,
	}
}

// Schedule parses timeString and submits a call scheduled in the window
// [next occurrence, +5 minutes]. A malformed time string is logged and
// dropped without submitting anything or returning an error: the triggering
// profile write must never fail because of a bad preference value.
// Submission failures are returned to the caller.
func (s *Scheduler) Schedule(ctx context.Context, userID, displayName, phoneNumber, timeString string, kind models.CallKind) error {
	earliest, err := s.parser.Next(timeString)
	if err != nil {
		s.log.Error("call_time_parse_failed",
			zap.String("user_id", userID),
			zap.String("call_kind", string(kind)),
			zap.String("time_string", timeString),
			zap.Error(err),
		)
		return nil
	}

	if phoneNumber == "" {
		s.log.Error("call_schedule_missing_phone_number",
			zap.String("user_id", userID),
			zap.String("call_kind", string(kind)),
		)
		return nil
	}

	req := &CallRequest{
		Name:          fmt.Sprintf("%s check-in for %s", kind, displayName),
		AssistantID:   s.assistantID,
		PhoneNumberID: s.phoneNumberID,
		Customer: Customer{
			Number: phoneNumber,
			Name:   displayName,
		},
		SchedulePlan: SchedulePlan{
			EarliestAt: earliest,
			LatestAt:   earliest.Add(scheduleWindow),
		},
	}

	if err := s.submitter.SubmitCall(ctx, req); err != nil {
		s.log.Error("call_schedule_submit_failed",
			zap.String("user_id", userID),
			zap.String("call_kind", string(kind)),
			zap.Time("earliest_at", earliest),
			zap.Error(err),
		)
		return fmt.Errorf("failed to schedule %s call for %s: %w", kind, userID, err)
	}

	s.log.Info("call_scheduled",
		zap.String("user_id", userID),
		zap.String("call_kind", string(kind)),
		zap.Time("earliest_at", earliest),
		zap.Time("latest_at", earliest.Add(scheduleWindow)),
	)
	return nil
}

package workers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voxday/planner-api/internal/models"
	"github.com/voxday/planner-api/internal/queue"
)

// CallScheduler schedules one outbound check-in call for a user.
type CallScheduler interface {
	Schedule(ctx context.Context, userID, displayName, phoneNumber, timeString string, kind models.CallKind) error
}

// CallWorker consumes schedule_call jobs and submits them to the call
// service. Each job gets a single attempt: a failed submission is logged
// and the message acked so the queue does not redeliver it.
type CallWorker struct {
	scheduler CallScheduler
	log       *zap.Logger
}

// NewCallWorker creates a worker backed by the given scheduler.
func NewCallWorker(scheduler CallScheduler, log *zap.Logger) *CallWorker {
	if log == nil {
		log = zap.NewNop()
	}
	return &CallWorker{
		scheduler: scheduler,
		log:       log,
	}
}

// ProcessJob processes a single message from the queue.
func (w *CallWorker) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	if !job.ShouldProcess() {
		w.log.Warn("job_expired",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.String("user_id", job.UserID),
		)
		return msg.Ack()
	}

	switch job.Type {
	case queue.JobTypeScheduleCall:
		if err := w.scheduler.Schedule(ctx, job.UserID, job.DisplayName, job.PhoneNumber, job.TimeString, job.CallKind); err != nil {
			w.log.Error("call_schedule_failed",
				zap.String("job_id", job.ID.String()),
				zap.String("user_id", job.UserID),
				zap.String("call_kind", string(job.CallKind)),
				zap.Error(err),
			)
		}
		return msg.Ack()
	default:
		w.log.Error("unknown_job_type",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
		)
		if err := msg.Nack(false); err != nil {
			return fmt.Errorf("failed to nack unknown job type: %w", err)
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/models"
	"github.com/voxday/planner-api/internal/queue"
	"github.com/voxday/planner-api/internal/validation"
)

const (
	// Channel is the Postgres notification channel the user_profiles
	// trigger publishes call-time changes on.
	Channel = "profile_events"

	minReconnect = 10 * time.Second
	maxReconnect = time.Minute
	pingInterval = 90 * time.Second
)

// profileEvent is the trigger payload for one changed profile field.
type profileEvent struct {
	UserID string `json:"user_id"`
	Field  string `json:"field"`
	Old    string `json:"old"`
	New    string `json:"new"`
}

// Watcher listens for profile call-time changes and enqueues one
// schedule-call job per change. Failures are logged and never propagate back
// to the profile writer.
type Watcher struct {
	listener *pq.Listener
	profiles database.ProfileRepositoryInterface
	jobQueue queue.JobQueue
	log      *zap.Logger
}

// New creates a watcher connected to databaseURL.
func New(databaseURL string, profiles database.ProfileRepositoryInterface, jobQueue queue.JobQueue, log *zap.Logger) (*Watcher, error) {
	listener := pq.NewListener(databaseURL, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("profile_listener_event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	if err := listener.Listen(Channel); err != nil {
		if closeErr := listener.Close(); closeErr != nil {
			log.Warn("profile_listener_close_failed", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to listen on %s: %w", Channel, err)
	}
	return &Watcher{
		listener: listener,
		profiles: profiles,
		jobQueue: jobQueue,
		log:      log,
	}, nil
}

// Run consumes notifications until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info("profile_watcher_started", zap.String("channel", Channel))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n := <-w.listener.Notify:
			if n == nil {
				// Connection was re-established; notifications may have
				// been missed during the outage.
				w.log.Warn("profile_listener_reconnected")
				continue
			}
			w.handleNotification(ctx, []byte(n.Extra))

		case <-time.After(pingInterval):
			if err := w.listener.Ping(); err != nil {
				w.log.Warn("profile_listener_ping_failed", zap.Error(err))
			}
		}
	}
}

// Close closes the underlying listener connection.
func (w *Watcher) Close() error {
	return w.listener.Close()
}

func (w *Watcher) handleNotification(ctx context.Context, payload []byte) {
	event, err := decodeEvent(payload)
	if err != nil {
		w.log.Error("profile_event_decode_failed",
			zap.ByteString("payload", payload),
			zap.Error(err),
		)
		return
	}

	kind, ok := shouldSchedule(event)
	if !ok {
		return
	}

	profile, err := w.profiles.GetByID(ctx, event.UserID)
	if err != nil {
		w.log.Error("profile_load_failed",
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
		return
	}

	job := queue.NewScheduleCallJob(profile.UserID, kind, event.New, profile.PhoneNumber, profile.Name)
	if err := validateJob(job); err != nil {
		w.log.Error("schedule_call_job_invalid",
			zap.String("user_id", event.UserID),
			zap.String("call_kind", string(kind)),
			zap.Error(err),
		)
		return
	}
	if err := w.jobQueue.Enqueue(ctx, job); err != nil {
		w.log.Error("schedule_call_enqueue_failed",
			zap.String("user_id", event.UserID),
			zap.String("call_kind", string(kind)),
			zap.Error(err),
		)
		return
	}

	w.log.Info("schedule_call_enqueued",
		zap.String("job_id", job.ID.String()),
		zap.String("user_id", event.UserID),
		zap.String("call_kind", string(kind)),
		zap.String("time_string", event.New),
	)
}

// validateJob runs tag validation over a built job before it is handed to
// the queue, so malformed trigger data never reaches the worker.
func validateJob(job *queue.Job) error {
	return validation.Validate.Struct(job)
}

// decodeEvent parses a trigger payload.
func decodeEvent(payload []byte) (*profileEvent, error) {
	var event profileEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("invalid profile event: %w", err)
	}
	if event.UserID == "" {
		return nil, fmt.Errorf("profile event missing user_id")
	}
	return &event, nil
}

// shouldSchedule reports whether event is a call-time change that warrants a
// new scheduling request, and for which call.
func shouldSchedule(event *profileEvent) (models.CallKind, bool) {
	var kind models.CallKind
	switch event.Field {
	case "morning_call_time":
		kind = models.CallKindMorning
	case "evening_call_time":
		kind = models.CallKindEvening
	default:
		return "", false
	}
	// Clearing a call time cancels nothing and schedules nothing
	if event.New == "" || event.New == event.Old {
		return "", false
	}
	return kind, true
}

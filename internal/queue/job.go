package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/voxday/planner-api/internal/models"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeScheduleCall is a job for scheduling one outbound check-in call
	JobTypeScheduleCall JobType = "schedule_call"
)

// Job represents a job in the queue
type Job struct {
	ID          uuid.UUID       `json:"id"`
	Type        JobType         `json:"type"`
	UserID      string          `json:"user_id" validate:"required"`
	CallKind    models.CallKind `json:"call_kind,omitempty" validate:"call_kind"`
	TimeString  string          `json:"time_string,omitempty" validate:"required"` // 12-hour clock string, e.g. "8:00 AM"
	PhoneNumber string          `json:"phone_number,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	NotBefore   *time.Time      `json:"not_before,omitempty"` // Earliest time to process job (nil = immediate)
	NotAfter    *time.Time      `json:"not_after,omitempty"`  // Latest time to process job (nil = no expiration)
	Metadata    map[string]any  `json:"metadata,omitempty"`   // Job-specific data
	CreatedAt   time.Time       `json:"created_at"`
}

// NewScheduleCallJob creates a job that schedules a check-in call for a user.
func NewScheduleCallJob(userID string, kind models.CallKind, timeString, phoneNumber, displayName string) *Job {
	return &Job{
		ID:          uuid.New(),
		Type:        JobTypeScheduleCall,
		UserID:      userID,
		CallKind:    kind,
		TimeString:  timeString,
		PhoneNumber: phoneNumber,
		DisplayName: displayName,
		Metadata:    make(map[string]any),
		CreatedAt:   time.Now(),
	}
}

// ShouldProcess checks if the job should be processed now
func (j *Job) ShouldProcess() bool {
	now := time.Now()

	if j.NotBefore != nil && now.Before(*j.NotBefore) {
		return false
	}

	if j.NotAfter != nil && now.After(*j.NotAfter) {
		return false
	}

	return true
}

// IsExpired checks if the job has expired
func (j *Job) IsExpired() bool {
	if j.NotAfter == nil {
		return false
	}

	return time.Now().After(*j.NotAfter)
}


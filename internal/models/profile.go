package models

import "time"

// CallKind distinguishes the two scheduled check-in calls.
type CallKind string

const (
	CallKindMorning CallKind = "morning"
	CallKindEvening CallKind = "evening"
)

// UserProfile is the slice of the externally-owned user document this service
// reads. Call times are 12-hour clock strings like "8:00 AM".
type UserProfile struct {
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	PhoneNumber     string    `json:"phone_number"`
	MorningCallTime string    `json:"morning_call_time"`
	EveningCallTime string    `json:"evening_call_time"`
	UpdatedAt       time.Time `json:"updated_at"`
}

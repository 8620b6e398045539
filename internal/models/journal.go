package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a free-form journal payload saved for a user.
type JournalEntry struct {
	ID        uuid.UUID      `json:"id"`
	UserID    string         `json:"user_id"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voxday/planner-api/internal/models"
)

// JournalRepository persists free-form journal payloads.
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create saves a journal entry and stamps its id and creation time.
func (r *JournalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	payloadJSON, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal journal payload: %w", err)
	}

	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ID, entry.UserID, payloadJSON, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/voxday/planner-api/internal/models"
)

// ProfileRepository reads user profiles. Profiles are written by the
// external user-management system; this service only consumes them when a
// call-time change notification arrives.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID retrieves a user profile by id
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	var name, phone, morning, evening sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, phone_number, morning_call_time, evening_call_time, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &name, &phone, &morning, &evening, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user profile %q: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	p.Name = name.String
	p.PhoneNumber = phone.String
	p.MorningCallTime = morning.String
	p.EveningCallTime = evening.String
	return p, nil
}

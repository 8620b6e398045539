package database

import (
	"context"

	"github.com/voxday/planner-api/internal/models"
)

// DailyDocRepositoryInterface defines the daily document store operations.
// Handlers depend on this interface so tests can substitute an in-memory fake.
type DailyDocRepositoryInterface interface {
	GetList(ctx context.Context, userID, date string) (*models.DailyList, error)
	AppendItems(ctx context.Context, userID, date string, items []models.ListItem, writerID string) (*models.DailyList, error)
	SetItemStatus(ctx context.Context, userID, date string, updates []models.StatusUpdate, writerID string) (*models.DailyList, error)
	GetPlanner(ctx context.Context, userID, date string) (*models.Planner, error)
	ReplaceTasks(ctx context.Context, userID, date string, tasks []models.TaskItem, writerID string) (*models.Planner, error)
	SetTaskComplete(ctx context.Context, userID, date, taskID string, isComplete bool, writerID string) (*models.Planner, error)
	MergeMeals(ctx context.Context, userID, date string, patch *models.MealPatch, writerID string) (*models.Planner, error)
}

// ProfileRepositoryInterface defines profile read operations.
type ProfileRepositoryInterface interface {
	GetByID(ctx context.Context, userID string) (*models.UserProfile, error)
}

// JournalRepositoryInterface defines journal write operations.
type JournalRepositoryInterface interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
}

// Ensure concrete types implement the interfaces
var (
	_ DailyDocRepositoryInterface = (*DailyDocRepository)(nil)
	_ ProfileRepositoryInterface  = (*ProfileRepository)(nil)
	_ JournalRepositoryInterface  = (*JournalRepository)(nil)
)

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voxday/planner-api/internal/models"
)

// DailyDocRepository owns the lifecycle of daily documents: one row per
// (user, calendar day, kind). Write paths serialize per document via
// SELECT ... FOR UPDATE inside a transaction; concurrent writers to the same
// day's document cannot lose each other's updates.
type DailyDocRepository struct {
	db *DB
}

// NewDailyDocRepository creates a new daily document repository
func NewDailyDocRepository(db *DB) *DailyDocRepository {
	return &DailyDocRepository{db: db}
}

// listDoc is the JSONB body of a to_do_list document.
type listDoc struct {
	Items []models.ListItem `json:"items"`
}

// plannerDoc is the JSONB body of a planner document.
type plannerDoc struct {
	Tasks []models.TaskItem `json:"tasks"`
	Meals models.MealPlan   `json:"meals"`
}

// docRow mirrors the daily_docs table columns around the JSONB body.
type docRow struct {
	doc          []byte
	createdAt    time.Time
	lastModified time.Time
	modifiedBy   string
}

// GetList retrieves the to-do list for a user and day. A missing document
// yields the empty default without creating a row.
func (r *DailyDocRepository) GetList(ctx context.Context, userID, date string) (*models.DailyList, error) {
	row, err := r.get(ctx, userID, date, models.DocKindToDoList)
	if err == sql.ErrNoRows {
		return &models.DailyList{UserID: userID, Date: date, Items: []models.ListItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get to-do list: %w", err)
	}

	var doc listDoc
	if err := json.Unmarshal(row.doc, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to-do list: %w", err)
	}
	return listFromRow(userID, date, doc, row), nil
}

// AppendItems concatenates new items onto the day's to-do list, creating the
// document if this is the first write of the day.
func (r *DailyDocRepository) AppendItems(ctx context.Context, userID, date string, items []models.ListItem, writerID string) (*models.DailyList, error) {
	var result *models.DailyList
	err := r.withListDoc(ctx, userID, date, writerID, true, func(doc *listDoc) error {
		doc.Items = append(doc.Items, items...)
		return nil
	}, func(doc listDoc, row docRow) {
		result = listFromRow(userID, date, doc, row)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetItemStatus mutates only the isComplete flag of the listed items. Any
// unknown id fails the whole operation with ErrNotFound; nothing is written.
func (r *DailyDocRepository) SetItemStatus(ctx context.Context, userID, date string, updates []models.StatusUpdate, writerID string) (*models.DailyList, error) {
	var result *models.DailyList
	err := r.withListDoc(ctx, userID, date, writerID, false, func(doc *listDoc) error {
		return applyListStatus(doc.Items, updates)
	}, func(doc listDoc, row docRow) {
		result = listFromRow(userID, date, doc, row)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPlanner retrieves the planner for a user and day. A missing document
// yields the empty default without creating a row.
func (r *DailyDocRepository) GetPlanner(ctx context.Context, userID, date string) (*models.Planner, error) {
	row, err := r.get(ctx, userID, date, models.DocKindPlanner)
	if err == sql.ErrNoRows {
		return &models.Planner{UserID: userID, Date: date, Tasks: []models.TaskItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planner: %w", err)
	}

	var doc plannerDoc
	if err := json.Unmarshal(row.doc, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal planner: %w", err)
	}
	return plannerFromRow(userID, date, doc, row), nil
}

// ReplaceTasks replaces the day's full task list, creating the document if
// needed.
func (r *DailyDocRepository) ReplaceTasks(ctx context.Context, userID, date string, tasks []models.TaskItem, writerID string) (*models.Planner, error) {
	var result *models.Planner
	err := r.withPlannerDoc(ctx, userID, date, writerID, true, func(doc *plannerDoc) error {
		doc.Tasks = tasks
		return nil
	}, func(doc plannerDoc, row docRow) {
		result = plannerFromRow(userID, date, doc, row)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetTaskComplete mutates the isComplete flag of exactly one task. Unknown
// task ids fail with ErrNotFound; nothing is written.
func (r *DailyDocRepository) SetTaskComplete(ctx context.Context, userID, date, taskID string, isComplete bool, writerID string) (*models.Planner, error) {
	var result *models.Planner
	err := r.withPlannerDoc(ctx, userID, date, writerID, false, func(doc *plannerDoc) error {
		return applyTaskStatus(doc.Tasks, []models.StatusUpdate{{ID: taskID, IsComplete: isComplete}})
	}, func(doc plannerDoc, row docRow) {
		result = plannerFromRow(userID, date, doc, row)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MergeMeals shallow-merges a partial meal record into the day's planner,
// creating the document if needed. Unspecified fields keep their prior value.
func (r *DailyDocRepository) MergeMeals(ctx context.Context, userID, date string, patch *models.MealPatch, writerID string) (*models.Planner, error) {
	var result *models.Planner
	err := r.withPlannerDoc(ctx, userID, date, writerID, true, func(doc *plannerDoc) error {
		doc.Meals = mergeMealPatch(doc.Meals, patch)
		return nil
	}, func(doc plannerDoc, row docRow) {
		result = plannerFromRow(userID, date, doc, row)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// get reads a document row without locking. Returns sql.ErrNoRows when the
// day has no document of that kind.
func (r *DailyDocRepository) get(ctx context.Context, userID, date string, kind models.DocKind) (docRow, error) {
	var row docRow
	err := r.db.QueryRowContext(ctx, `
		SELECT doc, created_at, last_modified, modified_by
		FROM daily_docs
		WHERE user_id = $1 AND doc_date = $2 AND kind = $3
	`, userID, date, string(kind)).Scan(&row.doc, &row.createdAt, &row.lastModified, &row.modifiedBy)
	return row, err
}

// withDoc runs mutate against the day's document inside a transaction holding
// a row lock. createIfMissing controls create-or-merge vs require-existing
// semantics: append/replace/merge paths create the day's document on first
// write, status updates require one to exist.
func (r *DailyDocRepository) withDoc(ctx context.Context, userID, date string, kind models.DocKind, writerID string, createIfMissing bool, emptyDoc []byte, mutate func(doc []byte) ([]byte, error), done func(doc []byte, row docRow)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()

	if createIfMissing {
		// Ensure the row exists before locking it so concurrent first
		// writes of the day serialize on the same row.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO daily_docs (user_id, doc_date, kind, doc, created_at, last_modified, modified_by)
			VALUES ($1, $2, $3, $4, $5, $5, $6)
			ON CONFLICT (user_id, doc_date, kind) DO NOTHING
		`, userID, date, string(kind), emptyDoc, now, writerID)
		if err != nil {
			return fmt.Errorf("failed to create daily document: %w", err)
		}
	}

	var row docRow
	err = tx.QueryRowContext(ctx, `
		SELECT doc, created_at, last_modified, modified_by
		FROM daily_docs
		WHERE user_id = $1 AND doc_date = $2 AND kind = $3
		FOR UPDATE
	`, userID, date, string(kind)).Scan(&row.doc, &row.createdAt, &row.lastModified, &row.modifiedBy)
	if err == sql.ErrNoRows {
		return fmt.Errorf("daily document %s/%s/%s: %w", userID, date, kind, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock daily document: %w", err)
	}

	updated, err := mutate(row.doc)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE daily_docs
		SET doc = $4, last_modified = $5, modified_by = $6
		WHERE user_id = $1 AND doc_date = $2 AND kind = $3
	`, userID, date, string(kind), updated, now, writerID)
	if err != nil {
		return fmt.Errorf("failed to update daily document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit daily document update: %w", err)
	}

	row.doc = updated
	row.lastModified = now
	row.modifiedBy = writerID
	done(updated, row)
	return nil
}

func (r *DailyDocRepository) withListDoc(ctx context.Context, userID, date, writerID string, createIfMissing bool, mutate func(*listDoc) error, done func(listDoc, docRow)) error {
	empty, _ := json.Marshal(listDoc{Items: []models.ListItem{}})
	return r.withDoc(ctx, userID, date, models.DocKindToDoList, writerID, createIfMissing, empty,
		func(raw []byte) ([]byte, error) {
			var doc listDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal to-do list: %w", err)
			}
			if doc.Items == nil {
				doc.Items = []models.ListItem{}
			}
			if err := mutate(&doc); err != nil {
				return nil, err
			}
			out, err := json.Marshal(doc)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal to-do list: %w", err)
			}
			return out, nil
		},
		func(raw []byte, row docRow) {
			var doc listDoc
			_ = json.Unmarshal(raw, &doc)
			done(doc, row)
		})
}

func (r *DailyDocRepository) withPlannerDoc(ctx context.Context, userID, date, writerID string, createIfMissing bool, mutate func(*plannerDoc) error, done func(plannerDoc, docRow)) error {
	empty, _ := json.Marshal(plannerDoc{Tasks: []models.TaskItem{}})
	return r.withDoc(ctx, userID, date, models.DocKindPlanner, writerID, createIfMissing, empty,
		func(raw []byte) ([]byte, error) {
			var doc plannerDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal planner: %w", err)
			}
			if doc.Tasks == nil {
				doc.Tasks = []models.TaskItem{}
			}
			if err := mutate(&doc); err != nil {
				return nil, err
			}
			out, err := json.Marshal(doc)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal planner: %w", err)
			}
			return out, nil
		},
		func(raw []byte, row docRow) {
			var doc plannerDoc
			_ = json.Unmarshal(raw, &doc)
			done(doc, row)
		})
}

// applyListStatus mutates isComplete in place for each update. All ids must
// resolve; a single miss rejects the batch.
func applyListStatus(items []models.ListItem, updates []models.StatusUpdate) error {
	for _, u := range updates {
		found := false
		for i := range items {
			if items[i].ID == u.ID {
				items[i].IsComplete = u.IsComplete
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("item %q: %w", u.ID, ErrNotFound)
		}
	}
	return nil
}

// applyTaskStatus is applyListStatus for planner tasks.
func applyTaskStatus(tasks []models.TaskItem, updates []models.StatusUpdate) error {
	for _, u := range updates {
		found := false
		for i := range tasks {
			if tasks[i].ID == u.ID {
				tasks[i].IsComplete = u.IsComplete
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("task %q: %w", u.ID, ErrNotFound)
		}
	}
	return nil
}

// mergeMealPatch overlays non-nil patch fields onto the existing record. The
// result always carries all four keys.
func mergeMealPatch(meals models.MealPlan, patch *models.MealPatch) models.MealPlan {
	if patch == nil {
		return meals
	}
	if patch.Breakfast != nil {
		meals.Breakfast = *patch.Breakfast
	}
	if patch.Lunch != nil {
		meals.Lunch = *patch.Lunch
	}
	if patch.Snacks != nil {
		meals.Snacks = *patch.Snacks
	}
	if patch.Dinner != nil {
		meals.Dinner = *patch.Dinner
	}
	return meals
}

func listFromRow(userID, date string, doc listDoc, row docRow) *models.DailyList {
	if doc.Items == nil {
		doc.Items = []models.ListItem{}
	}
	return &models.DailyList{
		UserID:       userID,
		Date:         date,
		Items:        doc.Items,
		CreatedAt:    row.createdAt,
		LastModified: row.lastModified,
		ModifiedBy:   row.modifiedBy,
	}
}

func plannerFromRow(userID, date string, doc plannerDoc, row docRow) *models.Planner {
	if doc.Tasks == nil {
		doc.Tasks = []models.TaskItem{}
	}
	return &models.Planner{
		UserID:       userID,
		Date:         date,
		Tasks:        doc.Tasks,
		Meals:        doc.Meals,
		CreatedAt:    row.createdAt,
		LastModified: row.lastModified,
		ModifiedBy:   row.modifiedBy,
	}
}

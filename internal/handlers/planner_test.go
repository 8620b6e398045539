package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voxday/planner-api/internal/models"
)

func TestGetPlannerEmptyDefault(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	h := NewPlannerHandler(repo)

	req := httptest.NewRequest("POST", "/get", toolCallBody(t, "call-1", "getPlanner", map[string]any{"user_id": "user-1"}))
	w := httptest.NewRecorder()

	h.GetPlanner(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var result plannerResult
	decodeResult(t, w.Body.Bytes(), &result)
	if result.TotalTasks != 0 {
		t.Errorf("total = %d, want 0", result.TotalTasks)
	}
	if result.Meals != (models.MealPlan{}) {
		t.Errorf("meals = %+v, want zeroed", result.Meals)
	}
	if len(repo.planners) != 0 {
		t.Errorf("read created %d documents, want 0", len(repo.planners))
	}
}

func TestUpdateTasksReplacesList(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	date := models.DateKey(time.Now())
	repo.planners[docKey("user-1", date)] = &models.Planner{
		UserID: "user-1",
		Date:   date,
		Tasks:  []models.TaskItem{{ID: "old", Text: "old task"}},
	}
	h := NewPlannerHandler(repo)

	body := toolCallBody(t, "call-1", "updateTasks", map[string]any{
		"user_id": "user-1",
		"tasks": []map[string]any{
			{"id": "t1", "text": "write report", "isComplete": false},
			{"id": "t2", "text": "review PR", "is_complete": true},
		},
	})
	req := httptest.NewRequest("POST", "/tasks", body)
	w := httptest.NewRecorder()

	h.UpdateTasks(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var result plannerResult
	decodeResult(t, w.Body.Bytes(), &result)
	if result.TotalTasks != 2 || result.CompletedTasks != 1 {
		t.Errorf("counts = %d/%d, want 2/1", result.TotalTasks, result.CompletedTasks)
	}
	for _, task := range result.Tasks {
		if task.ID == "old" {
			t.Error("old task survived a full replacement")
		}
	}
}

func TestUpdateTasksValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing user_id", map[string]any{
			"tasks": []map[string]any{{"id": "t1", "text": "x", "isComplete": false}},
		}},
		{"missing text", map[string]any{
			"user_id": "user-1",
			"tasks":   []map[string]any{{"id": "t1", "isComplete": false}},
		}},
		{"missing id", map[string]any{
			"user_id": "user-1",
			"tasks":   []map[string]any{{"text": "x", "isComplete": false}},
		}},
		{"text too long", map[string]any{
			"user_id": "user-1",
			"tasks":   []map[string]any{{"id": "t1", "text": strings.Repeat("a", 501), "isComplete": false}},
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewPlannerHandler(newFakeDailyDocs())
			req := httptest.NewRequest("POST", "/tasks", toolCallBody(t, "call-1", "updateTasks", tt.args))
			w := httptest.NewRecorder()

			h.UpdateTasks(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCompleteTask(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	date := models.DateKey(time.Now())
	repo.planners[docKey("user-1", date)] = &models.Planner{
		UserID: "user-1",
		Date:   date,
		Tasks: []models.TaskItem{
			{ID: "t1", Text: "write report"},
			{ID: "t2", Text: "review PR"},
		},
	}
	h := NewPlannerHandler(repo)

	body := toolCallBody(t, "call-1", "completeTask", map[string]any{
		"user_id":     "user-1",
		"task_id":     "t1",
		"is_complete": true,
	})
	req := httptest.NewRequest("POST", "/tasks/complete", body)
	w := httptest.NewRecorder()

	h.CompleteTask(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var result plannerResult
	decodeResult(t, w.Body.Bytes(), &result)
	if result.CompletedTasks != 1 || result.TotalTasks != 2 {
		t.Errorf("counts = %d/%d, want 2 total 1 complete", result.TotalTasks, result.CompletedTasks)
	}
}

func TestCompleteTaskUnknownID(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	date := models.DateKey(time.Now())
	repo.planners[docKey("user-1", date)] = &models.Planner{
		UserID: "user-1",
		Date:   date,
		Tasks:  []models.TaskItem{{ID: "t1", Text: "write report"}},
	}
	h := NewPlannerHandler(repo)

	body := toolCallBody(t, "call-1", "completeTask", map[string]any{
		"user_id":     "user-1",
		"task_id":     "missing",
		"is_complete": true,
	})
	req := httptest.NewRequest("POST", "/tasks/complete", body)
	w := httptest.NewRecorder()

	h.CompleteTask(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", w.Code, w.Body.String())
	}
	if repo.planners[docKey("user-1", date)].Tasks[0].IsComplete {
		t.Error("stored task was mutated by a failed update")
	}
}

func TestCompleteTaskMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing user_id", map[string]any{
			"task_id": "t1", "is_complete": true,
		}},
		{"missing task_id", map[string]any{
			"user_id": "user-1", "is_complete": true,
		}},
		{"missing is_complete", map[string]any{
			"user_id": "user-1", "task_id": "t1",
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewPlannerHandler(newFakeDailyDocs())
			req := httptest.NewRequest("POST", "/tasks/complete", toolCallBody(t, "call-1", "completeTask", tt.args))
			w := httptest.NewRecorder()

			h.CompleteTask(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateMealsPartialMerge(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	date := models.DateKey(time.Now())
	repo.planners[docKey("user-1", date)] = &models.Planner{
		UserID: "user-1",
		Date:   date,
		Meals:  models.MealPlan{Breakfast: "eggs"},
	}
	h := NewPlannerHandler(repo)

	body := toolCallBody(t, "call-1", "updateMeals", map[string]any{
		"user_id": "user-1",
		"meals":   map[string]any{"lunch": "soup"},
	})
	req := httptest.NewRequest("POST", "/meals", body)
	w := httptest.NewRecorder()

	h.UpdateMeals(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var result plannerResult
	decodeResult(t, w.Body.Bytes(), &result)
	want := models.MealPlan{Breakfast: "eggs", Lunch: "soup"}
	if result.Meals != want {
		t.Errorf("meals = %+v, want %+v", result.Meals, want)
	}
}

func TestUpdateMealsMissingPatch(t *testing.T) {
	t.Parallel()

	h := NewPlannerHandler(newFakeDailyDocs())
	body := toolCallBody(t, "call-1", "updateMeals", map[string]any{
		"user_id": "user-1",
	})
	req := httptest.NewRequest("POST", "/meals", body)
	w := httptest.NewRecorder()

	h.UpdateMeals(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestUpdateMealsEmptyPatch(t *testing.T) {
	t.Parallel()

	h := NewPlannerHandler(newFakeDailyDocs())
	body := toolCallBody(t, "call-1", "updateMeals", map[string]any{
		"user_id": "user-1",
		"meals":   map[string]any{},
	})
	req := httptest.NewRequest("POST", "/meals", body)
	w := httptest.NewRecorder()

	h.UpdateMeals(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voxday/planner-api/internal/models"
)

func TestCreateToDo(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	h := NewTodoHandler(repo)

	body := toolCallBody(t, "call-1", "createToDo", map[string]any{
		"user_id":    "user-1",
		"to_do_list": []string{"buy milk", "walk the dog"},
	})
	req := httptest.NewRequest("POST", "/create", body)
	w := httptest.NewRecorder()

	h.CreateToDo(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var result listResult
	callID := decodeResult(t, w.Body.Bytes(), &result)
	if callID != "call-1" {
		t.Errorf("toolCallId = %q, want call-1", callID)
	}
	if result.TotalItems != 2 || result.CompletedItems != 0 {
		t.Errorf("counts = %d/%d, want 2/0", result.TotalItems, result.CompletedItems)
	}
	for _, item := range result.Items {
		if item.ID == "" {
			t.Error("item id is empty")
		}
		if item.IsComplete {
			t.Error("new item is marked complete")
		}
	}

	// Second create appends to the same day's document
	body = toolCallBody(t, "call-2", "createToDo", map[string]any{
		"user_id":    "user-1",
		"to_do_list": []string{"water plants"},
	})
	req = httptest.NewRequest("POST", "/create", body)
	w = httptest.NewRecorder()

	h.CreateToDo(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("second create status = %d, want 200", w.Code)
	}
	decodeResult(t, w.Body.Bytes(), &result)
	if result.TotalItems != 3 {
		t.Errorf("total after append = %d, want 3", result.TotalItems)
	}
}

func TestCreateToDoValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing user_id", map[string]any{"to_do_list": []string{"x"}}},
		{"empty list", map[string]any{"user_id": "user-1", "to_do_list": []string{}}},
		{"blank entry", map[string]any{"user_id": "user-1", "to_do_list": []string{"  "}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewTodoHandler(newFakeDailyDocs())
			req := httptest.NewRequest("POST", "/create", toolCallBody(t, "call-1", "createToDo", tt.args))
			w := httptest.NewRecorder()

			h.CreateToDo(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateToDoMalformedEnvelope(t *testing.T) {
	t.Parallel()

	h := NewTodoHandler(newFakeDailyDocs())
	req := httptest.NewRequest("POST", "/create", nil)
	w := httptest.NewRecorder()

	h.CreateToDo(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetToDoEmptyDefault(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	h := NewTodoHandler(repo)

	req := httptest.NewRequest("POST", "/get", toolCallBody(t, "call-1", "getToDo", map[string]any{"user_id": "user-1"}))
	w := httptest.NewRecorder()

	h.GetToDo(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var result listResult
	decodeResult(t, w.Body.Bytes(), &result)
	if result.TotalItems != 0 {
		t.Errorf("total = %d, want 0", result.TotalItems)
	}
	if result.Items == nil {
		t.Error("items should encode as an empty array, not null")
	}

	// A read must not create a document
	if len(repo.lists) != 0 {
		t.Errorf("read created %d documents, want 0", len(repo.lists))
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	date := models.DateKey(time.Now())
	repo.lists[docKey("user-1", date)] = &models.DailyList{
		UserID: "user-1",
		Date:   date,
		Items: []models.ListItem{
			{ID: "item-1", Text: "buy milk"},
			{ID: "item-2", Text: "walk the dog"},
		},
	}
	h := NewTodoHandler(repo)

	// snake_case completion field is accepted too
	body := toolCallBody(t, "call-1", "updateToDoStatus", map[string]any{
		"user_id": "user-1",
		"items": []map[string]any{
			{"id": "item-1", "isComplete": true},
			{"id": "item-2", "is_complete": true},
		},
	})
	req := httptest.NewRequest("POST", "/status", body)
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var result listResult
	decodeResult(t, w.Body.Bytes(), &result)
	if result.CompletedItems != 2 {
		t.Errorf("completed = %d, want 2", result.CompletedItems)
	}
}

func TestUpdateStatusUnknownItem(t *testing.T) {
	t.Parallel()

	repo := newFakeDailyDocs()
	date := models.DateKey(time.Now())
	repo.lists[docKey("user-1", date)] = &models.DailyList{
		UserID: "user-1",
		Date:   date,
		Items:  []models.ListItem{{ID: "item-1", Text: "buy milk"}},
	}
	h := NewTodoHandler(repo)

	body := toolCallBody(t, "call-1", "updateToDoStatus", map[string]any{
		"user_id": "user-1",
		"items":   []map[string]any{{"id": "missing", "isComplete": true}},
	})
	req := httptest.NewRequest("POST", "/status", body)
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if resp.Success || resp.Code != "not_found" {
		t.Errorf("error body = %+v, want success=false code=not_found", resp)
	}

	// Stored list untouched
	if repo.lists[docKey("user-1", date)].Items[0].IsComplete {
		t.Error("stored item was mutated by a failed batch")
	}
}

func TestUpdateStatusMissingCompletionField(t *testing.T) {
	t.Parallel()

	h := NewTodoHandler(newFakeDailyDocs())
	body := toolCallBody(t, "call-1", "updateToDoStatus", map[string]any{
		"user_id": "user-1",
		"items":   []map[string]any{{"id": "item-1"}},
	})
	req := httptest.NewRequest("POST", "/status", body)
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/models"
)

// fakeDailyDocs is an in-memory stand-in for the daily document store with
// the same create-on-write and not-found semantics.
type fakeDailyDocs struct {
	lists    map[string]*models.DailyList
	planners map[string]*models.Planner
	err      error
}

func newFakeDailyDocs() *fakeDailyDocs {
	return &fakeDailyDocs{
		lists:    make(map[string]*models.DailyList),
		planners: make(map[string]*models.Planner),
	}
}

func docKey(userID, date string) string { return userID + "|" + date }

func (f *fakeDailyDocs) GetList(_ context.Context, userID, date string) (*models.DailyList, error) {
	if f.err != nil {
		return nil, f.err
	}
	if list, ok := f.lists[docKey(userID, date)]; ok {
		return list, nil
	}
	return &models.DailyList{UserID: userID, Date: date, Items: []models.ListItem{}}, nil
}

func (f *fakeDailyDocs) AppendItems(_ context.Context, userID, date string, items []models.ListItem, writerID string) (*models.DailyList, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := docKey(userID, date)
	list, ok := f.lists[key]
	if !ok {
		list = &models.DailyList{UserID: userID, Date: date, CreatedAt: time.Now()}
		f.lists[key] = list
	}
	list.Items = append(list.Items, items...)
	list.LastModified = time.Now()
	list.ModifiedBy = writerID
	return list, nil
}

func (f *fakeDailyDocs) SetItemStatus(_ context.Context, userID, date string, updates []models.StatusUpdate, writerID string) (*models.DailyList, error) {
	if f.err != nil {
		return nil, f.err
	}
	list, ok := f.lists[docKey(userID, date)]
	if !ok {
		return nil, fmt.Errorf("to-do list for %s: %w", date, database.ErrNotFound)
	}
	for _, u := range updates {
		found := false
		for i := range list.Items {
			if list.Items[i].ID == u.ID {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("item %q: %w", u.ID, database.ErrNotFound)
		}
	}
	for _, u := range updates {
		for i := range list.Items {
			if list.Items[i].ID == u.ID {
				list.Items[i].IsComplete = u.IsComplete
			}
		}
	}
	list.ModifiedBy = writerID
	return list, nil
}

func (f *fakeDailyDocs) GetPlanner(_ context.Context, userID, date string) (*models.Planner, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.planners[docKey(userID, date)]; ok {
		return p, nil
	}
	return &models.Planner{UserID: userID, Date: date, Tasks: []models.TaskItem{}}, nil
}

func (f *fakeDailyDocs) ReplaceTasks(_ context.Context, userID, date string, tasks []models.TaskItem, writerID string) (*models.Planner, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := docKey(userID, date)
	p, ok := f.planners[key]
	if !ok {
		p = &models.Planner{UserID: userID, Date: date, CreatedAt: time.Now()}
		f.planners[key] = p
	}
	p.Tasks = tasks
	p.ModifiedBy = writerID
	return p, nil
}

func (f *fakeDailyDocs) SetTaskComplete(_ context.Context, userID, date, taskID string, isComplete bool, writerID string) (*models.Planner, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.planners[docKey(userID, date)]
	if !ok {
		return nil, fmt.Errorf("planner for %s: %w", date, database.ErrNotFound)
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			p.Tasks[i].IsComplete = isComplete
			p.ModifiedBy = writerID
			return p, nil
		}
	}
	return nil, fmt.Errorf("task %q: %w", taskID, database.ErrNotFound)
}

func (f *fakeDailyDocs) MergeMeals(_ context.Context, userID, date string, patch *models.MealPatch, writerID string) (*models.Planner, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := docKey(userID, date)
	p, ok := f.planners[key]
	if !ok {
		p = &models.Planner{UserID: userID, Date: date, CreatedAt: time.Now()}
		f.planners[key] = p
	}
	if patch.Breakfast != nil {
		p.Meals.Breakfast = *patch.Breakfast
	}
	if patch.Lunch != nil {
		p.Meals.Lunch = *patch.Lunch
	}
	if patch.Snacks != nil {
		p.Meals.Snacks = *patch.Snacks
	}
	if patch.Dinner != nil {
		p.Meals.Dinner = *patch.Dinner
	}
	p.ModifiedBy = writerID
	return p, nil
}

var _ database.DailyDocRepositoryInterface = (*fakeDailyDocs)(nil)

// toolCallBody builds a platform envelope wrapping one invocation.
func toolCallBody(t *testing.T, callID, name string, args any) *bytes.Buffer {
	t.Helper()
	rawArgs, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal arguments: %v", err)
	}
	body := map[string]any{
		"message": map[string]any{
			"toolCalls": []map[string]any{
				{
					"id":   callID,
					"type": "function",
					"function": map[string]any{
						"name":      name,
						"arguments": json.RawMessage(rawArgs),
					},
				},
			},
		},
	}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		t.Fatalf("failed to encode envelope: %v", err)
	}
	return buf
}

// decodeResult unmarshals the first tool result from a success response.
func decodeResult(t *testing.T, body []byte, out any) string {
	t.Helper()
	var resp struct {
		Results []struct {
			ToolCallID string          `json:"toolCallId"`
			Result     json.RawMessage `json:"result"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode results response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if out != nil {
		if err := json.Unmarshal(resp.Results[0].Result, out); err != nil {
			t.Fatalf("failed to decode result payload: %v", err)
		}
	}
	return resp.Results[0].ToolCallID
}

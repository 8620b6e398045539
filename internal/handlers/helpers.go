package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/envelope"
	"github.com/voxday/planner-api/internal/models"
	"github.com/voxday/planner-api/internal/validation"
)

// decodeToolCall extracts the first tool invocation from the request body,
// writing a 400 and returning false on a malformed envelope.
func decodeToolCall(w http.ResponseWriter, r *http.Request) (*envelope.ToolCall, bool) {
	call, err := envelope.DecodeFirst(r.Body)
	if err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return nil, false
	}
	return call, true
}

// validateArgs runs tag validation over bound tool arguments, writing a 400
// and returning false on the first violation.
func validateArgs(w http.ResponseWriter, args any) bool {
	if err := validation.Validate.Struct(args); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed,
				fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return false
		}
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, "Validation failed")
		return false
	}
	return true
}

// writeStoreError maps a repository error onto the platform error shape.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, database.ErrNotFound) {
		envelope.WriteError(w, http.StatusNotFound, envelope.CodeNotFound, err.Error())
		return
	}
	envelope.WriteError(w, http.StatusInternalServerError, envelope.CodeInternalError, "Failed to access daily document")
}

// listResult is the to-do list payload returned inside a tool result.
type listResult struct {
	Items          []models.ListItem `json:"items"`
	TotalItems     int               `json:"total_items"`
	CompletedItems int               `json:"completed_items"`
}

func newListResult(list *models.DailyList) listResult {
	items := list.Items
	if items == nil {
		items = []models.ListItem{}
	}
	return listResult{
		Items:          items,
		TotalItems:     list.TotalItems(),
		CompletedItems: list.CompletedItems(),
	}
}

// plannerResult is the planner payload returned inside a tool result.
type plannerResult struct {
	Tasks          []models.TaskItem `json:"tasks"`
	Meals          models.MealPlan   `json:"meals"`
	TotalTasks     int               `json:"total_tasks"`
	CompletedTasks int               `json:"completed_tasks"`
}

func newPlannerResult(p *models.Planner) plannerResult {
	tasks := p.Tasks
	if tasks == nil {
		tasks = []models.TaskItem{}
	}
	return plannerResult{
		Tasks:          tasks,
		Meals:          p.Meals,
		TotalTasks:     p.TotalTasks(),
		CompletedTasks: p.CompletedTasks(),
	}
}

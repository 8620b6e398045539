package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/envelope"
	"github.com/voxday/planner-api/internal/models"
	"github.com/voxday/planner-api/internal/validation"
)

// PlannerHandler serves the daily planner tools
type PlannerHandler struct {
	dailyDocs database.DailyDocRepositoryInterface
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(dailyDocs database.DailyDocRepositoryInterface) *PlannerHandler {
	return &PlannerHandler{dailyDocs: dailyDocs}
}

// RegisterRoutes registers planner tool routes on the given router
// The router should already have the /tools/planner prefix
func (h *PlannerHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/get", h.GetPlanner).Methods("POST")
	r.HandleFunc("/tasks", h.UpdateTasks).Methods("POST")
	r.HandleFunc("/tasks/complete", h.CompleteTask).Methods("POST")
	r.HandleFunc("/meals", h.UpdateMeals).Methods("POST")
}

// GetPlannerArgs is the argument payload for the get tool
type GetPlannerArgs struct {
	UserID string `json:"user_id" validate:"required"`
}

// UpdateTasksArgs is the argument payload for the tasks tool
type UpdateTasksArgs struct {
	UserID string               `json:"user_id" validate:"required"`
	Tasks  []validation.RawItem `json:"tasks" validate:"required,min=1,max=50"`
}

// CompleteTaskArgs is the argument payload for the tasks/complete tool
type CompleteTaskArgs struct {
	UserID     string `json:"user_id" validate:"required"`
	TaskID     string `json:"task_id" validate:"required"`
	IsComplete *bool  `json:"is_complete" validate:"required"`
}

// UpdateMealsArgs is the argument payload for the meals tool
type UpdateMealsArgs struct {
	UserID string            `json:"user_id" validate:"required"`
	Meals  *models.MealPatch `json:"meals" validate:"required"`
}

// GetPlanner returns today's planner, or the empty default without creating a row
func (h *PlannerHandler) GetPlanner(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args GetPlannerArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}

	planner, err := h.dailyDocs.GetPlanner(r.Context(), args.UserID, models.DateKey(time.Now()))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelope.WriteResult(w, call.ID, newPlannerResult(planner))
}

// UpdateTasks replaces today's task list wholesale
func (h *PlannerHandler) UpdateTasks(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args UpdateTasksArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}

	tasks, err := validation.NormalizeBatch(args.Tasks, true)
	if err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}

	planner, err := h.dailyDocs.ReplaceTasks(r.Context(), args.UserID, models.DateKey(time.Now()), tasks, call.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelope.WriteResult(w, call.ID, newPlannerResult(planner))
}

// CompleteTask flips one task's completion flag. An unknown id is a 404 and
// leaves the stored list unchanged.
func (h *PlannerHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args CompleteTaskArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}

	planner, err := h.dailyDocs.SetTaskComplete(r.Context(), args.UserID, models.DateKey(time.Now()), args.TaskID, *args.IsComplete, call.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelope.WriteResult(w, call.ID, newPlannerResult(planner))
}

// UpdateMeals merges a partial meal record into today's planner. Unspecified
// fields keep their prior value.
func (h *PlannerHandler) UpdateMeals(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args UpdateMealsArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}
	if err := validation.ValidateMealPatch(args.Meals); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}

	planner, err := h.dailyDocs.MergeMeals(r.Context(), args.UserID, models.DateKey(time.Now()), args.Meals, call.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelope.WriteResult(w, call.ID, newPlannerResult(planner))
}

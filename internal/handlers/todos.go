package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/envelope"
	"github.com/voxday/planner-api/internal/models"
	"github.com/voxday/planner-api/internal/validation"
)

// TodoHandler serves the to-do list tools
type TodoHandler struct {
	dailyDocs database.DailyDocRepositoryInterface
}

// NewTodoHandler creates a new to-do handler
func NewTodoHandler(dailyDocs database.DailyDocRepositoryInterface) *TodoHandler {
	return &TodoHandler{dailyDocs: dailyDocs}
}

// RegisterRoutes registers to-do tool routes on the given router
// The router should already have the /tools/todos prefix
func (h *TodoHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/create", h.CreateToDo).Methods("POST")
	r.HandleFunc("/get", h.GetToDo).Methods("POST")
	r.HandleFunc("/status", h.UpdateStatus).Methods("POST")
}

// CreateToDoArgs is the argument payload for the create tool
type CreateToDoArgs struct {
	UserID   string   `json:"user_id" validate:"required"`
	ToDoList []string `json:"to_do_list" validate:"required,min=1,max=50"`
}

// GetToDoArgs is the argument payload for the get tool
type GetToDoArgs struct {
	UserID string `json:"user_id" validate:"required"`
}

// UpdateStatusArgs is the argument payload for the status tool
type UpdateStatusArgs struct {
	UserID string               `json:"user_id" validate:"required"`
	Items  []validation.RawItem `json:"items" validate:"required,min=1,max=50"`
}

// CreateToDo appends new items to today's list, creating it on first write
func (h *TodoHandler) CreateToDo(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args CreateToDoArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}

	texts, err := validation.ValidateTexts(args.ToDoList)
	if err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}

	now := time.Now()
	items := make([]models.ListItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, models.ListItem{
			ID:         uuid.New().String(),
			Text:       text,
			IsComplete: false,
			CreatedAt:  now,
		})
	}

	list, err := h.dailyDocs.AppendItems(r.Context(), args.UserID, models.DateKey(now), items, call.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelope.WriteResult(w, call.ID, newListResult(list))
}

// GetToDo returns today's list, or the empty default without creating a row
func (h *TodoHandler) GetToDo(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args GetToDoArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}

	list, err := h.dailyDocs.GetList(r.Context(), args.UserID, models.DateKey(time.Now()))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelope.WriteResult(w, call.ID, newListResult(list))
}

// UpdateStatus flips completion flags on existing items. Unknown ids fail the
// whole batch and leave the stored list untouched.
func (h *TodoHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args UpdateStatusArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}

	normalized, err := validation.NormalizeBatch(args.Items, false)
	if err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}

	updates := make([]models.StatusUpdate, 0, len(normalized))
	for _, item := range normalized {
		updates = append(updates, models.StatusUpdate{ID: item.ID, IsComplete: item.IsComplete})
	}

	list, err := h.dailyDocs.SetItemStatus(r.Context(), args.UserID, models.DateKey(time.Now()), updates, call.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	envelope.WriteResult(w, call.ID, newListResult(list))
}

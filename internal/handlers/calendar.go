package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voxday/planner-api/internal/envelope"
	"github.com/voxday/planner-api/internal/services/calendar"
)

// CalendarHandler passes calendar lookups through to the upstream calendar API
type CalendarHandler struct {
	events calendar.EventLister
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(events calendar.EventLister) *CalendarHandler {
	return &CalendarHandler{events: events}
}

// RegisterRoutes registers calendar tool routes on the given router
// The router should already have the /tools/calendar prefix
func (h *CalendarHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/events", h.ListEvents).Methods("POST")
}

// ListEventsArgs is the argument payload for the events tool
type ListEventsArgs struct {
	UserID string `json:"user_id" validate:"required"`
}

// ListEvents returns the user's events for the next 24 hours, capped at 50.
// Upstream failures surface as a 500; there are no retries.
func (h *CalendarHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	call, ok := decodeToolCall(w, r)
	if !ok {
		return
	}

	var args ListEventsArgs
	if err := call.BindArguments(&args); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, err.Error())
		return
	}
	if !validateArgs(w, args) {
		return
	}

	events, err := h.events.ListUpcoming(r.Context(), args.UserID)
	if err != nil {
		envelope.WriteError(w, http.StatusInternalServerError, envelope.CodeUpstreamError, "Failed to fetch calendar events")
		return
	}
	if events == nil {
		events = []calendar.Event{}
	}

	envelope.WriteResult(w, call.ID, map[string]any{"events": events})
}

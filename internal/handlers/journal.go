package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/envelope"
	"github.com/voxday/planner-api/internal/models"
)

// JournalHandler saves free-form journal payloads. Unlike the tool endpoints
// the caller puts the shared secret inside the body as `apiKey`; the voice
// platform's end-of-call hook cannot set custom headers.
type JournalHandler struct {
	journal      database.JournalRepositoryInterface
	sharedSecret string
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journal database.JournalRepositoryInterface, sharedSecret string) *JournalHandler {
	return &JournalHandler{journal: journal, sharedSecret: sharedSecret}
}

// RegisterRoutes registers journal routes on the given router
func (h *JournalHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.SaveEntry).Methods("POST")
}

// SaveEntry validates the in-payload key and persists the remaining fields
// verbatim.
func (h *JournalHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, "malformed JSON body")
		return
	}

	apiKey, _ := payload["apiKey"].(string)
	if h.sharedSecret == "" || apiKey == "" ||
		subtle.ConstantTimeCompare([]byte(apiKey), []byte(h.sharedSecret)) != 1 {
		envelope.WriteError(w, http.StatusUnauthorized, envelope.CodeUnauthorized, "Missing or invalid API key")
		return
	}
	delete(payload, "apiKey")

	userID, _ := payload["user_id"].(string)
	if userID == "" {
		envelope.WriteError(w, http.StatusBadRequest, envelope.CodeValidationFailed, "user_id is required")
		return
	}

	entry := &models.JournalEntry{
		UserID:  userID,
		Payload: payload,
	}
	if err := h.journal.Create(r.Context(), entry); err != nil {
		envelope.WriteError(w, http.StatusInternalServerError, envelope.CodeInternalError, "Failed to save journal entry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := map[string]any{
		"success":   true,
		"id":        entry.ID,
		"data":      payload,
		"timestamp": entry.CreatedAt.Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

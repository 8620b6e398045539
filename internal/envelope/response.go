package envelope

import (
	"encoding/json"
	"net/http"
	"time"
)

// Error codes carried in 4xx/5xx bodies.
const (
	CodeUnauthorized     = "unauthorized"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeUpstreamError    = "upstream_error"
	CodeInternalError    = "internal_error"
)

// ToolResult pairs a tool invocation id with its result payload.
type ToolResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     any    `json:"result"`
}

// ResultsResponse is the success wrapper the platform expects.
type ResultsResponse struct {
	Results []ToolResult `json:"results"`
}

// ErrorResponse is the body shape for all 4xx/5xx responses.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
}

// WriteResult writes a 200 response wrapping result for the given tool call.
func WriteResult(w http.ResponseWriter, toolCallID string, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := ResultsResponse{
		Results: []ToolResult{{ToolCallID: toolCallID, Result: result}},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError writes an error response with the given status and code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

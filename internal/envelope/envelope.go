// Package envelope decodes the voice platform's tool-call request wrapper and
// builds the response shapes it expects.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
)

// ToolCall is one named function invocation extracted from a request envelope.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

type rawFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type rawToolCall struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Function rawFunction `json:"function"`
}

type rawMessage struct {
	ToolCalls []rawToolCall `json:"toolCalls"`
}

// Envelope is the platform's request wrapper carrying tool invocations.
type Envelope struct {
	Message rawMessage `json:"message"`
}

// ValidationError reports a malformed envelope. Handlers map it to a 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid tool-call envelope: " + e.Reason
}

// DecodeFirst reads a request body and extracts the first tool invocation.
// Invocations after the first are ignored; the platform is expected to send
// one call per request and batched results are not supported.
func DecodeFirst(body io.Reader) (*ToolCall, error) {
	var env Envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return FirstCall(&env)
}

// FirstCall extracts the first tool invocation from a decoded envelope.
func FirstCall(env *Envelope) (*ToolCall, error) {
	if len(env.Message.ToolCalls) == 0 {
		return nil, &ValidationError{Reason: "message.toolCalls is missing or empty"}
	}
	tc := env.Message.ToolCalls[0]
	if len(tc.Function.Arguments) == 0 || string(tc.Function.Arguments) == "null" {
		return nil, &ValidationError{Reason: "toolCalls[0].function.arguments is missing"}
	}
	return &ToolCall{
		ID:        tc.ID,
		Name:      tc.Function.Name,
		Arguments: tc.Function.Arguments,
	}, nil
}

// BindArguments unmarshals the invocation arguments into v. The platform
// sends arguments either as a JSON object or as a JSON-encoded string holding
// an object; both are accepted.
func (tc *ToolCall) BindArguments(v any) error {
	raw := tc.Arguments
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return &ValidationError{Reason: fmt.Sprintf("arguments string is not valid JSON: %v", err)}
		}
		raw = json.RawMessage(s)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("arguments do not match expected shape: %v", err)}
	}
	return nil
}

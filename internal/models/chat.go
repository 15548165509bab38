package models

import (
	"bytes"
	"encoding/json"
)

// Action is a suggested follow-up. Value is either a phrase the client
// resubmits as the next message or an external URL.
type Action struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AgentResult is the reply returned for every chat message
type AgentResult struct {
	Text    string   `json:"text"`
	Actions []Action `json:"actions,omitempty"`
	Notice  string   `json:"notice,omitempty"`
}

// ChatRequest represents an incoming chat message.
// Message is kept raw so that non-string payloads can be coerced to text.
type ChatRequest struct {
	Message json.RawMessage `json:"message"`
}

// Text returns the message as a string. A JSON string is unquoted, null or a
// missing field yields "", and any other JSON value is used as its literal text.
func (r ChatRequest) Text() string {
	raw := bytes.TrimSpace(r.Message)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

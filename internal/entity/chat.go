package entity

import (
	"fmt"
	"strings"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one entry of the conversation history posted by the client.
type ChatMessage struct {
	Text   string  `json:"text"`
	Sender Sender  `json:"sender"`
	Image  *string `json:"image,omitempty"`
}

// ChatRequest is the decoded form of POST /api/chat.
type ChatRequest struct {
	Messages  []ChatMessage
	Workspace string
	UserID    string
	OrgID     string
}

type EmailSequence struct {
	Content               string `json:"content"`
	ShouldUpdateWorkspace bool   `json:"should_update_workspace"`
}

type ChatResponse struct {
	Text          string         `json:"text"`
	Sender        Sender         `json:"sender"`
	Reasoning     string         `json:"reasoning"`
	EmailSequence *EmailSequence `json:"email_sequence"`
}

type ChatEnvelope struct {
	Message *ChatResponse `json:"message"`
}

// ContextRecord is a flat description of a user or an organization
// that gets injected into the system prompt.
type ContextRecord map[string]any

// Field returns the string form of key, or "N/A" when it is missing or empty.
func (r ContextRecord) Field(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return "N/A"
	}

	switch val := v.(type) {
	case string:
		if val == "" {
			return "N/A"
		}
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

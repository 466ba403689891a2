package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/futig/outreach-backend/internal/entity"
)

// codeFence matches a leading ```json fence or a trailing ``` fence.
var codeFence = regexp.MustCompile("^```json\\s*|\\s*```$")

type completionPayload struct {
	Text          json.RawMessage `json:"text"`
	Reasoning     json.RawMessage `json:"reasoning"`
	EmailSequence json.RawMessage `json:"email_sequence"`
}

// ParseCompletion turns the raw model output into a ChatResponse.
// Anything that is not a JSON object, or carries a non-string text or
// reasoning, is reported as entity.ErrMalformedCompletion.
func ParseCompletion(raw string) (*entity.ChatResponse, error) {
	cleaned := codeFence.ReplaceAllString(strings.TrimSpace(raw), "")

	trimmed := bytes.TrimSpace([]byte(cleaned))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", entity.ErrMalformedCompletion)
	}

	var payload completionPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedCompletion, err)
	}

	text, err := optionalString(payload.Text, "text")
	if err != nil {
		return nil, err
	}

	reasoning, err := optionalString(payload.Reasoning, "reasoning")
	if err != nil {
		return nil, err
	}

	return &entity.ChatResponse{
		Text:          text,
		Sender:        entity.SenderAssistant,
		Reasoning:     reasoning,
		EmailSequence: parseEmailSequence(payload.EmailSequence),
	}, nil
}

func optionalString(raw json.RawMessage, field string) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", entity.ErrMalformedCompletion, field)
	}

	return s, nil
}

// parseEmailSequence keeps the sequence only when it is an object with a
// non-empty string content. Every other shape means "no sequence".
func parseEmailSequence(raw json.RawMessage) *entity.EmailSequence {
	if len(raw) == 0 {
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil
	}

	var content string
	if err := json.Unmarshal(obj["content"], &content); err != nil || content == "" {
		return nil
	}

	return &entity.EmailSequence{
		Content:               content,
		ShouldUpdateWorkspace: true,
	}
}

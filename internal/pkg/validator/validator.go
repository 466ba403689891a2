package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/futig/outreach-backend/internal/entity"
)

// Validator checks request shapes before they reach the use cases.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// saveSequenceFields are required in a save request. Empty strings are
// valid values, JSON null is not.
var saveSequenceFields = []string{"id", "user_id", "org_id", "name", "content", "messages"}

// DecodeSaveSequence parses a save request body. Numbers inside messages
// are kept as json.Number so large integers survive the round trip.
func (v *Validator) DecodeSaveSequence(body []byte) (*entity.SaveSequenceRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object: %v", entity.ErrInvalidParameter, err)
	}

	var missing []string
	for _, name := range saveSequenceFields {
		raw, ok := fields[name]
		if !ok || string(bytes.TrimSpace(raw)) == "null" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingField, strings.Join(missing, ", "))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var req entity.SaveSequenceRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	return &req, nil
}

// DecodeChatMessages parses the messages form field of the chat endpoint.
// An empty field counts as missing. Any other decode failure is returned
// unwrapped so callers treat it as a server error.
func (v *Validator) DecodeChatMessages(raw string) ([]entity.ChatMessage, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: messages", entity.ErrMissingField)
	}

	var messages []entity.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if messages == nil {
		return nil, errors.New("decode messages: messages is null")
	}

	return messages, nil
}

// ValidateExportFormat resolves the export format, defaulting to markdown.
func (v *Validator) ValidateExportFormat(raw string) (entity.ExportFormat, error) {
	if raw == "" {
		return entity.FormatMarkdown, nil
	}

	format := entity.ExportFormat(strings.ToLower(raw))
	if !format.IsValid() {
		return "", fmt.Errorf("%w: unsupported export format %q (allowed: markdown, pdf, docx)", entity.ErrInvalidFormat, raw)
	}

	return format, nil
}

// SanitizeFilename makes an id safe to use inside a Content-Disposition filename.
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"\"", "",
		"\\", "",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}

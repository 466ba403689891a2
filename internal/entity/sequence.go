package entity

import "time"

// Sequence is a persisted recruiting email draft together with the chat
// history it was generated from.
type Sequence struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	OrgID     string           `json:"org_id"`
	Name      string           `json:"name"`
	Content   string           `json:"content"`
	Messages  []map[string]any `json:"messages"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type SaveSequenceRequest struct {
	ID       string           `json:"id"`
	UserID   string           `json:"user_id"`
	OrgID    string           `json:"org_id"`
	Name     string           `json:"name"`
	Content  string           `json:"content"`
	Messages []map[string]any `json:"messages"`
}

type SequenceDTO struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	OrgID     string           `json:"org_id"`
	Name      string           `json:"name"`
	Content   string           `json:"content"`
	Messages  []map[string]any `json:"messages"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

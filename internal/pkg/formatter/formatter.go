package formatter

import (
	"fmt"

	"github.com/futig/outreach-backend/internal/entity"
)

// defaultTitle is used when a sequence has no name.
const defaultTitle = "Email sequence"

// Formatter renders a titled plain-text document.
type Formatter interface {
	Format(title, body string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidFormat, format)
	}
}

func titleOrDefault(title string) string {
	if title == "" {
		return defaultTitle
	}
	return title
}

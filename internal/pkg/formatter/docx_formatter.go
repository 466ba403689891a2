package formatter

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

// SetLicenseKey installs the unioffice metered API key. Saving a document
// fails with "unioffice license required" until a key is set.
func SetLicenseKey(key string) error {
	return license.SetMeteredKey(key)
}

// DOCXLicensed reports whether DOCX output can be saved.
func DOCXLicensed() bool {
	return license.GetLicenseKey().IsLicensed()
}

func (df *DOCXFormatter) Format(title, body string) ([]byte, error) {
	doc := buildDocument(title, body)
	defer doc.Close()

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildDocument writes one paragraph per blank-line separated block so the
// greeting, body and sign-off of each email stay apart.
func buildDocument(title, body string) *document.Document {
	doc := document.New()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(titleOrDefault(title))

	for _, block := range strings.Split(body, "\n\n") {
		run := doc.AddParagraph().AddRun()
		for i, line := range strings.Split(block, "\n") {
			if i > 0 {
				run.AddBreak()
			}
			run.AddText(line)
		}
	}

	return doc
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}

package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	pdfFontName = "DejaVuSans"

	// Looked up relative to the working directory, first next to the
	// binary and then from the repository root.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	for _, path := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(title, body string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(titleOrDefault(title), true)
	pdf.AddPage()

	// Core fonts only cover latin-1; use the bundled UTF-8 font when present.
	fontName := "Arial"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		translate = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.MultiCell(0, 9, translate(titleOrDefault(title)), "", "", false)
	pdf.Ln(4)

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, translate(body), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}

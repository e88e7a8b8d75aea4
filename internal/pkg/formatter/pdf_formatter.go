package formatter

import (
	"bytes"
	"os"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied to /app/ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path, for running from the repo root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (mf *PDFFormatter) Format(doc *entity.ReportDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	// Core fonts only cover cp1252, so text is translated when no UTF-8 font is bundled.
	fontName := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.MultiCell(0, 10, tr(doc.Title), "", "C", false)
	pdf.Ln(4)

	for _, d := range doc.Details {
		pdf.SetFont(fontName, "B", 11)
		pdf.CellFormat(40, 7, tr(d.Label+":"), "", 0, "", false, 0, "")
		pdf.SetFont(fontName, "", 11)
		pdf.CellFormat(0, 7, tr(d.Value), "", 1, "", false, 0, "")
	}
	pdf.Ln(6)

	writePDFSection(pdf, fontName, tr, doc.Feedback)
	if doc.Questions != nil {
		writePDFSection(pdf, fontName, tr, *doc.Questions)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFSection(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, s entity.DocumentSection) {
	pdf.SetFont(fontName, "B", 14)
	pdf.Cell(0, 10, tr(s.Heading))
	pdf.Ln(10)

	pdf.SetFont(fontName, "", 11)
	_, lineHeight := pdf.GetFontSize()
	for _, p := range s.Paragraphs {
		pdf.MultiCell(0, lineHeight*1.5, tr(p), "", "", false)
	}
	pdf.Ln(4)
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}

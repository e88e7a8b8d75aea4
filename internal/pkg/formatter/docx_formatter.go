package formatter

import (
	"bytes"

	"github.com/futig/interview-backend/internal/entity"
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

func (mf *DOCXFormatter) Format(rd *entity.ReportDocument) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Title")
	titlePar.AddRun().AddText(rd.Title)

	for _, d := range rd.Details {
		par := doc.AddParagraph()
		label := par.AddRun()
		label.Properties().SetBold(true)
		label.AddText(d.Label + ": ")
		par.AddRun().AddText(d.Value)
	}

	addDOCXSection(doc, rd.Feedback)
	if rd.Questions != nil {
		addDOCXSection(doc, *rd.Questions)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addDOCXSection(doc *document.Document, s entity.DocumentSection) {
	heading := doc.AddParagraph()
	heading.SetStyle("Heading1")
	heading.AddRun().AddText(s.Heading)

	for _, p := range s.Paragraphs {
		doc.AddParagraph().AddRun().AddText(p)
	}
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}

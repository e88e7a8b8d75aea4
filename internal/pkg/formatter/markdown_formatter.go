package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/interview-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc *entity.ReportDocument) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", doc.Title)

	for _, d := range doc.Details {
		fmt.Fprintf(&buf, "- **%s:** %s\n", d.Label, d.Value)
	}
	buf.WriteString("\n")

	writeMarkdownSection(&buf, doc.Feedback)
	if doc.Questions != nil {
		writeMarkdownSection(&buf, *doc.Questions)
	}

	return buf.Bytes(), nil
}

func writeMarkdownSection(buf *bytes.Buffer, s entity.DocumentSection) {
	fmt.Fprintf(buf, "## %s\n\n", s.Heading)
	for _, p := range s.Paragraphs {
		fmt.Fprintf(buf, "%s\n\n", p)
	}
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}

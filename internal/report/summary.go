package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/futig/interview-backend/internal/entity"
)

var summaryTmpl = template.Must(template.New("summary").Parse(`<div class="interview-summary">
<h2><i class="fas fa-chart-bar"></i> Interview Complete!</h2>
<div class="score-summary">
<div class="score-circle">
<span class="score">{{.Average}}</span>
<span class="score-label">Average Score</span>
</div>
</div>
<div class="summary-stats">
<p><strong>Domain:</strong> {{.Domain}}</p>
<p><strong>Level:</strong> {{.Level}}</p>
<p><strong>Questions Answered:</strong> {{.TotalQuestions}}</p>
<p><strong>Interview Date:</strong> {{.Date}}</p>
</div>
<div class="feedback-section">
<h3>Comprehensive Feedback</h3>
<p>{{range $i, $line := .FeedbackLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
</div>
</div>`))

type summaryView struct {
	Average        string
	Domain         string
	Level          string
	TotalQuestions int
	Date           string
	FeedbackLines  []string
}

// SummaryHTML renders the completion fragment shown when the interview ends.
// Every value is escaped. Feedback newlines become line breaks.
func SummaryHTML(r *entity.ReportData) (string, error) {
	view := summaryView{
		Average:        FormatAverage(r.AverageScore),
		Domain:         r.Domain,
		Level:          r.Level,
		TotalQuestions: r.TotalQuestions,
		Date:           r.Date.Format(DateLayout),
		FeedbackLines:  strings.Split(r.Feedback, "\n"),
	}

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

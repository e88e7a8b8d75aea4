// Package report aggregates a finished interview into its report snapshot,
// the downloadable document and the completion fragment.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/futig/interview-backend/internal/entity"
)

// DateLayout is used wherever the interview date is displayed.
const DateLayout = "2006-01-02 15:04:05"

const (
	BandExcellent        = "Excellent"
	BandGood             = "Good"
	BandAverage          = "Average"
	BandNeedsImprovement = "Needs Improvement"
)

// Average returns the arithmetic mean of scores, or 0 for no scores.
func Average(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// FormatAverage renders avg with one decimal, e.g. "7.3".
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}

// FormatScore renders a single score keeping at least one decimal: 7 is
// "7.0" and 7.25 stays "7.25".
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// PerformanceBand maps an average score to its band. Lower bounds are inclusive.
func PerformanceBand(avg float64) string {
	switch {
	case avg >= 8:
		return BandExcellent
	case avg >= 6:
		return BandGood
	case avg >= 4:
		return BandAverage
	default:
		return BandNeedsImprovement
	}
}

// FallbackReport is the narrative used when the backend cannot write one.
func FallbackReport(domain, level string, avg float64, totalQuestions int) string {
	band := PerformanceBand(avg)

	var b strings.Builder
	fmt.Fprintf(&b, "**Overall Performance:** %s\n\n", band)
	fmt.Fprintf(&b, "**Summary:** You completed %d questions in the %s interview at %s level with an average score of %s/10.\n\n",
		totalQuestions, domain, level, FormatAverage(avg))
	b.WriteString("**Strengths:** You demonstrated good problem-solving approach and technical understanding in several areas.\n\n")
	b.WriteString("**Areas for Improvement:** Continue practicing core concepts and consider working on more complex scenarios.\n\n")
	fmt.Fprintf(&b, "**Recommendations:** Keep practicing %s concepts, work on personal projects, and consider reviewing fundamental principles.\n\n", domain)
	fmt.Fprintf(&b, "**Final Assessment:** %s - Keep up the good work and continue learning!", band)

	return b.String()
}

// Build snapshots session into report data. The slices are copied so later
// changes to the session do not leak into the report.
func Build(s *entity.Session, feedback string, now time.Time) *entity.ReportData {
	return &entity.ReportData{
		InterviewID:    s.ID,
		Domain:         s.Domain,
		Level:          s.Level,
		Date:           now,
		TotalQuestions: len(s.AskedQuestions),
		AverageScore:   Average(s.Scores),
		Questions:      append([]string(nil), s.AskedQuestions...),
		Answers:        append([]string(nil), s.Answers...),
		Scores:         append([]float64(nil), s.Scores...),
		Feedback:       feedback,
	}
}

// BuildDocument lays the report out in download order: title, details,
// feedback and, when there is anything to pair, per-question scores.
func BuildDocument(r *entity.ReportData) *entity.ReportDocument {
	doc := &entity.ReportDocument{
		Title: "Technical Interview Report - " + r.Domain,
		Details: []entity.DocumentField{
			{Label: "Interview ID", Value: r.InterviewID},
			{Label: "Domain", Value: r.Domain},
			{Label: "Level", Value: r.Level},
			{Label: "Date", Value: r.Date.Format(DateLayout)},
			{Label: "Total Questions", Value: strconv.Itoa(r.TotalQuestions)},
			{Label: "Average Score", Value: FormatAverage(r.AverageScore) + "/10"},
		},
		Feedback: entity.DocumentSection{
			Heading:    "Comprehensive Feedback",
			Paragraphs: Paragraphs(r.Feedback),
		},
	}

	if len(r.Questions) == 0 || len(r.Scores) == 0 {
		return doc
	}

	// The last question may still be unanswered, so pair up to the shorter side.
	n := min(len(r.Questions), len(r.Scores))
	section := &entity.DocumentSection{
		Heading:    "Question Performance",
		Paragraphs: make([]string, 0, 2*n),
	}
	for i := 0; i < n; i++ {
		section.Paragraphs = append(section.Paragraphs,
			fmt.Sprintf("Q%d: %s", i+1, r.Questions[i]),
			fmt.Sprintf("Score: %s/10", FormatScore(r.Scores[i])),
		)
	}
	doc.Questions = section

	return doc
}

// Paragraphs splits text on newlines and drops blank lines.
func Paragraphs(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

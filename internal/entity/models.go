package entity

import (
	"time"
)

type SessionStatus string

// Session status represents the state of an interview. A session that is
// not present in the store is the implicit "empty" state.
const (
	SessionStatusActive SessionStatus = "ACTIVE" // At least one question asked, answers accepted
	SessionStatusEnded  SessionStatus = "ENDED"  // Report built, session is read-only
)

// Session is the per-interview record.
//
// Invariants: len(Scores) == len(Answers); AskedQuestions holds no exact-text
// duplicates; while active there is normally one outstanding question, so
// len(AskedQuestions) == len(Answers)+1 unless a duplicate next question was dropped.
type Session struct {
	ID             string        `json:"session_id"`
	Domain         string        `json:"domain"`
	Level          string        `json:"level"`
	Status         SessionStatus `json:"session_status"`
	AskedQuestions []string      `json:"asked_questions"`
	Answers        []string      `json:"answers"`
	Scores         []float64     `json:"scores"`
	Report         *ReportData   `json:"report,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// HasAsked reports whether the exact question text was already asked.
func (s *Session) HasAsked(question string) bool {
	for _, q := range s.AskedQuestions {
		if q == question {
			return true
		}
	}
	return false
}

// AddQuestion appends question unless it is empty or a duplicate.
func (s *Session) AddQuestion(question string) bool {
	if question == "" || s.HasAsked(question) {
		return false
	}
	s.AskedQuestions = append(s.AskedQuestions, question)
	return true
}

// RecordAnswer appends an answer together with its score.
func (s *Session) RecordAnswer(answer string, score float64) {
	s.Answers = append(s.Answers, answer)
	s.Scores = append(s.Scores, score)
}

func (s *Session) IsEnded() bool {
	return s.Status == SessionStatusEnded
}

// ReportData is the frozen snapshot produced when an interview ends.
type ReportData struct {
	InterviewID    string    `json:"interview_id"`
	Domain         string    `json:"domain"`
	Level          string    `json:"level"`
	Date           time.Time `json:"date"`
	TotalQuestions int       `json:"total_questions"`
	AverageScore   float64   `json:"average_score"`
	Questions      []string  `json:"questions"`
	Answers        []string  `json:"answers"`
	Scores         []float64 `json:"scores"`
	Feedback       string    `json:"feedback"`
}

// MCItem is a validated multiple-choice question.
type MCItem struct {
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"min=3,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
	Explanation  string   `json:"explanation" validate:"required"`
}

// ReportDocument is the ordered, format-independent content of a downloadable report.
type ReportDocument struct {
	Title     string
	Details   []DocumentField
	Feedback  DocumentSection
	Questions *DocumentSection
}

type DocumentField struct {
	Label string
	Value string
}

type DocumentSection struct {
	Heading    string
	Paragraphs []string
}

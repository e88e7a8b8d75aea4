package entity

type ResultFormat string

const (
	FormatPDF      ResultFormat = "pdf"
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatPDF, FormatMarkdown, FormatDOCX:
		return true
	default:
		return false
	}
}

type StartInterviewRequest struct {
	Domain string `json:"domain" validate:"max=100"`
	Level  string `json:"level" validate:"max=50"`
}

// AnswerRequest.Answer is nil only when the field was left out; an empty
// answer is still evaluated.
type AnswerRequest struct {
	Answer *string `json:"answer" validate:"required,max=10000"`
	Domain string `json:"domain" validate:"max=100"`
	Level  string `json:"level" validate:"max=50"`
}

type EndInterviewRequest struct {
	Domain string `json:"domain" validate:"max=100"`
	Level  string `json:"level" validate:"max=50"`
}

type TechnicalQuestionRequest struct {
	Topics []string `json:"topics" validate:"max=20,dive,required,max=100"`
	Level  string   `json:"level" validate:"max=50"`
}

// StartResult is returned by the start transition.
type StartResult struct {
	SessionID string   `json:"-"`
	Question  string   `json:"reply"`
	Tips      []string `json:"tips"`
}

// TurnResult carries the evaluation HTML, a separator and the next question HTML.
type TurnResult struct {
	Combined string `json:"reply"`
}

type EndResult struct {
	EvaluationHTML string `json:"evaluation"`
	Score          string `json:"score"`
	Feedback       string `json:"feedback"`
	CanDownload    bool   `json:"can_download"`
}

type TechnicalQuestionResponse struct {
	Question *MCItem `json:"question"`
}

// ReportFile is a rendered report ready to be sent as an attachment.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/logger"
	"github.com/futig/interview-backend/internal/pkg/metrics"
	"github.com/futig/interview-backend/internal/pkg/prompt"
	"github.com/futig/interview-backend/internal/pkg/sanitizer"
	"github.com/futig/interview-backend/internal/report"
	"github.com/futig/interview-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// TurnSeparator divides the evaluation from the next question in a turn reply.
const TurnSeparator = "<hr>"

// InterviewUsecase drives interviews from start to report.
type InterviewUsecase struct {
	sessionRepo  repository.SessionRepository
	llmConnector LLMConnector
	formatters   FormatterFactory
	llmCfg       config.LLMConnectorConfig
	interviewCfg config.InterviewConfig
	domainTips   map[string][]string
	now          func() time.Time
	newID        func() string
	logger       *zap.Logger
}

type Option func(*InterviewUsecase)

// WithClock replaces time.Now, used to stamp sessions and reports.
func WithClock(now func() time.Time) Option {
	return func(uc *InterviewUsecase) {
		uc.now = now
	}
}

// WithIDGenerator replaces the random session id source.
func WithIDGenerator(newID func() string) Option {
	return func(uc *InterviewUsecase) {
		uc.newID = newID
	}
}

func NewUsecase(
	sessionRepo repository.SessionRepository,
	llmConnector LLMConnector,
	formatters FormatterFactory,
	cfg *config.Config,
	logger *zap.Logger,
	opts ...Option,
) *InterviewUsecase {
	uc := &InterviewUsecase{
		sessionRepo:  sessionRepo,
		llmConnector: llmConnector,
		formatters:   formatters,
		llmCfg:       cfg.LLMConnectorCfg,
		interviewCfg: cfg.InterviewCfg,
		domainTips:   cfg.DomainTips,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Start opens a new interview and asks its first question. A non-empty
// previousID names the caller's earlier session, which is disposed of.
func (uc *InterviewUsecase) Start(ctx context.Context, previousID, domain, level string) (*entity.StartResult, error) {
	ctx = logger.Ensure(ctx, uc.logger)
	domain, level = uc.resolve(domain, level, nil)

	if err := uc.dispose(ctx, previousID); err != nil {
		ctxzap.Warn(ctx, "failed to dispose previous session", zap.String("previous_session_id", previousID), zap.Error(err))
	}

	now := uc.now()
	session := &entity.Session{
		ID:        uc.newID(),
		Domain:    domain,
		Level:     level,
		Status:    entity.SessionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ctx = logger.WithSession(ctx, session.ID)

	raw, formatted := uc.firstQuestion(ctx, domain, level)
	session.AddQuestion(raw)

	if err := uc.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	metrics.RecordEvent(metrics.EventStarted)
	ctxzap.Info(ctx, "interview started", zap.String("domain", domain), zap.String("level", level))

	return &entity.StartResult{
		SessionID: session.ID,
		Question:  formatted,
		Tips:      uc.tipsFor(domain),
	}, nil
}

// RecordTurn evaluates the answer to the outstanding question and asks the
// next one. The reply always carries the evaluation first.
func (uc *InterviewUsecase) RecordTurn(ctx context.Context, sessionID, answer, domain, level string) (*entity.TurnResult, error) {
	ctx = logger.Ensure(ctx, uc.logger)
	session, release, err := uc.sessionRepo.AcquireSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer release()

	if session.IsEnded() {
		return nil, entity.ErrSessionEnded
	}

	ctx = logger.WithSession(ctx, session.ID)
	domain, level = uc.resolve(domain, level, session)

	evaluationHTML, sc := uc.evaluate(ctx, domain, level, answer)
	session.RecordAnswer(answer, sc)
	metrics.ObserveScore(sc)

	questionHTML := uc.nextQuestion(ctx, session, domain, level)

	session.UpdatedAt = uc.now()
	if err := uc.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.RecordEvent(metrics.EventTurn)
	ctxzap.Info(ctx, "turn recorded",
		zap.Float64("score", sc),
		zap.Int("answers", len(session.Answers)),
		zap.Int("asked_questions", len(session.AskedQuestions)),
	)

	return &entity.TurnResult{
		Combined: evaluationHTML + TurnSeparator + questionHTML,
	}, nil
}

// End finalizes the interview and freezes its report. Ending an already
// ended interview returns the frozen report again.
func (uc *InterviewUsecase) End(ctx context.Context, sessionID, domain, level string) (*entity.EndResult, error) {
	ctx = logger.Ensure(ctx, uc.logger)
	session, release, err := uc.sessionRepo.AcquireSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer release()

	ctx = logger.WithSession(ctx, session.ID)

	if session.IsEnded() && session.Report != nil {
		ctxzap.Info(ctx, "interview already ended, returning frozen report")
		return endResult(session.Report)
	}

	domain, level = uc.resolve(domain, level, session)
	total := len(session.AskedQuestions)
	avg := report.Average(session.Scores)

	feedback := uc.feedback(ctx, domain, level, total, avg)

	rd := report.Build(session, feedback, uc.now())
	rd.Domain = domain
	rd.Level = level

	session.Report = rd
	session.Status = entity.SessionStatusEnded
	session.UpdatedAt = rd.Date
	if err := uc.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.RecordEvent(metrics.EventEnded)
	ctxzap.Info(ctx, "interview ended",
		zap.Int("total_questions", total),
		zap.Float64("average_score", avg),
	)

	return endResult(rd)
}

// Download renders the frozen report of an ended interview.
func (uc *InterviewUsecase) Download(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ReportFile, error) {
	if sessionID == "" {
		return nil, entity.ErrSessionMissing
	}
	if format == "" {
		format = entity.FormatPDF
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.Report == nil {
		return nil, fmt.Errorf("%w: interview has no report yet", entity.ErrSessionMissing)
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	content, err := f.Format(report.BuildDocument(session.Report))
	if err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}

	return &entity.ReportFile{
		Filename:    "interview_report_" + session.Report.InterviewID + f.FileExtension(),
		ContentType: f.ContentType(),
		Content:     content,
	}, nil
}

// dispose drops the session. Unknown ids are ignored.
func (uc *InterviewUsecase) dispose(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// GenerateTechnicalQuestion returns a validated multiple-choice item about
// topics. Any generation failure yields a placeholder item instead of an error.
func (uc *InterviewUsecase) GenerateTechnicalQuestion(ctx context.Context, topics []string, level string) *entity.MCItem {
	ctx = logger.Ensure(ctx, uc.logger)
	if len(topics) == 0 {
		topics = []string{defaultTopic}
	}
	if strings.TrimSpace(level) == "" {
		level = uc.interviewCfg.DefaultLevel
	}
	ctx = logger.WithAction(ctx, "technical_question")

	text, err := uc.llmConnector.Generate(ctx, prompt.MultipleChoice(topics, level), uc.llmCfg.InteractiveTimeout, true)
	if err != nil {
		return uc.fallbackItem(ctx, topics, level, err)
	}

	obj, err := sanitizer.ExtractJSONObject(text)
	if err != nil {
		return uc.fallbackItem(ctx, topics, level, err)
	}

	item, err := sanitizer.ValidateMCSchema(obj)
	if err != nil {
		return uc.fallbackItem(ctx, topics, level, err)
	}

	return item
}

func (uc *InterviewUsecase) fallbackItem(ctx context.Context, topics []string, level string, cause error) *entity.MCItem {
	metrics.RecordFallback(metrics.FallbackMCItem)
	if errors.Is(cause, entity.ErrMalformedGeneration) {
		ctxzap.Warn(ctx, "malformed multiple-choice output, using fallback item", zap.Error(cause))
	} else {
		ctxzap.Warn(ctx, "multiple-choice generation failed, using fallback item", zap.Error(cause))
	}
	return sanitizer.RepairOrFallback(topics, level, cause)
}

func endResult(rd *entity.ReportData) (*entity.EndResult, error) {
	summary, err := report.SummaryHTML(rd)
	if err != nil {
		return nil, err
	}

	return &entity.EndResult{
		EvaluationHTML: summary,
		Score:          report.FormatAverage(rd.AverageScore) + "/10",
		Feedback:       rd.Feedback,
		CanDownload:    true,
	}, nil
}

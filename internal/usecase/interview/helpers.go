package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/metrics"
	"github.com/futig/interview-backend/internal/pkg/prompt"
	"github.com/futig/interview-backend/internal/pkg/sanitizer"
	"github.com/futig/interview-backend/internal/pkg/score"
	"github.com/futig/interview-backend/internal/report"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const defaultTopic = "DBMS"

var (
	errDuplicateQuestion = errors.New("generated question was already asked")
	errEmptyQuestion     = errors.New("generated question is empty after cleaning")
)

var followUpTemplates = []string{
	"Can you walk me through a recent %s project and the hardest technical decision you made in it?",
	"What is a common pitfall in %s that you have run into, and how did you resolve it?",
	"How do you test and debug %s code when something breaks in production?",
	"Which %s feature do you find most underrated, and where would you use it?",
}

// GreetingQuestion is asked first when the backend cannot produce a question.
func GreetingQuestion(domain string) string {
	return fmt.Sprintf("Welcome to the %s interview! What aspects of %s are you most comfortable with, and what projects have you built using %s?",
		domain, domain, domain)
}

// FollowUpQuestion is asked when the backend cannot produce the next question.
// n selects the template; once every template was used the text is numbered,
// so distinct n always yield distinct questions.
func FollowUpQuestion(domain string, n int) string {
	question := fmt.Sprintf(followUpTemplates[n%len(followUpTemplates)], domain)
	if round := n / len(followUpTemplates); round > 0 {
		question = fmt.Sprintf("%s (follow-up %d)", question, round+1)
	}
	return question
}

// resolve applies the request values first, then the session's, then the configured defaults.
func (uc *InterviewUsecase) resolve(domain, level string, session *entity.Session) (string, string) {
	domain = strings.TrimSpace(domain)
	level = strings.TrimSpace(level)

	if session != nil {
		if domain == "" {
			domain = session.Domain
		}
		if level == "" {
			level = session.Level
		}
	}
	if domain == "" {
		domain = uc.interviewCfg.DefaultDomain
	}
	if level == "" {
		level = uc.interviewCfg.DefaultLevel
	}
	return domain, level
}

func (uc *InterviewUsecase) tipsFor(domain string) []string {
	tips := uc.domainTips[domain]
	out := make([]string, len(tips))
	copy(out, tips)
	return out
}

func (uc *InterviewUsecase) firstQuestion(ctx context.Context, domain, level string) (string, string) {
	text, err := uc.llmConnector.Generate(ctx, prompt.Question(domain, level, nil), uc.llmCfg.InteractiveTimeout, false)
	if err == nil {
		raw, formatted := sanitizer.CleanQuestionText(text)
		if raw != "" {
			return raw, formatted
		}
		err = errEmptyQuestion
	}

	ctxzap.Warn(ctx, "first question generation failed, using greeting", zap.Error(err))
	metrics.RecordFallback(metrics.FallbackGreeting)

	greeting := GreetingQuestion(domain)
	return greeting, sanitizer.FormatQuestionHTML(greeting)
}

// evaluate returns the evaluation markup and the score read from the raw text.
func (uc *InterviewUsecase) evaluate(ctx context.Context, domain, level, answer string) (string, float64) {
	text, err := uc.llmConnector.Generate(ctx, prompt.Evaluation(domain, level, answer), uc.llmCfg.InteractiveTimeout, false)
	if err != nil {
		ctxzap.Warn(ctx, "answer evaluation failed, using default score", zap.Error(err))
		metrics.RecordFallback(metrics.FallbackEvaluation)
		return sanitizer.EvaluationErrorHTML, score.Default
	}

	return sanitizer.FormatEvaluationHTML(text), score.Extract(text)
}

// nextQuestion asks for a question not yet in the session history and
// appends it. A duplicate is regenerated while attempts remain, then shown
// but not recorded.
func (uc *InterviewUsecase) nextQuestion(ctx context.Context, session *entity.Session, domain, level string) string {
	var raw, formatted string
	p := prompt.Question(domain, level, session.AskedQuestions)

	err := retry.Do(
		func() error {
			text, err := uc.llmConnector.Generate(ctx, p, uc.llmCfg.InteractiveTimeout, false)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			raw, formatted = sanitizer.CleanQuestionText(text)
			if raw == "" {
				return retry.Unrecoverable(errEmptyQuestion)
			}
			if session.HasAsked(raw) {
				return errDuplicateQuestion
			}
			return nil
		},
		append(uc.interviewCfg.DuplicateRetry.ToRetryOptions(ctx),
			retry.OnRetry(func(n uint, err error) {
				ctxzap.Debug(ctx, "regenerating duplicate question", zap.Uint("attempt", n+1))
			}),
		)...,
	)

	switch {
	case err == nil:
		session.AddQuestion(raw)
		return formatted
	case errors.Is(err, errDuplicateQuestion):
		ctxzap.Warn(ctx, "next question repeats an earlier one, not recording it", zap.String("question", raw))
		metrics.RecordEvent(metrics.EventDuplicate)
		return formatted
	default:
		ctxzap.Warn(ctx, "next question generation failed, using follow-up", zap.Error(err))
		metrics.RecordFallback(metrics.FallbackNextQuestion)

		followUp := FollowUpQuestion(domain, len(session.Answers))
		for i := 1; session.HasAsked(followUp); i++ {
			followUp = FollowUpQuestion(domain, len(session.Answers)+i)
		}
		session.AddQuestion(followUp)
		return sanitizer.FormatQuestionHTML(followUp)
	}
}

func (uc *InterviewUsecase) feedback(ctx context.Context, domain, level string, total int, avg float64) string {
	text, err := uc.llmConnector.Generate(ctx, prompt.Report(domain, level, total, avg), uc.llmCfg.ReportTimeout, false)
	if err == nil {
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
		err = errors.New("empty report text")
	}

	ctxzap.Warn(ctx, "report generation failed, using fallback report", zap.Error(err))
	metrics.RecordFallback(metrics.FallbackReport)

	return report.FallbackReport(domain, level, avg, total)
}

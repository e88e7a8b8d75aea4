package llm

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a deterministic stand-in for the generation backend used
// for local runs without a model. It recognises the prompt kind by its
// instructions and answers with slightly noisy text, the way a real model does.
type MockConnector struct {
	questions atomic.Int64
	logger    *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var mockQuestions = []string{
	"How would you explain the difference between a process and a thread?",
	"What happens, step by step, when a hash map needs to grow?",
	"How do you decide between composition and inheritance in a codebase?",
	"Describe how you would profile a slow endpoint in production.",
	"What trade-offs do you consider when choosing a caching strategy?",
}

func (m *MockConnector) Generate(ctx context.Context, prompt string, budget time.Duration, raw bool) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating text", zap.Int("prompt_length", len(prompt)), zap.Bool("raw", raw))

	switch {
	case strings.Contains(prompt, `"correct_index"`):
		return "Sure! Here is your question:\n```json\n" + `{
  "question": "Which index type best serves range queries on a timestamp column?",
  "options": ["Hash index", "B-tree index", "Bitmap index", "Full-text index"],
  "correct_index": 1,
  "explanation": "B-tree indexes keep keys ordered, so range scans are efficient."
}` + "\n```", nil
	case strings.Contains(prompt, "Evaluate their answer"):
		return "Score: 7/10\n\nSTRENGTHS:\n• Clear structure\n• Correct terminology\n\n" +
			"Areas to Focus:\n• Mention edge cases\n• Discuss complexity", nil
	case strings.Contains(prompt, "evaluation report"):
		return "Overall Performance Summary: solid fundamentals.\n" +
			"Strengths Demonstrated: clear explanations.\n" +
			"Areas for Improvement: depth on edge cases.\n" +
			"Recommendations for Future Learning: practice system design.\n" +
			"Final Assessment: Good", nil
	default:
		n := m.questions.Add(1) - 1
		q := mockQuestions[n%int64(len(mockQuestions))]
		if n >= int64(len(mockQuestions)) {
			q = fmt.Sprintf("%s (follow-up %d)", q, n/int64(len(mockQuestions)))
		}
		return q + "\n\nScore: this line leaks from an evaluation", nil
	}
}

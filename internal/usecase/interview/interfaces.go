package interview

import (
	"context"
	"time"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/formatter"
)

type LLMConnector interface {
	Generate(ctx context.Context, prompt string, budget time.Duration, raw bool) (string, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}

package interview

import (
	"context"

	"github.com/futig/interview-backend/internal/entity"
)

type InterviewUsecase interface {
	Start(ctx context.Context, previousID, domain, level string) (*entity.StartResult, error)
	RecordTurn(ctx context.Context, sessionID, answer, domain, level string) (*entity.TurnResult, error)
	End(ctx context.Context, sessionID, domain, level string) (*entity.EndResult, error)
	Download(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ReportFile, error)
	GenerateTechnicalQuestion(ctx context.Context, topics []string, level string) *entity.MCItem
}

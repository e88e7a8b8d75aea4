package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/integration/common"
	"github.com/futig/interview-backend/internal/pkg/metrics"
	pkghttp "github.com/futig/interview-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector calls the text-generation backend. Every call is a single attempt
// with the configured decoding options; callers own the fallback content.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	options   entity.GenerateOptions
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector("generation", cfg.HTTPClientConfig, logger),
		config:    cfg,
		options:   ToGenerateOptions(cfg.Options),
		logger:    logger,
	}
}

// ToGenerateOptions maps the decoding options config to the wire representation.
func ToGenerateOptions(cfg config.GenerateOptionsConfig) entity.GenerateOptions {
	return entity.GenerateOptions{
		Temperature:   cfg.Temperature,
		TopP:          cfg.TopP,
		TopK:          cfg.TopK,
		NumPredict:    cfg.NumPredict,
		RepeatPenalty: cfg.RepeatPenalty,
		Seed:          cfg.Seed,
	}
}

// Generate sends prompt to the backend and returns the generated text untouched.
// raw disables backend-side prompt templating. Timeouts, transport failures
// and non-200 responses all come back wrapped in entity.ErrBackendUnavailable.
func (c *Connector) Generate(ctx context.Context, prompt string, budget time.Duration, raw bool) (string, error) {
	ctxzap.Debug(ctx, "calling generation backend",
		zap.Int("prompt_length", len(prompt)),
		zap.Duration("budget", budget),
		zap.Bool("raw", raw),
	)

	req := &entity.LLMGenerateRequest{
		Model:   c.config.Model,
		Prompt:  prompt,
		Stream:  false,
		Raw:     raw,
		Options: &c.options,
	}

	start := time.Now()
	var resp entity.LLMGenerateResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &resp, pkghttp.WithTimeout(budget))
	metrics.ObserveGeneration(time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrBackendUnavailable, err)
	}

	ctxzap.Debug(ctx, "generation completed", zap.Int("response_length", len(resp.Response)))

	return resp.Response, nil
}

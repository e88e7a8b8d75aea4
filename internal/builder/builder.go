package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/interview-backend/internal/api"
	interviewapi "github.com/futig/interview-backend/internal/api/interview"
	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/integration/llm"
	"github.com/futig/interview-backend/internal/pkg/formatter"
	"github.com/futig/interview-backend/internal/pkg/metrics"
	"github.com/futig/interview-backend/internal/pkg/validator"
	"github.com/futig/interview-backend/internal/repository"
	"github.com/futig/interview-backend/internal/usecase/interview"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	return BuildWithConfig(cfg, logger), nil
}

// BuildWithConfig wires every component from an already loaded configuration.
func BuildWithConfig(cfg *config.Config, logger *zap.Logger) *App {
	metrics.InitMetrics()

	sessionRepo := repository.NewSessionCache(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionCfg.TTL),
		zap.Duration("cleanup_interval", cfg.SessionCfg.CleanupInterval),
	)

	var llmConnector interview.LLMConnector
	if cfg.EnableMocks {
		logger.Info("Using mock generation backend")
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using generation backend",
			zap.String("url", cfg.LLMConnectorCfg.Url),
			zap.String("model", cfg.LLMConnectorCfg.Model),
		)
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	interviewUC := interview.NewUsecase(
		sessionRepo,
		llmConnector,
		formatter.NewFactory(),
		cfg,
		logger,
	)
	logger.Info("Use cases initialized")

	interviewHandler := interviewapi.NewHandler(interviewUC, validator.New(), cfg.SessionCfg.TTL)

	router := api.SetupRouter(interviewHandler, cfg, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HandlerTimeout() + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		logger:          logger,
		shutdownTimeout: 30 * time.Second,
	}
}

package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/interview-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string   `env:"SERVER_ADDR" envDefault:":8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`

	// RequestTimeoutMargin is added on top of the generation budget of a turn.
	RequestTimeoutMargin time.Duration `env:"REQUEST_TIMEOUT_MARGIN" envDefault:"15s"`

	// Generation backend configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Interview session configuration
	SessionCfg   SessionConfig   `envPrefix:"SESSION_"`
	InterviewCfg InterviewConfig `envPrefix:"INTERVIEW_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Domain tips (loaded from JSON file or defaults)
	DomainTips map[string][]string

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	GenerateEndpoint   string                `env:"GENERATE_ENDPOINT" envDefault:"/api/generate"`
	Model              string                `env:"MODEL" envDefault:"interview:optimized"`
	InteractiveTimeout time.Duration         `env:"INTERACTIVE_TIMEOUT" envDefault:"45s"`
	ReportTimeout      time.Duration         `env:"REPORT_TIMEOUT" envDefault:"15s"`
	Options            GenerateOptionsConfig `envPrefix:"OPTION_"`
}

// GenerateOptionsConfig holds the decoding parameters applied to every call.
type GenerateOptionsConfig struct {
	Temperature   float64 `env:"TEMPERATURE" envDefault:"0.1"`
	TopP          float64 `env:"TOP_P" envDefault:"0.7"`
	TopK          int     `env:"TOP_K" envDefault:"40"`
	NumPredict    int     `env:"NUM_PREDICT" envDefault:"256"`
	RepeatPenalty float64 `env:"REPEAT_PENALTY" envDefault:"1.15"`
	Seed          int     `env:"SEED" envDefault:"42"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:11434"`
}

// SessionConfig controls how long an interview lives in the session store
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

type InterviewConfig struct {
	DefaultDomain string `env:"DEFAULT_DOMAIN" envDefault:"Python"`
	DefaultLevel  string `env:"DEFAULT_LEVEL" envDefault:"intermediate"`

	// DuplicateRetry controls regeneration of a next question that repeats
	// an earlier one. One attempt means the duplicate is dropped.
	DuplicateRetry pkgRetry.RetryConfig `envPrefix:"DUPLICATE_RETRY_"`
}

const domainTipsFile = "domain_tips.json"

// TurnBudget is the longest generation time one request can need: an answer
// evaluation followed by every next-question attempt.
func (c *Config) TurnBudget() time.Duration {
	attempts := c.InterviewCfg.DuplicateRetry.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(1+attempts) * c.LLMConnectorCfg.InteractiveTimeout
}

// HandlerTimeout bounds a request context. It never cuts a turn's generation short.
func (c *Config) HandlerTimeout() time.Duration {
	return c.TurnBudget() + c.RequestTimeoutMargin
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Missing env file is fine: variables may be set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment, validates it
// and loads the domain tips table.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadDomainTips(cfg, filepath.Join("internal", "config", domainTipsFile)); err != nil {
		return nil, fmt.Errorf("load domain tips: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	llm := cfg.LLMConnectorCfg
	if llm.InteractiveTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("LLM_INTERACTIVE_TIMEOUT must be positive, got %s", llm.InteractiveTimeout))
	}

	if llm.ReportTimeout <= 0 || llm.ReportTimeout > llm.InteractiveTimeout {
		errors = append(errors, fmt.Sprintf("LLM_REPORT_TIMEOUT must be positive and not exceed LLM_INTERACTIVE_TIMEOUT(%s), got %s", llm.InteractiveTimeout, llm.ReportTimeout))
	}

	if llm.Options.Temperature < 0 || llm.Options.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_OPTION_TEMPERATURE must be between 0 and 2, got %g", llm.Options.Temperature))
	}

	if llm.Options.TopP <= 0 || llm.Options.TopP > 1 {
		errors = append(errors, fmt.Sprintf("LLM_OPTION_TOP_P must be in (0, 1], got %g", llm.Options.TopP))
	}

	if llm.Model == "" {
		errors = append(errors, "LLM_MODEL must not be empty")
	}

	if cfg.SessionCfg.TTL <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be positive, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.InterviewCfg.DuplicateRetry.Attempts < 1 || cfg.InterviewCfg.DuplicateRetry.Attempts > 5 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_DUPLICATE_RETRY_ATTEMPTS must be between 1 and 5, got %d", cfg.InterviewCfg.DuplicateRetry.Attempts))
	}

	if cfg.RequestTimeoutMargin < 0 {
		errors = append(errors, fmt.Sprintf("REQUEST_TIMEOUT_MARGIN must not be negative, got %s", cfg.RequestTimeoutMargin))
	}

	if cfg.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.RateLimitPerMinute))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func loadDomainTips(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.DomainTips = DefaultDomainTips()
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read domain tips file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("domain tips file is empty: %s", path)
	}

	var tips map[string][]string
	if err := json.Unmarshal(data, &tips); err != nil {
		return fmt.Errorf("parse domain tips JSON: %w", err)
	}

	if len(tips) == 0 {
		return fmt.Errorf("domain tips file contains no domains: %s", path)
	}

	cfg.DomainTips = tips
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "interview:optimized", cfg.LLMConnectorCfg.Model)
	assert.Equal(t, "/api/generate", cfg.LLMConnectorCfg.GenerateEndpoint)
	assert.Equal(t, 45*time.Second, cfg.LLMConnectorCfg.InteractiveTimeout)
	assert.Equal(t, 15*time.Second, cfg.LLMConnectorCfg.ReportTimeout)
	assert.Equal(t, 0.1, cfg.LLMConnectorCfg.Options.Temperature)
	assert.Equal(t, 256, cfg.LLMConnectorCfg.Options.NumPredict)
	assert.Equal(t, "Python", cfg.InterviewCfg.DefaultDomain)
	assert.Equal(t, "intermediate", cfg.InterviewCfg.DefaultLevel)
	assert.Equal(t, uint(1), cfg.InterviewCfg.DuplicateRetry.Attempts)
	assert.Equal(t, time.Hour, cfg.SessionCfg.TTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EnableMocks)
	assert.Contains(t, cfg.DomainTips, "Python")
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("LLM_MODEL", "llama3")
	t.Setenv("LLM_SERVICE_URL", "http://ollama:11434")
	t.Setenv("INTERVIEW_DEFAULT_DOMAIN", "Go")
	t.Setenv("INTERVIEW_DUPLICATE_RETRY_ATTEMPTS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "llama3", cfg.LLMConnectorCfg.Model)
	assert.Equal(t, "http://ollama:11434", cfg.LLMConnectorCfg.Url)
	assert.Equal(t, "Go", cfg.InterviewCfg.DefaultDomain)
	assert.Equal(t, uint(3), cfg.InterviewCfg.DuplicateRetry.Attempts)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"report budget exceeds interactive", "LLM_REPORT_TIMEOUT", "60s", "LLM_REPORT_TIMEOUT"},
		{"temperature out of range", "LLM_OPTION_TEMPERATURE", "3", "LLM_OPTION_TEMPERATURE"},
		{"top_p zero", "LLM_OPTION_TOP_P", "0", "LLM_OPTION_TOP_P"},
		{"zero ttl", "SESSION_TTL", "0s", "SESSION_TTL"},
		{"too many duplicate retries", "INTERVIEW_DUPLICATE_RETRY_ATTEMPTS", "9", "INTERVIEW_DUPLICATE_RETRY_ATTEMPTS"},
		{"rate limit zero", "RATE_LIMIT_PER_MINUTE", "0", "RATE_LIMIT_PER_MINUTE"},
		{"negative request margin", "REQUEST_TIMEOUT_MARGIN", "-1s", "REQUEST_TIMEOUT_MARGIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_HandlerTimeout(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.RequestTimeoutMargin)
	assert.Equal(t, 90*time.Second, cfg.TurnBudget())
	assert.Equal(t, 105*time.Second, cfg.HandlerTimeout())

	cfg.InterviewCfg.DuplicateRetry.Attempts = 3
	assert.Equal(t, 180*time.Second, cfg.TurnBudget())
	assert.Equal(t, 195*time.Second, cfg.HandlerTimeout())

	cfg.InterviewCfg.DuplicateRetry.Attempts = 0
	assert.Equal(t, 90*time.Second, cfg.TurnBudget())
}

func TestLoadDomainTips(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, loadDomainTips(cfg, filepath.Join(dir, "absent.json")))
		assert.Equal(t, DefaultDomainTips(), cfg.DomainTips)
	})

	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(dir, "tips.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Go":["Know your channels"]}`), 0o600))

		cfg := &Config{}
		require.NoError(t, loadDomainTips(cfg, path))
		assert.Equal(t, map[string][]string{"Go": {"Know your channels"}}, cfg.DomainTips)
	})

	t.Run("empty object", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

		assert.Error(t, loadDomainTips(&Config{}, path))
	})

	t.Run("broken json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Go":`), 0o600))

		assert.Error(t, loadDomainTips(&Config{}, path))
	})
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("prod"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}

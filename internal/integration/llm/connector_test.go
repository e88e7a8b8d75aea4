package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Url:                   url,
		},
		GenerateEndpoint:   "/api/generate",
		Model:              "interview:optimized",
		InteractiveTimeout: 45 * time.Second,
		ReportTimeout:      15 * time.Second,
		Options: config.GenerateOptionsConfig{
			Temperature:   0.1,
			TopP:          0.7,
			TopK:          40,
			NumPredict:    256,
			RepeatPenalty: 1.15,
			Seed:          42,
		},
	}
}

func TestConnector_Generate_RequestShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     bool
		wantRaw bool
	}{
		{name: "templated", raw: false, wantRaw: false},
		{name: "raw_mode", raw: true, wantRaw: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/generate", r.URL.Path)

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)

				var got map[string]any
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, "interview:optimized", got["model"])
				assert.Equal(t, "the prompt", got["prompt"])
				assert.Equal(t, false, got["stream"])
				_, hasRaw := got["raw"]
				assert.Equal(t, tt.wantRaw, hasRaw)

				opts, ok := got["options"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, 0.1, opts["temperature"])
				assert.Equal(t, 0.7, opts["top_p"])
				assert.Equal(t, float64(40), opts["top_k"])
				assert.Equal(t, float64(256), opts["num_predict"])
				assert.Equal(t, 1.15, opts["repeat_penalty"])
				assert.Equal(t, float64(42), opts["seed"])

				_, _ = w.Write([]byte(`{"model":"interview:optimized","response":"  generated text \n","done":true}`))
			}))
			defer srv.Close()

			conn := NewConnector(testConfig(srv.URL), zap.NewNop())
			text, err := conn.Generate(context.Background(), "the prompt", time.Second, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "  generated text \n", text)
		})
	}
}

func TestConnector_Generate_BackendUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		budget  time.Duration
	}{
		{
			name: "non_200_status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			budget: time.Second,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			budget: 50 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			conn := NewConnector(testConfig(srv.URL), zap.NewNop())
			_, err := conn.Generate(context.Background(), "p", tt.budget, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrBackendUnavailable)
		})
	}
}

func TestConnector_Generate_NetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	conn := NewConnector(testConfig(url), zap.NewNop())
	_, err := conn.Generate(context.Background(), "p", time.Second, false)
	assert.ErrorIs(t, err, entity.ErrBackendUnavailable)
}

func TestMockConnector_Generate(t *testing.T) {
	t.Parallel()

	m := NewMockConnector(zap.NewNop())
	ctx := context.Background()

	mc, err := m.Generate(ctx, `keys "correct_index"`, time.Second, true)
	require.NoError(t, err)
	assert.Contains(t, mc, `"correct_index": 1`)

	eval, err := m.Generate(ctx, "Evaluate their answer with", time.Second, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(eval, "Score: 7/10"))

	first, err := m.Generate(ctx, "question", time.Second, false)
	require.NoError(t, err)
	second, err := m.Generate(ctx, "question", time.Second, false)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

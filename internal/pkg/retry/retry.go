package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 1
	defaultDelay    = 0
	defaultMaxDelay = time.Second
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1"`
	Delay    time.Duration `env:"DELAY" envDefault:"0s"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"1s"`
}

// ToRetryOptions converts the config into retry-go options. Attempts below
// one are clamped to a single attempt since zero means "forever" to retry-go.
func (rc *RetryConfig) ToRetryOptions(ctx context.Context) []retry.Option {
	attempts := rc.Attempts
	if attempts < 1 {
		attempts = 1
	}

	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

package common

import (
	"github.com/futig/interview-backend/internal/config"
	pkgHTTP "github.com/futig/interview-backend/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds the shared HTTP connector for an outbound service.
// The logger is named after the service so transport logs can be told apart.
func NewBaseConnector(service string, cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
	}
	if cfg.Token != "" {
		opts = append(opts, pkgHTTP.WithAuthToken(cfg.Token))
	}

	return pkgHTTP.NewConnector(&pkgHTTP.ConnectorConfig{
		Logger:  logger.Named(service),
		BaseURL: cfg.Url,
	}, opts...)
}

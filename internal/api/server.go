package api

import (
	"net/http"
	"time"

	"github.com/futig/interview-backend/internal/api/docs"
	interviewapi "github.com/futig/interview-backend/internal/api/interview"
	"github.com/futig/interview-backend/internal/api/middleware"
	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(interviewHandler *interviewapi.Handler, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                     // Recover from panics
	r.Use(chimiddleware.RequestID)                     // Add request ID
	r.Use(middleware.Logger(logger))                   // Log requests
	r.Use(metrics.HTTPMetricsMiddleware)               // Count requests
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))     // Handle CORS
	r.Use(chimiddleware.Timeout(cfg.HandlerTimeout())) // Covers a full turn

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	interviewapi.RegisterRoutes(r, interviewHandler, httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))

	return r
}

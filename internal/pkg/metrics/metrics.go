package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of generation backend calls by outcome",
		},
		[]string{"outcome"},
	)
	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_request_duration_seconds",
			Help:    "Generation backend call duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 15, 30, 45},
		},
	)
	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_fallbacks_total",
			Help: "Total number of times deterministic fallback content replaced generated content",
		},
		[]string{"kind"},
	)
	InterviewEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_events_total",
			Help: "Interview lifecycle events (started, turn, ended, duplicate_question)",
		},
		[]string{"event"},
	)
	InterviewScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interview_answer_score",
			Help:    "Distribution of extracted answer scores",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers the collectors with the default registry. Safe to call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(GenerationRequestsTotal)
		prometheus.MustRegister(GenerationDuration)
		prometheus.MustRegister(FallbacksTotal)
		prometheus.MustRegister(InterviewEventsTotal)
		prometheus.MustRegister(InterviewScore)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
	})
}

func ObserveGeneration(d time.Duration, err error) {
	GenerationDuration.Observe(d.Seconds())
	if err != nil {
		GenerationRequestsTotal.WithLabelValues("unavailable").Inc()
		return
	}
	GenerationRequestsTotal.WithLabelValues("ok").Inc()
}

// Fallback kinds
const (
	FallbackGreeting     = "greeting_question"
	FallbackNextQuestion = "next_question"
	FallbackEvaluation   = "evaluation"
	FallbackReport       = "report"
	FallbackMCItem       = "mc_item"
)

func RecordFallback(kind string) {
	FallbacksTotal.WithLabelValues(kind).Inc()
}

// Interview events
const (
	EventStarted   = "started"
	EventTurn      = "turn"
	EventEnded     = "ended"
	EventDuplicate = "duplicate_question"
)

func RecordEvent(event string) {
	InterviewEventsTotal.WithLabelValues(event).Inc()
}

func ObserveScore(score float64) {
	InterviewScore.Observe(score)
}

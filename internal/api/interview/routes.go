package interview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview routes. limiter guards the routes that
// call the generation backend.
func RegisterRoutes(r chi.Router, h *Handler, limiter func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(limiter)
		r.Get("/start", h.StartInterview)
		r.Post("/ask", h.Ask)
		r.Post("/end_interview", h.EndInterview)
		r.Post("/technical_question", h.TechnicalQuestion)
	})

	r.Get("/download_report", h.DownloadReport)
}

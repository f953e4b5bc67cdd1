package http

import (
	"net/http"

	"speech-enrichment-service/internal/enrich"
	"speech-enrichment-service/internal/feedback"
	"speech-enrichment-service/internal/jobs"
	"speech-enrichment-service/internal/observability"
	"speech-enrichment-service/internal/schema"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles the collaborators behind the API surface. Feedback may be
// nil when the feedback provider is disabled.
type Handlers struct {
	Orchestrator *jobs.Orchestrator
	Enricher     *enrich.Enricher
	Validator    *schema.Validator
	Feedback     *feedback.Generator
}

// NewRouter constructs the HTTP router for the service.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(observability.RequestLogger)

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/recordings", h.submitRecording)
		r.Get("/jobs/{jobID}", h.getJob)
		r.Post("/enrich", h.enrichSync)
		r.Post("/feedback", h.generateFeedback)
	})

	return r
}

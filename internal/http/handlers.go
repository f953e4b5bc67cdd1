package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"speech-enrichment-service/internal/models"
)

// submitRequest is the body of POST /v1/recordings.
type submitRequest struct {
	MediaURL string `json:"media_url"`
}

// enrichRequest is the body of POST /v1/enrich: raw modality captures in,
// report out, no job involved.
type enrichRequest struct {
	Words         []models.Word         `json:"words"`
	VisionFrames  []models.VisionFrame  `json:"vision_frames"`
	ProsodyFrames []models.ProsodyFrame `json:"prosody_frames"`
}

// feedbackResponse is the body of POST /v1/feedback.
type feedbackResponse struct {
	Feedback []models.FeedbackItem `json:"feedback"`
}

func (h *Handlers) submitRecording(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MediaURL == "" {
		respondError(w, http.StatusBadRequest, "media_url is required")
		return
	}

	job := h.Orchestrator.Submit(r.Context(), req.MediaURL)
	respondJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.ID,
		"status": job.Lifecycle.State().String(),
	})
}

func (h *Handlers) getJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	snap, ok := h.Orchestrator.Poll(r.Context(), jobID)
	if !ok {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handlers) enrichSync(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.Validator.ValidateWords(req.Words); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Validator.ValidateVision(req.VisionFrames); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Validator.ValidateProsody(req.ProsodyFrames); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report := h.Enricher.EnrichTranscript(req.Words, req.VisionFrames, req.ProsodyFrames)
	respondJSON(w, http.StatusOK, report)
}

func (h *Handlers) generateFeedback(w http.ResponseWriter, r *http.Request) {
	if h.Feedback == nil {
		respondError(w, http.StatusServiceUnavailable, "feedback provider is disabled")
		return
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	items, err := h.Feedback.Generate(r.Context(), &result)
	if err != nil {
		log.Error().Err(err).Msg("Feedback generation failed")
		respondError(w, http.StatusBadGateway, "feedback generation failed")
		return
	}
	respondJSON(w, http.StatusOK, feedbackResponse{Feedback: items})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

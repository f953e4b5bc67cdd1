// Package assemblyai provides a transcript adapter backed by the AssemblyAI
// REST API: submit the media URL, then poll until the transcript reaches a
// terminal status.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"speech-enrichment-service/internal/models"
	"speech-enrichment-service/internal/observability/metrics"
	"speech-enrichment-service/internal/service/transcript"
)

// Config holds the remote adapter settings.
type Config struct {
	BaseURL      string
	APIKey       string
	PollInterval time.Duration
	Timeout      time.Duration
}

// Adapter implements transcript.Adapter against the AssemblyAI v2 API.
type Adapter struct {
	cfg     Config
	client  *http.Client
	metrics *metrics.Metrics
}

var _ transcript.Adapter = (*Adapter)(nil)

// New creates a new AssemblyAI transcript adapter.
func New(cfg Config) *Adapter {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		metrics: metrics.DefaultMetrics,
	}
}

// submitResponse is the provider's job-creation reply.
type submitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// pollResponse is the provider's transcript resource. Word timings arrive in
// milliseconds and are converted to seconds.
type pollResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
	Words  []struct {
		Text  string `json:"text"`
		Start int64  `json:"start"`
		End   int64  `json:"end"`
	} `json:"words"`
}

// Transcribe submits the media URL and polls until the transcript completes.
func (a *Adapter) Transcribe(ctx context.Context, mediaURL string) (*models.Transcript, error) {
	start := time.Now()
	t, err := a.transcribe(ctx, mediaURL)
	a.metrics.RecordProviderCall("transcript", err, time.Since(start).Seconds())
	return t, err
}

func (a *Adapter) transcribe(ctx context.Context, mediaURL string) (*models.Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	id, err := a.submit(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("transcriptId", id).Msg("Transcript job submitted")

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transcript poll: %w", ctx.Err())
		case <-ticker.C:
		}

		resp, err := a.poll(ctx, id)
		if err != nil {
			return nil, err
		}

		switch resp.Status {
		case "completed":
			return toTranscript(resp), nil
		case "error":
			return nil, fmt.Errorf("transcription failed: %s", resp.Error)
		}
		// queued / processing: keep polling
	}
}

func (a *Adapter) submit(ctx context.Context, mediaURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"audio_url": mediaURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/v2/transcript", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("authorization", a.cfg.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("submit transcript: unexpected status %d", resp.StatusCode)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("submit transcript: empty transcript id")
	}
	return out.ID, nil
}

func (a *Adapter) poll(ctx context.Context, id string) (*pollResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/v2/transcript/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("authorization", a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poll transcript: unexpected status %d", resp.StatusCode)
	}

	var out pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode poll response: %w", err)
	}
	return &out, nil
}

func toTranscript(resp *pollResponse) *models.Transcript {
	words := make([]models.Word, 0, len(resp.Words))
	for _, w := range resp.Words {
		words = append(words, models.Word{
			Text:  w.Text,
			Start: float64(w.Start) / 1000.0,
			End:   float64(w.End) / 1000.0,
		})
	}
	return &models.Transcript{
		Status:   "completed",
		FullText: resp.Text,
		Words:    words,
	}
}

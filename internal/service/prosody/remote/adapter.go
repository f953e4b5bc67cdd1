// Package remote provides a prosody adapter backed by a single-shot REST
// analyzer: POST the media URL, receive the full frame series.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"speech-enrichment-service/internal/models"
	"speech-enrichment-service/internal/observability/metrics"
	"speech-enrichment-service/internal/service/prosody"
)

// Config holds the remote adapter settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Adapter implements prosody.Adapter against a remote analyzer.
type Adapter struct {
	cfg     Config
	client  *http.Client
	metrics *metrics.Metrics
}

var _ prosody.Adapter = (*Adapter)(nil)

// New creates a new remote prosody adapter.
func New(cfg Config) *Adapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		metrics: metrics.DefaultMetrics,
	}
}

type analyzeResponse struct {
	Frames []models.ProsodyFrame `json:"frames"`
}

// Extract posts the media URL and returns the analyzer's frame series.
func (a *Adapter) Extract(ctx context.Context, mediaURL string) ([]models.ProsodyFrame, error) {
	start := time.Now()
	frames, err := a.extract(ctx, mediaURL)
	a.metrics.RecordProviderCall("prosody", err, time.Since(start).Seconds())
	return frames, err
}

func (a *Adapter) extract(ctx context.Context, mediaURL string) ([]models.ProsodyFrame, error) {
	body, err := json.Marshal(map[string]string{"media_url": mediaURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if a.cfg.APIKey != "" {
		req.Header.Set("authorization", "Bearer "+a.cfg.APIKey)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze prosody: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyze prosody: unexpected status %d", resp.StatusCode)
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode prosody response: %w", err)
	}
	return out.Frames, nil
}

// Package remote provides a vision adapter backed by a spawn/poll pose
// worker: POST spawns the extraction and returns a call ID, GET on the call
// ID returns 202 while running and the frame list once finished.
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
	"speech-enrichment-service/internal/service/vision"
)

// Config holds the remote adapter settings.
type Config struct {
	BaseURL string
	APIKey  string
}

// Adapter implements vision.Adapter against a remote pose worker.
type Adapter struct {
	cfg     Config
	client  *http.Client
	metrics *metrics.Metrics
}

var _ vision.Adapter = (*Adapter)(nil)

// New creates a new remote vision adapter.
func New(cfg Config) *Adapter {
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		metrics: metrics.DefaultMetrics,
	}
}

type spawnResponse struct {
	CallID string `json:"call_id"`
}

type resultResponse struct {
	Frames []models.VisionFrame `json:"frames"`
}

// Submit spawns pose extraction for the media URL.
func (a *Adapter) Submit(ctx context.Context, mediaURL string) (string, error) {
	start := time.Now()
	callID, err := a.submit(ctx, mediaURL)
	a.metrics.RecordProviderCall("vision", err, time.Since(start).Seconds())
	return callID, err
}

func (a *Adapter) submit(ctx context.Context, mediaURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"media_url": mediaURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/spawn", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("spawn vision call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("spawn vision call: unexpected status %d", resp.StatusCode)
	}

	var out spawnResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode spawn response: %w", err)
	}
	if out.CallID == "" {
		return "", fmt.Errorf("spawn vision call: empty call id")
	}
	return out.CallID, nil
}

// Poll checks the call once. A 202 means the worker is still running.
func (a *Adapter) Poll(ctx context.Context, callID string) ([]models.VisionFrame, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/result/"+callID, nil)
	if err != nil {
		return nil, false, err
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("poll vision call: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted:
		return nil, false, nil
	case http.StatusOK:
		var out resultResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, false, fmt.Errorf("decode vision result: %w", err)
		}
		return out.Frames, true, nil
	default:
		return nil, false, fmt.Errorf("poll vision call: unexpected status %d", resp.StatusCode)
	}
}

func (a *Adapter) setHeaders(req *http.Request) {
	if a.cfg.APIKey != "" {
		req.Header.Set("authorization", "Bearer "+a.cfg.APIKey)
	}
	req.Header.Set("content-type", "application/json")
}

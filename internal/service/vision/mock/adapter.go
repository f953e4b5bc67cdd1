// Package mock provides a mock vision adapter for testing without a remote
// pose worker. Each call reports pending for a fixed number of polls before
// returning deterministic frames, so the degraded-then-complete path is
// exercised.
package mock

import (
	"context"
	"fmt"
	"sync"

	"speech-enrichment-service/internal/models"
)

// DefaultFrames is the fixture returned by every finished call: a gentle
// two-handed gesture sampled at 10 fps.
var DefaultFrames = buildFrames()

func buildFrames() []models.VisionFrame {
	frames := make([]models.VisionFrame, 0, 24)
	for i := 0; i < 24; i++ {
		ts := float64(i) * 0.1
		offset := float64(i) * 0.002
		frames = append(frames, models.VisionFrame{
			Timestamp: ts,
			Poses: []models.Pose{{
				{ID: models.LandmarkLeftWrist, X: 0.30 + offset, Y: 0.60 - offset, Visibility: 0.99},
				{ID: models.LandmarkRightWrist, X: 0.70 - offset, Y: 0.60 - offset, Visibility: 0.99},
			}},
		})
	}
	return frames
}

// Adapter implements vision.Adapter with mock responses.
type Adapter struct {
	// PollsUntilDone is how many polls a call reports pending before
	// finishing. Zero means the first poll returns the frames.
	PollsUntilDone int

	mu      sync.Mutex
	counter int
	polls   map[string]int
}

// New creates a new mock vision adapter that finishes on the first poll.
func New() *Adapter {
	return &Adapter{polls: make(map[string]int)}
}

// Submit registers a simulated pose-extraction call.
func (a *Adapter) Submit(ctx context.Context, mediaURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.counter++
	callID := fmt.Sprintf("mock-vision-%d", a.counter)
	a.polls[callID] = 0
	return callID, nil
}

// Poll reports pending until the configured poll count is reached, then
// returns the fixture frames.
func (a *Adapter) Poll(ctx context.Context, callID string) ([]models.VisionFrame, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	count, ok := a.polls[callID]
	if !ok {
		return nil, false, fmt.Errorf("unknown vision call: %s", callID)
	}
	if count < a.PollsUntilDone {
		a.polls[callID] = count + 1
		return nil, false, nil
	}
	return DefaultFrames, true, nil
}

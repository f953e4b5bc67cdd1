// Package mock provides a mock prosody adapter for testing without a remote
// analyzer. It synthesizes a deterministic pitch/intensity series with a few
// unvoiced frames.
package mock

import (
	"context"

	"speech-enrichment-service/internal/models"
)

// Adapter implements prosody.Adapter with mock responses.
type Adapter struct{}

// New creates a new mock prosody adapter.
func New() *Adapter {
	return &Adapter{}
}

// Extract returns a synthesized series: 10 ms hop, a slow pitch ramp around
// 200 Hz with every seventh frame unvoiced, intensity in the conversational
// band.
func (a *Adapter) Extract(ctx context.Context, mediaURL string) ([]models.ProsodyFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frames := make([]models.ProsodyFrame, 0, 300)
	for i := 0; i < 300; i++ {
		frame := models.ProsodyFrame{
			Timestamp: float64(i) * 0.01,
			Intensity: 0.045 + 0.01*float64(i%5)/5.0,
		}
		if i%7 != 0 {
			pitch := 200.0 + float64(i%40)
			frame.Pitch = &pitch
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

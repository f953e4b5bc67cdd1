// Package vision defines the interface for body-pose vision providers.
// Vision is the slow modality: submission returns a call handle immediately
// and results are collected by non-blocking polls.
package vision

import (
	"context"

	"speech-enrichment-service/internal/models"
)

// Adapter defines the interface for vision providers.
type Adapter interface {
	// Submit dispatches pose extraction for the media at the given URL and
	// returns an opaque call handle.
	Submit(ctx context.Context, mediaURL string) (string, error)

	// Poll checks whether the call has finished. done is false while the
	// call is still running; frames are only valid when done is true.
	Poll(ctx context.Context, callID string) (frames []models.VisionFrame, done bool, err error)
}

// Package transcript defines the interface for speech-to-text transcript providers.
package transcript

import (
	"context"

	"speech-enrichment-service/internal/models"
)

// Adapter defines the interface for transcript providers.
type Adapter interface {
	// Transcribe submits the media at the given URL and blocks until a
	// word-level transcript is available or ctx is done.
	Transcribe(ctx context.Context, mediaURL string) (*models.Transcript, error)
}

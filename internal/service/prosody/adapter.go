// Package prosody defines the interface for pitch/intensity extraction providers.
package prosody

import (
	"context"

	"speech-enrichment-service/internal/models"
)

// Adapter defines the interface for prosody providers.
type Adapter interface {
	// Extract returns the sampled pitch/intensity series for the media at
	// the given URL.
	Extract(ctx context.Context, mediaURL string) ([]models.ProsodyFrame, error)
}

// Package mock provides a mock transcript adapter for testing without
// provider credentials. It cycles through a fixed set of word-timed
// utterances.
package mock

import (
	"context"
	"sync"

	"speech-enrichment-service/internal/models"
)

// DefaultTranscripts provides sample word-timed transcripts for simulation.
var DefaultTranscripts = []models.Transcript{
	{
		Status:   "completed",
		FullText: "I definitely think we should go ahead",
		Words: []models.Word{
			{Text: "I", Start: 0.10, End: 0.20},
			{Text: "definitely", Start: 0.25, End: 0.80},
			{Text: "think", Start: 0.85, End: 1.10},
			{Text: "we", Start: 1.15, End: 1.30},
			{Text: "should", Start: 1.35, End: 1.60},
			{Text: "go", Start: 1.65, End: 1.85},
			{Text: "ahead", Start: 1.90, End: 2.30},
		},
	},
	{
		Status:   "completed",
		FullText: "Um maybe we could try it later",
		Words: []models.Word{
			{Text: "Um", Start: 0.20, End: 0.55},
			{Text: "maybe", Start: 1.40, End: 1.80},
			{Text: "we", Start: 1.85, End: 2.00},
			{Text: "could", Start: 2.05, End: 2.30},
			{Text: "try", Start: 2.35, End: 2.60},
			{Text: "it", Start: 2.65, End: 2.75},
			{Text: "later", Start: 2.80, End: 3.30},
		},
	},
	{
		Status:   "completed",
		FullText: "What do you think about this",
		Words: []models.Word{
			{Text: "What", Start: 0.05, End: 0.30},
			{Text: "do", Start: 0.35, End: 0.45},
			{Text: "you", Start: 0.50, End: 0.65},
			{Text: "think", Start: 0.70, End: 1.00},
			{Text: "about", Start: 1.05, End: 1.35},
			{Text: "this", Start: 1.40, End: 1.75},
		},
	},
}

// transcriptCounter tracks which fixture to use next (cycles through defaults)
var (
	transcriptCounter int
	counterMu         sync.Mutex
)

// Adapter implements transcript.Adapter with mock responses.
type Adapter struct{}

// New creates a new mock transcript adapter.
func New() *Adapter {
	return &Adapter{}
}

// Transcribe returns the next fixture transcript.
func (a *Adapter) Transcribe(ctx context.Context, mediaURL string) (*models.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counterMu.Lock()
	idx := transcriptCounter % len(DefaultTranscripts)
	transcriptCounter++
	counterMu.Unlock()

	t := DefaultTranscripts[idx]
	return &t, nil
}

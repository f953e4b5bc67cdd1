// Package schema provides structural validation for inbound modality
// payloads. Malformed individual words are tolerated downstream; validation
// only rejects envelopes the pipeline cannot process at all.
package schema

import (
	"errors"
	"fmt"

	"speech-enrichment-service/internal/models"
)

var (
	ErrNilWords          = errors.New("words list is missing")
	ErrNegativeTimestamp = errors.New("negative timestamp")
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateWords rejects a missing word list and words starting before zero.
// Zero-duration and reversed spans pass through: downstream heuristics never
// match them, which the pipeline prefers over refusing the utterance.
func (v *Validator) ValidateWords(words []models.Word) error {
	if words == nil {
		return ErrNilWords
	}
	for i, w := range words {
		if w.Start < 0 {
			return fmt.Errorf("word %d %q: %w", i, w.Text, ErrNegativeTimestamp)
		}
	}
	return nil
}

// ValidateVision rejects frames stamped before zero.
func (v *Validator) ValidateVision(frames []models.VisionFrame) error {
	for i, f := range frames {
		if f.Timestamp < 0 {
			return fmt.Errorf("vision frame %d: %w", i, ErrNegativeTimestamp)
		}
	}
	return nil
}

// ValidateProsody rejects frames stamped before zero.
func (v *Validator) ValidateProsody(frames []models.ProsodyFrame) error {
	for i, f := range frames {
		if f.Timestamp < 0 {
			return fmt.Errorf("prosody frame %d: %w", i, ErrNegativeTimestamp)
		}
	}
	return nil
}

package schema

import (
	"errors"
	"testing"

	"speech-enrichment-service/internal/models"
)

func TestValidateWords(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		words   []models.Word
		wantErr error
	}{
		{"nil words", nil, ErrNilWords},
		{"empty words ok", []models.Word{}, nil},
		{"valid words", []models.Word{{Text: "hi", Start: 0, End: 0.3}}, nil},
		{"negative start", []models.Word{{Text: "hi", Start: -0.1, End: 0.3}}, ErrNegativeTimestamp},
		{"zero duration tolerated", []models.Word{{Text: "x", Start: 1, End: 1}}, nil},
		{"reversed span tolerated", []models.Word{{Text: "x", Start: 1, End: 0.5}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWords(tt.words)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateFrames(t *testing.T) {
	v := New()

	if err := v.ValidateVision([]models.VisionFrame{{Timestamp: 0.5}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.ValidateVision([]models.VisionFrame{{Timestamp: -1}}); !errors.Is(err, ErrNegativeTimestamp) {
		t.Errorf("expected ErrNegativeTimestamp, got %v", err)
	}
	if err := v.ValidateProsody(nil); err != nil {
		t.Errorf("nil prosody frames must pass, got %v", err)
	}
	if err := v.ValidateProsody([]models.ProsodyFrame{{Timestamp: -0.01}}); !errors.Is(err, ErrNegativeTimestamp) {
		t.Errorf("expected ErrNegativeTimestamp, got %v", err)
	}
}

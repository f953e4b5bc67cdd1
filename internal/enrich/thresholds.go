// Package enrich implements the multimodal enrichment core: slicing
// differently-sampled vision and prosody series onto the word timeline,
// per-word feature extraction, the heuristic tag bank, confidence scoring,
// and utterance-level pattern aggregation.
package enrich

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Thresholds centralizes every numeric cutoff used by the heuristic bank.
// It is passed by value into the tagger so tests can substitute custom
// values without touching package state.
type Thresholds struct {
	// Gesture / movement
	HighGestureEnergy    float64 `yaml:"high_gesture_energy"`
	StaticHands          float64 `yaml:"static_hands"`
	MinimalWordDuration  float64 `yaml:"minimal_word_duration"`
	VeryShortWord        float64 `yaml:"very_short_word"`
	EmphasisGestureCombo float64 `yaml:"emphasis_gesture_combo"`

	// Audio intensity
	VocalEmphasis       float64 `yaml:"vocal_emphasis"`
	ModerateEmphasis    float64 `yaml:"moderate_emphasis"`
	LowIntensity        float64 `yaml:"low_intensity"`
	VeryLowIntensity    float64 `yaml:"very_low_intensity"`
	FillerWordIntensity float64 `yaml:"filler_word_intensity"`

	// Pitch
	HighPitch        float64 `yaml:"high_pitch"`
	VeryHighPitch    float64 `yaml:"very_high_pitch"`
	LowPitch         float64 `yaml:"low_pitch"`
	PitchFloor       float64 `yaml:"pitch_floor"`
	PitchRise        float64 `yaml:"pitch_rise"`
	PitchFall        float64 `yaml:"pitch_fall"`
	PitchWobbleStd   float64 `yaml:"pitch_wobble_std"`
	PlausiblePitchLo float64 `yaml:"plausible_pitch_lo"`
	PlausiblePitchHi float64 `yaml:"plausible_pitch_hi"`
	ContourPitchLo   float64 `yaml:"contour_pitch_lo"`
	ContourPitchHi   float64 `yaml:"contour_pitch_hi"`

	// Pacing (word duration)
	VeryFastWord float64 `yaml:"very_fast_word"`
	FastWord     float64 `yaml:"fast_word"`
	SlowWord     float64 `yaml:"slow_word"`
	VerySlowWord float64 `yaml:"very_slow_word"`

	// Pauses
	ShortPause    float64 `yaml:"short_pause"`
	LongPause     float64 `yaml:"long_pause"`
	VeryLongPause float64 `yaml:"very_long_pause"`

	// Intensity dynamics
	IntensitySpike float64 `yaml:"intensity_spike"`
	IntensityDrop  float64 `yaml:"intensity_drop"`

	// Disfluency
	HesitationMinDuration float64 `yaml:"hesitation_min_duration"`
	FalseStartMaxDuration float64 `yaml:"false_start_max_duration"`

	// Minimum sample counts for the prosody-window heuristics. Short words
	// at coarse frame rates fall below these and simply produce no tags;
	// precision is favored over recall here.
	ContourMinSamples  int `yaml:"contour_min_samples"`
	WobbleMinSamples   int `yaml:"wobble_min_samples"`
	DynamicsMinSamples int `yaml:"dynamics_min_samples"`
	TrendMinSamples    int `yaml:"trend_min_samples"`
}

// DefaultThresholds returns the tuned production values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighGestureEnergy:    0.02,
		StaticHands:          0.005,
		MinimalWordDuration:  0.5,
		VeryShortWord:        0.15,
		EmphasisGestureCombo: 0.015,

		VocalEmphasis:       0.065,
		ModerateEmphasis:    0.05,
		LowIntensity:        0.035,
		VeryLowIntensity:    0.02,
		FillerWordIntensity: 0.045,

		HighPitch:        350,
		VeryHighPitch:    450,
		LowPitch:         120,
		PitchFloor:       50,
		PitchRise:        60,
		PitchFall:        60,
		PitchWobbleStd:   40,
		PlausiblePitchLo: 50,
		PlausiblePitchHi: 2000,
		ContourPitchLo:   70,
		ContourPitchHi:   800,

		VeryFastWord: 0.15,
		FastWord:     0.25,
		SlowWord:     0.8,
		VerySlowWord: 1.2,

		ShortPause:    0.3,
		LongPause:     0.8,
		VeryLongPause: 1.5,

		IntensitySpike: 0.03,
		IntensityDrop:  0.02,

		HesitationMinDuration: 0.3,
		FalseStartMaxDuration: 0.3,

		ContourMinSamples:  4,
		WobbleMinSamples:   5,
		DynamicsMinSamples: 3,
		TrendMinSamples:    4,
	}
}

// LoadThresholds reads YAML overrides from path on top of the defaults.
// Fields absent from the file keep their default values.
func LoadThresholds(path string) (Thresholds, error) {
	th := DefaultThresholds()
	f, err := os.Open(path)
	if err != nil {
		return th, fmt.Errorf("open thresholds file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(&th); err != nil {
		return DefaultThresholds(), fmt.Errorf("decode thresholds file: %w", err)
	}
	return th, nil
}

// wordSet is a closed-class word list with membership tested on normalized
// tokens.
type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) contains(normalized string) bool {
	_, ok := s[normalized]
	return ok
}

// Lexicon holds the closed word lists consumed by the lexical and
// disfluency heuristics.
type Lexicon struct {
	Fillers      wordSet
	StutterProne wordSet
	Questions    wordSet
	Assertions   wordSet
	Uncertainty  wordSet
}

// DefaultLexicon returns the production word lists. Multi-token entries can
// never match a single transcript token; they are kept for completeness of
// the closed class.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Fillers: newWordSet(
			// Classic fillers
			"um", "uh", "er", "ah", "eh", "hmm", "mm", "mhm", "uh-huh",
			// Discourse markers that usually function as fillers
			"like", "you know", "i mean", "sort of", "kind of",
			"basically", "actually", "literally", "honestly",
			"right", "okay", "ok", "alright", "yeah", "yep",
			// Thinking markers
			"well", "so", "now", "let's see", "let me think",
			// Short function words that are fillers when isolated
			"i", "the", "a", "and", "but", "or",
		),
		StutterProne: newWordSet(
			"i", "the", "a", "and", "but", "to", "is", "was", "be",
			"it", "that", "you", "he", "she", "we", "they",
		),
		Questions: newWordSet(
			"what", "when", "where", "who", "why", "how", "which",
			"is", "are", "can", "could", "would", "should", "do", "does", "did",
		),
		Assertions: newWordSet(
			"definitely", "absolutely", "certainly", "surely", "clearly",
			"obviously", "never", "always", "must", "will", "really",
		),
		Uncertainty: newWordSet(
			"maybe", "perhaps", "possibly", "probably", "might", "may",
			"seem", "seems", "appears", "guess", "suppose", "think",
		),
	}
}

// NormalizeToken lowercases a transcript token and strips surrounding
// punctuation, matching how every lexicon and disfluency comparison sees it.
func NormalizeToken(text string) string {
	return strings.Trim(strings.ToLower(text), ".,!?;:'\"")
}

// IsFiller reports whether the token is a filler/hesitation word.
func (l *Lexicon) IsFiller(text string) bool {
	return l.Fillers.contains(NormalizeToken(text))
}

// IsStutterProne reports whether the token belongs to the closed class of
// words that indicate stuttering when repeated.
func (l *Lexicon) IsStutterProne(text string) bool {
	return l.StutterProne.contains(NormalizeToken(text))
}

// IsQuestion reports whether the token typically starts a question.
func (l *Lexicon) IsQuestion(text string) bool {
	return l.Questions.contains(NormalizeToken(text))
}

// IsAssertion reports whether the token signals strong assertion.
func (l *Lexicon) IsAssertion(text string) bool {
	return l.Assertions.contains(NormalizeToken(text))
}

// IsUncertainty reports whether the token marks uncertainty.
func (l *Lexicon) IsUncertainty(text string) bool {
	return l.Uncertainty.contains(NormalizeToken(text))
}

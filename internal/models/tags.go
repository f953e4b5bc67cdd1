package models

// Tag is a categorical label describing an observed speech, gesture, or
// vocal pattern on a single word. The set of tags is closed: downstream
// consumers build prompts from these exact strings, so the vocabulary is a
// versioned contract.
type Tag string

const (
	// Gesture energy
	TagHighGestureEnergy Tag = "high_gesture_energy"
	TagModerateGesture   Tag = "moderate_gesture"
	TagStaticHands       Tag = "static_hands"

	// Vocal patterns
	TagStrongVocalEmphasis Tag = "strong_vocal_emphasis"
	TagVocalEmphasis       Tag = "vocal_emphasis"
	TagVerySoftSpoken      Tag = "very_soft_spoken"
	TagSoftSpoken          Tag = "soft_spoken"
	TagVeryHighPitch       Tag = "very_high_pitch"
	TagHighPitch           Tag = "high_pitch"
	TagLowPitch            Tag = "low_pitch"

	// Pacing
	TagVeryFast       Tag = "very_fast"
	TagFastPaced      Tag = "fast_paced"
	TagVerySlow       Tag = "very_slow"
	TagSlowDeliberate Tag = "slow_deliberate"

	// Lexical
	TagFillerWord        Tag = "filler_word"
	TagHesitation        Tag = "hesitation"
	TagQuestionWord      Tag = "question_word"
	TagAssertion         Tag = "assertion"
	TagUncertaintyMarker Tag = "uncertainty_marker"

	// Pitch contour
	TagRisingIntonation  Tag = "rising_intonation"
	TagFallingIntonation Tag = "falling_intonation"
	TagPitchWobble       Tag = "pitch_wobble"

	// Intensity dynamics
	TagIntensitySpike Tag = "intensity_spike"
	TagCrescendo      Tag = "crescendo"
	TagDecrescendo    Tag = "decrescendo"

	// Cross-modal coordination
	TagStrongEmphasis    Tag = "strong_emphasis"
	TagModerateEmphasis  Tag = "moderate_emphasis"
	TagAnimated          Tag = "animated"
	TagPassionate        Tag = "passionate"
	TagLowEnergy         Tag = "low_energy"
	TagSearchingForWords Tag = "searching_for_words"

	// Pauses
	TagVeryLongPauseBefore Tag = "very_long_pause_before"
	TagLongPauseBefore     Tag = "long_pause_before"
	TagShortPauseBefore    Tag = "short_pause_before"

	// Disfluencies
	TagStutter    Tag = "stutter"
	TagFalseStart Tag = "false_start"

	// TagError marks a word whose enrichment failed; the word still carries
	// a neutral confidence score so the utterance-level analysis stays sane.
	TagError Tag = "error"
)

// Pattern is an utterance-level behavioral label detected by the sentence
// aggregator. Like Tag, the set is closed.
type Pattern string

const (
	PatternFrequentDisfluencies Pattern = "frequent_disfluencies"
	PatternSomeDisfluencies     Pattern = "some_disfluencies"
	PatternHighlyAnimated       Pattern = "highly_animated"
	PatternModeratelyAnimated   Pattern = "moderately_animated"
	PatternMinimalGesture       Pattern = "minimal_gesture"
	PatternLowEnergyDelivery    Pattern = "low_energy_delivery"
	PatternConfidentDelivery    Pattern = "confident_delivery"
	PatternUncertainDelivery    Pattern = "uncertain_delivery"
	PatternEmphaticSpeech       Pattern = "emphatic_speech"
	PatternRapidSpeech          Pattern = "rapid_speech"
	PatternDeliberateSpeech     Pattern = "deliberate_speech"
	PatternFrequentPauses       Pattern = "frequent_pauses"
	PatternPassionateDelivery   Pattern = "passionate_delivery"
	PatternAnimatedDelivery     Pattern = "animated_delivery"
	PatternShowsUncertainty     Pattern = "shows_uncertainty"
)

package enrich

import "speech-enrichment-service/internal/models"

// Confidence scoring adjustments. The scorer is a transparent additive rule
// system: every applicable adjustment applies, the result is clamped to
// [0,100], and identical input always yields the identical score.
const (
	scoreNeutral = 50

	bonusFallingIntonation = 15
	bonusVocalEmphasis     = 12
	bonusLowPitch          = 8
	bonusAssertion         = 10
	bonusPassionate        = 8
	bonusPurposefulGesture = 10
	bonusSolidIntensity    = 10
	bonusDeliberateWord    = 5
	bonusSlowDeliberate    = 8
	bonusCrescendo         = 6

	penaltyDisfluency  = 25
	penaltyFiller      = 15
	penaltyUncertainty = 12
	penaltyStaticHands = 8
	penaltySoftSpoken  = 12
	penaltyRisingNonQ  = 7
	penaltyPitchWobble = 10
	penaltyLowEnergy   = 15
	penaltySearching   = 12
	penaltyVeryFast    = 8
	penaltyLongPause   = 10
	penaltyDecrescendo = 5

	// Raw-metric cutoffs for the scorer's own checks.
	purposefulGestureLo = 0.01
	purposefulGestureHi = 0.03
	solidIntensityMin   = 0.045
	deliberateWordMin   = 0.5
)

// Score converts a word's tag set, raw metrics, and duration into a 0-100
// confidence score.
func Score(metrics models.WordMetrics, tags []models.Tag, wordDuration float64) int {
	has := func(tag models.Tag) bool {
		for _, t := range tags {
			if t == tag {
				return true
			}
		}
		return false
	}

	score := scoreNeutral

	// Positive factors
	if has(models.TagFallingIntonation) {
		score += bonusFallingIntonation
	}
	if has(models.TagStrongVocalEmphasis) || has(models.TagVocalEmphasis) {
		score += bonusVocalEmphasis
	}
	if has(models.TagLowPitch) {
		score += bonusLowPitch
	}
	if has(models.TagAssertion) {
		score += bonusAssertion
	}
	if has(models.TagPassionate) {
		score += bonusPassionate
	}
	if metrics.WristVelocity > purposefulGestureLo && metrics.WristVelocity < purposefulGestureHi {
		score += bonusPurposefulGesture
	}
	if metrics.AudioIntensity > solidIntensityMin {
		score += bonusSolidIntensity
	}
	if wordDuration > deliberateWordMin {
		score += bonusDeliberateWord
	}
	if has(models.TagSlowDeliberate) {
		score += bonusSlowDeliberate
	}
	if has(models.TagCrescendo) {
		score += bonusCrescendo
	}

	// Negative factors
	if has(models.TagStutter) || has(models.TagFalseStart) {
		score -= penaltyDisfluency
	}
	if has(models.TagHesitation) || has(models.TagFillerWord) {
		score -= penaltyFiller
	}
	if has(models.TagUncertaintyMarker) {
		score -= penaltyUncertainty
	}
	if has(models.TagStaticHands) && wordDuration > deliberateWordMin {
		score -= penaltyStaticHands
	}
	if has(models.TagSoftSpoken) || has(models.TagVerySoftSpoken) {
		score -= penaltySoftSpoken
	}
	if has(models.TagRisingIntonation) && !has(models.TagQuestionWord) {
		score -= penaltyRisingNonQ
	}
	if has(models.TagPitchWobble) {
		score -= penaltyPitchWobble
	}
	if has(models.TagLowEnergy) {
		score -= penaltyLowEnergy
	}
	if has(models.TagSearchingForWords) {
		score -= penaltySearching
	}
	if has(models.TagVeryFast) {
		score -= penaltyVeryFast
	}
	if has(models.TagLongPauseBefore) || has(models.TagVeryLongPauseBefore) {
		score -= penaltyLongPause
	}
	if has(models.TagDecrescendo) {
		score -= penaltyDecrescendo
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

package enrich

import (
	"math"
	"strings"

	"speech-enrichment-service/internal/models"
)

// Tagger is the heuristic rule bank. Each analyzer is a pure function over
// a word's metrics, raw prosody frames, text, and neighbors; Apply runs the
// full bank in a fixed priority order and deduplicates the result.
type Tagger struct {
	TH  Thresholds
	Lex Lexicon
}

// NewTagger builds a tagger with the given registry values.
func NewTagger(th Thresholds, lex Lexicon) *Tagger {
	return &Tagger{TH: th, Lex: lex}
}

// WordContext is the read-only feature record one word's tagging runs over.
// Prosody holds the frames already sliced to the word's span. HasVision and
// HasProsody report whether the modality stream was present for the whole
// recording; when a stream is absent the analyzers that depend on it
// produce no tags instead of firing on zero-valued metrics.
type WordContext struct {
	Word       models.Word
	Metrics    models.WordMetrics
	Prosody    []models.ProsodyFrame
	Previous   []models.EnrichedWord
	Next       []models.Word
	HasVision  bool
	HasProsody bool
}

// GestureEnergy tags hand-movement patterns. The static-hands check only
// applies to words long enough for stillness to mean anything.
func (t *Tagger) GestureEnergy(wristVelocity, wordDuration float64) []models.Tag {
	var tags []models.Tag

	if wristVelocity > t.TH.HighGestureEnergy {
		tags = append(tags, models.TagHighGestureEnergy)
	} else if wristVelocity > t.TH.EmphasisGestureCombo {
		tags = append(tags, models.TagModerateGesture)
	}

	if wordDuration > t.TH.MinimalWordDuration && wristVelocity < t.TH.StaticHands {
		tags = append(tags, models.TagStaticHands)
	}

	return tags
}

// AcousticLevels tags intensity and pitch level. The emphasis and softness
// ladders are independent of each other.
func (t *Tagger) AcousticLevels(avgIntensity, avgPitch float64) []models.Tag {
	var tags []models.Tag

	if avgIntensity > t.TH.VocalEmphasis {
		tags = append(tags, models.TagStrongVocalEmphasis)
	} else if avgIntensity > t.TH.ModerateEmphasis {
		tags = append(tags, models.TagVocalEmphasis)
	}

	if avgIntensity < t.TH.VeryLowIntensity {
		tags = append(tags, models.TagVerySoftSpoken)
	} else if avgIntensity < t.TH.LowIntensity {
		tags = append(tags, models.TagSoftSpoken)
	}

	if avgPitch > t.TH.VeryHighPitch {
		tags = append(tags, models.TagVeryHighPitch)
	} else if avgPitch > t.TH.HighPitch {
		tags = append(tags, models.TagHighPitch)
	} else if avgPitch > t.TH.PitchFloor && avgPitch < t.TH.LowPitch {
		// Only tag low pitch when it is meaningfully low, not absent.
		tags = append(tags, models.TagLowPitch)
	}

	return tags
}

// Pacing tags word-duration pacing. The ladder is first-match-wins.
func (t *Tagger) Pacing(wordDuration float64) []models.Tag {
	switch {
	case wordDuration < t.TH.VeryFastWord:
		return []models.Tag{models.TagVeryFast}
	case wordDuration < t.TH.FastWord:
		return []models.Tag{models.TagFastPaced}
	case wordDuration > t.TH.VerySlowWord:
		return []models.Tag{models.TagVerySlow}
	case wordDuration > t.TH.SlowWord:
		return []models.Tag{models.TagSlowDeliberate}
	}
	return nil
}

// Lexical tags closed-class word membership. A quiet, drawn-out filler is
// additionally a hesitation rather than a tic.
func (t *Tagger) Lexical(wordText string, avgIntensity, wordDuration float64) []models.Tag {
	var tags []models.Tag

	if t.Lex.IsFiller(wordText) {
		tags = append(tags, models.TagFillerWord)
		if avgIntensity < t.TH.FillerWordIntensity && wordDuration > t.TH.HesitationMinDuration {
			tags = append(tags, models.TagHesitation)
		}
	}

	if t.Lex.IsQuestion(wordText) {
		tags = append(tags, models.TagQuestionWord)
	}
	if t.Lex.IsAssertion(wordText) {
		tags = append(tags, models.TagAssertion)
	}
	if t.Lex.IsUncertainty(wordText) {
		tags = append(tags, models.TagUncertaintyMarker)
	}

	return tags
}

// PitchContour tags pitch movement within the word. It needs enough
// filtered samples to be trustworthy; sparse slices produce no tags.
func (t *Tagger) PitchContour(frames []models.ProsodyFrame) []models.Tag {
	var tags []models.Tag

	if len(frames) < t.TH.ContourMinSamples {
		return tags
	}

	var pitches []float64
	for _, p := range frames {
		if p.Pitch != nil && t.TH.ContourPitchLo < *p.Pitch && *p.Pitch < t.TH.ContourPitchHi {
			pitches = append(pitches, *p.Pitch)
		}
	}
	if len(pitches) < t.TH.ContourMinSamples {
		return tags
	}

	pitchChange := pitches[len(pitches)-1] - pitches[0]
	pitchStd := stddev(pitches)

	if pitchChange > t.TH.PitchRise {
		tags = append(tags, models.TagRisingIntonation)
	}
	if pitchChange < -t.TH.PitchFall {
		tags = append(tags, models.TagFallingIntonation)
	}

	if pitchStd > t.TH.PitchWobbleStd && len(pitches) > t.TH.WobbleMinSamples {
		tags = append(tags, models.TagPitchWobble)
	}

	return tags
}

// IntensityChange tags loudness dynamics within the word: sudden spikes and
// sustained crescendo/decrescendo trends.
func (t *Tagger) IntensityChange(frames []models.ProsodyFrame) []models.Tag {
	var tags []models.Tag

	if len(frames) < t.TH.DynamicsMinSamples {
		return tags
	}

	intensities := make([]float64, 0, len(frames))
	for _, p := range frames {
		intensities = append(intensities, p.Intensity)
	}

	maxChange := 0.0
	for i := 1; i < len(intensities); i++ {
		if d := math.Abs(intensities[i] - intensities[i-1]); d > maxChange {
			maxChange = d
		}
	}
	if maxChange > t.TH.IntensitySpike {
		tags = append(tags, models.TagIntensitySpike)
	}

	if len(intensities) >= t.TH.TrendMinSamples {
		mid := len(intensities) / 2
		firstHalf := mean(intensities[:mid])
		secondHalf := mean(intensities[mid:])

		if secondHalf-firstHalf > t.TH.IntensitySpike {
			tags = append(tags, models.TagCrescendo)
		} else if firstHalf-secondHalf > t.TH.IntensityDrop {
			tags = append(tags, models.TagDecrescendo)
		}
	}

	return tags
}

// MultimodalEmphasis tags coordination across modalities. The six checks
// are independent; any subset may fire.
func (t *Tagger) MultimodalEmphasis(wristVelocity, avgIntensity, avgPitch float64) []models.Tag {
	var tags []models.Tag

	if wristVelocity > t.TH.EmphasisGestureCombo && avgIntensity > t.TH.VocalEmphasis {
		tags = append(tags, models.TagStrongEmphasis)
	} else if wristVelocity > t.TH.EmphasisGestureCombo && avgIntensity > t.TH.ModerateEmphasis {
		tags = append(tags, models.TagModerateEmphasis)
	}

	if wristVelocity > t.TH.EmphasisGestureCombo && avgPitch > t.TH.HighPitch {
		tags = append(tags, models.TagAnimated)
	}

	if avgPitch > t.TH.HighPitch && avgIntensity > t.TH.VocalEmphasis {
		tags = append(tags, models.TagPassionate)
	}

	if wristVelocity < t.TH.StaticHands && avgIntensity < t.TH.LowIntensity {
		tags = append(tags, models.TagLowEnergy)
	}

	// Gesturing without voice: reaching for words.
	if wristVelocity > t.TH.EmphasisGestureCombo && avgIntensity < t.TH.LowIntensity {
		tags = append(tags, models.TagSearchingForWords)
	}

	return tags
}

// PauseBefore tags the silence between this word and the previous one.
// Overlapping words produce no tag. The ladder is first-match-wins with
// exclusive boundaries: a gap of exactly 1.5s is a long pause, not a very
// long one.
func (t *Tagger) PauseBefore(word models.Word, prev *models.EnrichedWord) []models.Tag {
	var tags []models.Tag

	if prev == nil {
		return tags
	}

	gap := word.Start - prev.End
	if gap < 0 {
		return tags
	}

	switch {
	case gap > t.TH.VeryLongPause:
		tags = append(tags, models.TagVeryLongPauseBefore)
	case gap > t.TH.LongPause:
		tags = append(tags, models.TagLongPauseBefore)
	case gap > t.TH.ShortPause:
		tags = append(tags, models.TagShortPauseBefore)
	}

	return tags
}

// IsStutter reports whether the word repeats or fragments its predecessor:
// a very short exact repetition, a very short syllable fragment the previous
// word starts with, or a repeated stutter-prone function word.
func (t *Tagger) IsStutter(word models.Word, previous []models.EnrichedWord) bool {
	if len(previous) == 0 {
		return false
	}

	currentText := NormalizeToken(word.Text)
	prevText := NormalizeToken(previous[len(previous)-1].Text)

	if word.Duration() < t.TH.VeryShortWord {
		if currentText == prevText {
			return true
		}
		if len(currentText) <= 3 && strings.HasPrefix(prevText, currentText) {
			return true
		}
	}

	if t.Lex.StutterProne.contains(currentText) && currentText == prevText {
		return true
	}

	return false
}

// IsFalseStart reports whether the word looks like an abandoned start: a
// short stutter-prone word immediately followed by a filler ("I uh I mean").
func (t *Tagger) IsFalseStart(word models.Word, next []models.Word) bool {
	if len(next) == 0 {
		return false
	}

	if word.Duration() < t.TH.FalseStartMaxDuration && t.Lex.IsStutterProne(word.Text) {
		if len(next) >= 2 && t.Lex.IsFiller(next[0].Text) {
			return true
		}
	}

	return false
}

// Apply runs the full heuristic bank on one word and returns the enriched
// word with its deduplicated tag set and confidence score. Analyzers whose
// modality stream is absent contribute no tags; pacing, lexical, pause, and
// disfluency checks run regardless.
func (t *Tagger) Apply(wc WordContext) models.EnrichedWord {
	word := wc.Word
	duration := word.Duration()

	var tags []models.Tag

	if wc.HasVision {
		tags = append(tags, t.GestureEnergy(wc.Metrics.WristVelocity, duration)...)
	}

	if wc.HasProsody {
		tags = append(tags, t.AcousticLevels(wc.Metrics.AudioIntensity, wc.Metrics.Pitch)...)
	}
	tags = append(tags, t.Pacing(duration)...)
	tags = append(tags, t.Lexical(word.Text, wc.Metrics.AudioIntensity, duration)...)

	tags = append(tags, t.PitchContour(wc.Prosody)...)
	tags = append(tags, t.IntensityChange(wc.Prosody)...)

	if wc.HasVision && wc.HasProsody {
		tags = append(tags, t.MultimodalEmphasis(wc.Metrics.WristVelocity, wc.Metrics.AudioIntensity, wc.Metrics.Pitch)...)
	}

	if len(wc.Previous) > 0 {
		tags = append(tags, t.PauseBefore(word, &wc.Previous[len(wc.Previous)-1])...)
	}

	if t.IsStutter(word, wc.Previous) {
		tags = append(tags, models.TagStutter)
	}
	if t.IsFalseStart(word, wc.Next) {
		tags = append(tags, models.TagFalseStart)
	}

	tags = dedupTags(tags)

	return models.EnrichedWord{
		Word:            word,
		Metrics:         wc.Metrics,
		Tags:            tags,
		ConfidenceScore: Score(wc.Metrics, tags, duration),
	}
}

// dedupTags collapses duplicates, keeping the first occurrence of each tag.
// The result is never nil.
func dedupTags(tags []models.Tag) []models.Tag {
	out := make([]models.Tag, 0, len(tags))
	seen := make(map[models.Tag]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

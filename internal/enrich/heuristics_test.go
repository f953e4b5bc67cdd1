package enrich

import (
	"reflect"
	"testing"

	"speech-enrichment-service/internal/models"
)

func defaultTagger() *Tagger {
	return NewTagger(DefaultThresholds(), DefaultLexicon())
}

func prosodyWithPitches(pitches ...float64) []models.ProsodyFrame {
	frames := make([]models.ProsodyFrame, 0, len(pitches))
	for i, p := range pitches {
		frames = append(frames, models.ProsodyFrame{
			Timestamp: float64(i) * 0.05,
			Pitch:     pitchPtr(p),
		})
	}
	return frames
}

func prosodyWithIntensities(intensities ...float64) []models.ProsodyFrame {
	frames := make([]models.ProsodyFrame, 0, len(intensities))
	for i, v := range intensities {
		frames = append(frames, models.ProsodyFrame{
			Timestamp: float64(i) * 0.05,
			Intensity: v,
		})
	}
	return frames
}

func TestGestureEnergy(t *testing.T) {
	tagger := defaultTagger()

	tests := []struct {
		name     string
		velocity float64
		duration float64
		want     []models.Tag
	}{
		{"high energy", 0.03, 0.3, []models.Tag{models.TagHighGestureEnergy}},
		{"moderate", 0.017, 0.3, []models.Tag{models.TagModerateGesture}},
		{"below moderate", 0.01, 0.3, nil},
		{"static on long word", 0.004, 0.6, []models.Tag{models.TagStaticHands}},
		{"still but word too short", 0.004, 0.3, nil},
		{"exactly at high threshold", 0.02, 0.3, []models.Tag{models.TagModerateGesture}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.GestureEnergy(tt.velocity, tt.duration)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAcousticLevels(t *testing.T) {
	tagger := defaultTagger()

	tests := []struct {
		name      string
		intensity float64
		pitch     float64
		want      []models.Tag
	}{
		{"strong emphasis", 0.07, 200, []models.Tag{models.TagStrongVocalEmphasis}},
		{"moderate emphasis", 0.055, 200, []models.Tag{models.TagVocalEmphasis}},
		{"very soft", 0.01, 200, []models.Tag{models.TagVerySoftSpoken}},
		{"soft", 0.03, 200, []models.Tag{models.TagSoftSpoken}},
		{"very high pitch", 0.05, 500, []models.Tag{models.TagVocalEmphasis, models.TagVeryHighPitch}},
		{"high pitch", 0.05, 400, []models.Tag{models.TagVocalEmphasis, models.TagHighPitch}},
		{"low pitch", 0.05, 100, []models.Tag{models.TagVocalEmphasis, models.TagLowPitch}},
		{"pitch below floor is absence", 0.05, 30, []models.Tag{models.TagVocalEmphasis}},
		{"neutral band", 0.04, 200, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.AcousticLevels(tt.intensity, tt.pitch)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPacing_FirstMatchWins(t *testing.T) {
	tagger := defaultTagger()

	tests := []struct {
		name     string
		duration float64
		want     []models.Tag
	}{
		{"very fast", 0.1, []models.Tag{models.TagVeryFast}},
		{"fast", 0.2, []models.Tag{models.TagFastPaced}},
		{"neutral", 0.5, nil},
		{"slow", 0.9, []models.Tag{models.TagSlowDeliberate}},
		{"very slow", 1.3, []models.Tag{models.TagVerySlow}},
		{"boundary 0.15 is fast not very fast", 0.15, []models.Tag{models.TagFastPaced}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Pacing(tt.duration)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLexical(t *testing.T) {
	tagger := defaultTagger()

	tests := []struct {
		name      string
		text      string
		intensity float64
		duration  float64
		want      []models.Tag
	}{
		{"filler", "Um,", 0.05, 0.2, []models.Tag{models.TagFillerWord}},
		{"hesitant filler", "um", 0.03, 0.4, []models.Tag{models.TagFillerWord, models.TagHesitation}},
		{"loud filler is not hesitation", "um", 0.06, 0.4, []models.Tag{models.TagFillerWord}},
		{"short filler is not hesitation", "um", 0.03, 0.2, []models.Tag{models.TagFillerWord}},
		{"question word", "What", 0.05, 0.2, []models.Tag{models.TagQuestionWord}},
		{"assertion", "definitely", 0.05, 0.4, []models.Tag{models.TagAssertion}},
		{"uncertainty", "maybe", 0.05, 0.4, []models.Tag{models.TagUncertaintyMarker}},
		{"punctuation stripped", "Definitely!", 0.05, 0.4, []models.Tag{models.TagAssertion}},
		{"plain word", "sunshine", 0.05, 0.4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Lexical(tt.text, tt.intensity, tt.duration)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPitchContour(t *testing.T) {
	tagger := defaultTagger()

	tests := []struct {
		name   string
		frames []models.ProsodyFrame
		want   []models.Tag
	}{
		{"too few frames", prosodyWithPitches(100, 110, 120), nil},
		{"rising", prosodyWithPitches(100, 110, 120, 180), []models.Tag{models.TagRisingIntonation}},
		{"falling", prosodyWithPitches(200, 190, 150, 120), []models.Tag{models.TagFallingIntonation}},
		{"flat", prosodyWithPitches(150, 155, 150, 152), nil},
		{"wobble", prosodyWithPitches(100, 200, 100, 200, 100, 120), []models.Tag{models.TagPitchWobble}},
		{"out-of-band samples filtered", prosodyWithPitches(60, 100, 110, 900), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.PitchContour(tt.frames)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPitchContour_RiseFallExclusive(t *testing.T) {
	// Rising and falling share one magnitude threshold with opposite signs;
	// with symmetric thresholds they can never fire together.
	tagger := defaultTagger()

	inputs := [][]models.ProsodyFrame{
		prosodyWithPitches(100, 120, 140, 200),
		prosodyWithPitches(300, 250, 200, 100),
		prosodyWithPitches(100, 300, 100, 300, 100, 300),
	}

	for _, frames := range inputs {
		tags := tagger.PitchContour(frames)
		rising, falling := false, false
		for _, tag := range tags {
			if tag == models.TagRisingIntonation {
				rising = true
			}
			if tag == models.TagFallingIntonation {
				falling = true
			}
		}
		if rising && falling {
			t.Errorf("rising and falling intonation fired together: %v", tags)
		}
	}
}

func TestIntensityChange(t *testing.T) {
	tagger := defaultTagger()

	tests := []struct {
		name   string
		frames []models.ProsodyFrame
		want   []models.Tag
	}{
		{"too few frames", prosodyWithIntensities(0.01, 0.05), nil},
		{"spike only", prosodyWithIntensities(0.01, 0.05, 0.01), []models.Tag{models.TagIntensitySpike}},
		{"spike and crescendo", prosodyWithIntensities(0.01, 0.01, 0.05, 0.05), []models.Tag{models.TagIntensitySpike, models.TagCrescendo}},
		{"decrescendo", prosodyWithIntensities(0.05, 0.045, 0.02, 0.018), []models.Tag{models.TagDecrescendo}},
		{"steady", prosodyWithIntensities(0.04, 0.041, 0.04, 0.042), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.IntensityChange(tt.frames)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMultimodalEmphasis(t *testing.T) {
	tagger := defaultTagger()

	tests := []struct {
		name      string
		velocity  float64
		intensity float64
		pitch     float64
		want      []models.Tag
	}{
		{"strong emphasis", 0.02, 0.07, 200, []models.Tag{models.TagStrongEmphasis}},
		{"moderate emphasis", 0.02, 0.06, 200, []models.Tag{models.TagModerateEmphasis}},
		{"animated while searching", 0.02, 0.02, 400, []models.Tag{models.TagAnimated, models.TagSearchingForWords}},
		{"passionate", 0.0, 0.07, 400, []models.Tag{models.TagPassionate}},
		{"low energy", 0.004, 0.02, 0, []models.Tag{models.TagLowEnergy}},
		{"neutral", 0.01, 0.05, 200, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.MultimodalEmphasis(tt.velocity, tt.intensity, tt.pitch)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPauseBefore(t *testing.T) {
	tagger := defaultTagger()
	prev := &models.EnrichedWord{Word: models.Word{Text: "before", Start: 4.0, End: 5.0}}

	tests := []struct {
		name  string
		start float64
		want  []models.Tag
	}{
		{"no pause", 5.1, nil},
		{"short pause", 5.4, []models.Tag{models.TagShortPauseBefore}},
		{"long pause", 6.0, []models.Tag{models.TagLongPauseBefore}},
		{"gap of exactly 1.5 is long not very long", 6.5, []models.Tag{models.TagLongPauseBefore}},
		{"very long pause", 7.0, []models.Tag{models.TagVeryLongPauseBefore}},
		{"overlap", 4.5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word := models.Word{Text: "now", Start: tt.start, End: tt.start + 0.5}
			got := tagger.PauseBefore(word, prev)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if got := tagger.PauseBefore(models.Word{Start: 10}, nil); got != nil {
		t.Errorf("expected no tags without a previous word, got %v", got)
	}
}

func TestIsStutter(t *testing.T) {
	tagger := defaultTagger()

	prev := func(text string) []models.EnrichedWord {
		return []models.EnrichedWord{{Word: models.Word{Text: text, Start: 0, End: 0.1}}}
	}

	tests := []struct {
		name     string
		word     models.Word
		previous []models.EnrichedWord
		want     bool
	}{
		{"short exact repetition", models.Word{Text: "I", Start: 0.2, End: 0.3}, prev("I"), true},
		{"syllable fragment", models.Word{Text: "th", Start: 0.2, End: 0.3}, prev("the"), true},
		{"long fragment not treated as syllable", models.Word{Text: "hell", Start: 0.2, End: 0.3}, prev("hello"), false},
		{"repeated function word regardless of duration", models.Word{Text: "the", Start: 0.2, End: 0.7}, prev("the"), true},
		{"different words", models.Word{Text: "good", Start: 0.2, End: 0.3}, prev("morning"), false},
		{"no previous word", models.Word{Text: "I", Start: 0, End: 0.1}, nil, false},
		{"punctuation normalized", models.Word{Text: "I,", Start: 0.2, End: 0.3}, prev("I"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagger.IsStutter(tt.word, tt.previous); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsFalseStart(t *testing.T) {
	tagger := defaultTagger()

	word := func(text string) models.Word {
		return models.Word{Text: text, Start: 1.0, End: 1.2}
	}
	upcoming := func(texts ...string) []models.Word {
		out := make([]models.Word, 0, len(texts))
		for i, txt := range texts {
			out = append(out, models.Word{Text: txt, Start: 1.3 + float64(i)*0.2, End: 1.4 + float64(i)*0.2})
		}
		return out
	}

	tests := []struct {
		name string
		word models.Word
		next []models.Word
		want bool
	}{
		{"abandoned start before filler", word("I"), upcoming("uh", "I"), true},
		{"not enough lookahead", word("I"), upcoming("uh"), false},
		{"next word not a filler", word("I"), upcoming("went", "home"), false},
		{"not a stutter-prone word", word("sunshine"), upcoming("uh", "I"), false},
		{"no upcoming words", word("I"), nil, false},
		{"too long to be a false start", models.Word{Text: "I", Start: 1.0, End: 1.4}, upcoming("uh", "I"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagger.IsFalseStart(tt.word, tt.next); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApply_DedupPreservesFirstSeen(t *testing.T) {
	got := dedupTags([]models.Tag{
		models.TagFillerWord,
		models.TagHesitation,
		models.TagFillerWord,
		models.TagVeryFast,
		models.TagHesitation,
	})
	want := []models.Tag{models.TagFillerWord, models.TagHesitation, models.TagVeryFast}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	tagger := defaultTagger()

	wc := WordContext{
		Word:       models.Word{Text: "definitely", Start: 1.0, End: 1.6},
		Metrics:    models.WordMetrics{WristVelocity: 0.02, AudioIntensity: 0.05, Pitch: 380},
		Prosody:    prosodyWithPitches(300, 340, 380, 420),
		Previous:   []models.EnrichedWord{{Word: models.Word{Text: "will", Start: 0.0, End: 0.4}}},
		HasVision:  true,
		HasProsody: true,
	}

	first := tagger.Apply(wc)
	second := tagger.Apply(wc)

	if !reflect.DeepEqual(first.Tags, second.Tags) {
		t.Errorf("tagging is not idempotent: %v vs %v", first.Tags, second.Tags)
	}
	if first.ConfidenceScore != second.ConfidenceScore {
		t.Errorf("scoring is not idempotent: %d vs %d", first.ConfidenceScore, second.ConfidenceScore)
	}
}

func TestApply_AbsentModalitiesOnlyLexicalAndPauseTags(t *testing.T) {
	tagger := defaultTagger()

	metricTags := map[models.Tag]bool{
		models.TagHighGestureEnergy: true, models.TagModerateGesture: true,
		models.TagStaticHands: true, models.TagStrongVocalEmphasis: true,
		models.TagVocalEmphasis: true, models.TagVerySoftSpoken: true,
		models.TagSoftSpoken: true, models.TagVeryHighPitch: true,
		models.TagHighPitch: true, models.TagLowPitch: true,
		models.TagRisingIntonation: true, models.TagFallingIntonation: true,
		models.TagPitchWobble: true, models.TagIntensitySpike: true,
		models.TagCrescendo: true, models.TagDecrescendo: true,
		models.TagStrongEmphasis: true, models.TagModerateEmphasis: true,
		models.TagAnimated: true, models.TagPassionate: true,
		models.TagLowEnergy: true, models.TagSearchingForWords: true,
	}

	words := []models.Word{
		{Text: "um", Start: 0.0, End: 0.5},
		{Text: "definitely", Start: 1.5, End: 2.0},
		{Text: "maybe", Start: 4.0, End: 4.4},
	}

	var previous []models.EnrichedWord
	for i, w := range words {
		var next []models.Word
		if i+1 < len(words) {
			next = words[i+1:]
		}
		ew := tagger.Apply(WordContext{
			Word:     w,
			Previous: previous,
			Next:     next,
		})
		for _, tag := range ew.Tags {
			if metricTags[tag] {
				t.Errorf("word %q: metric-driven tag %q fired with both modalities absent", w.Text, tag)
			}
		}
		previous = append(previous, ew)
	}
}

package enrich

import (
	"reflect"
	"testing"

	"speech-enrichment-service/internal/models"
)

func TestEnrichTranscript_Empty(t *testing.T) {
	e := NewDefault()

	report := e.EnrichTranscript(nil, nil, nil)

	if report.Words == nil || len(report.Words) != 0 {
		t.Errorf("expected empty word list, got %v", report.Words)
	}
	if report.SentenceAnalysis.WordCount != 0 {
		t.Errorf("expected word count 0, got %d", report.SentenceAnalysis.WordCount)
	}
	if report.SentenceAnalysis.Patterns == nil {
		t.Error("expected non-nil pattern list for empty input")
	}
}

func TestEnrichTranscript_Invariants(t *testing.T) {
	e := NewDefault()

	words := []models.Word{
		{Text: "Um,", Start: 0.4, End: 0.7},
		{Text: "I", Start: 1.0, End: 1.1},
		{Text: "I", Start: 1.15, End: 1.25},
		{Text: "definitely", Start: 1.3, End: 1.9},
		{Text: "think", Start: 1.9, End: 2.2},
		{Text: "", Start: 2.2, End: 2.2}, // degenerate word must be tolerated
		{Text: "so.", Start: 4.0, End: 4.5},
	}

	report := e.EnrichTranscript(words, nil, nil)

	if len(report.Words) != len(words) {
		t.Fatalf("expected %d words out, got %d", len(words), len(report.Words))
	}
	for i, w := range report.Words {
		if w.Tags == nil {
			t.Errorf("word %d: tags must never be nil", i)
		}
		if w.ConfidenceScore < 0 || w.ConfidenceScore > 100 {
			t.Errorf("word %d: confidence %d out of [0,100]", i, w.ConfidenceScore)
		}
	}
}

func TestEnrichWords_StutterOnRepeatedShortWord(t *testing.T) {
	e := NewDefault()

	words := []models.Word{
		{Text: "I", Start: 0.0, End: 0.1},
		{Text: "I", Start: 0.15, End: 0.25},
	}

	out := e.EnrichWords(words, nil, nil)

	if !out[1].HasTag(models.TagStutter) {
		t.Errorf("expected second word tagged stutter, got %v", out[1].Tags)
	}
	if out[0].HasTag(models.TagStutter) {
		t.Errorf("first word has no previous word, must not be a stutter: %v", out[0].Tags)
	}
}

func TestEnrichWords_FalseStartLookahead(t *testing.T) {
	e := NewDefault()

	words := []models.Word{
		{Text: "I", Start: 0.0, End: 0.2},
		{Text: "uh", Start: 0.3, End: 0.5},
		{Text: "I", Start: 0.6, End: 0.7},
		{Text: "mean", Start: 0.7, End: 1.0},
	}

	out := e.EnrichWords(words, nil, nil)

	if !out[0].HasTag(models.TagFalseStart) {
		t.Errorf("expected first word tagged false_start, got %v", out[0].Tags)
	}
	if out[3].HasTag(models.TagFalseStart) {
		t.Errorf("last word has no lookahead, must not be a false start: %v", out[3].Tags)
	}
}

func TestEnrichWords_AbsentModalitiesZeroMetrics(t *testing.T) {
	e := NewDefault()

	words := []models.Word{
		{Text: "good", Start: 0.0, End: 0.4},
		{Text: "morning", Start: 0.4, End: 0.9},
	}

	out := e.EnrichWords(words, nil, nil)

	for i, w := range out {
		if w.Metrics != (models.WordMetrics{}) {
			t.Errorf("word %d: expected zero metrics without modalities, got %+v", i, w.Metrics)
		}
	}
}

func TestEnrichWords_MetricsFromFrames(t *testing.T) {
	e := NewDefault()

	words := []models.Word{{Text: "wave", Start: 0.0, End: 0.3}}
	vision := []models.VisionFrame{
		wristFrame(0.0, 0, 0, 0, 0),
		wristFrame(0.1, 0.03, 0.04, 0.01, 0),
	}
	prosody := []models.ProsodyFrame{
		{Timestamp: 0.0, Pitch: pitchPtr(200), Intensity: 0.06},
		{Timestamp: 0.1, Pitch: pitchPtr(220), Intensity: 0.08},
	}

	out := e.EnrichWords(words, vision, prosody)

	// One pair: left wrist 0.05, right wrist 0.01 -> (0.05+0.01)/2 = 0.03.
	if out[0].Metrics.WristVelocity != 0.03 {
		t.Errorf("expected wrist velocity 0.03, got %f", out[0].Metrics.WristVelocity)
	}
	if out[0].Metrics.AudioIntensity != 0.07 {
		t.Errorf("expected intensity 0.07, got %f", out[0].Metrics.AudioIntensity)
	}
	if out[0].Metrics.Pitch != 210 {
		t.Errorf("expected pitch 210, got %f", out[0].Metrics.Pitch)
	}
}

func TestEnrichTranscript_StripsMetrics(t *testing.T) {
	e := NewDefault()

	words := []models.Word{{Text: "hello", Start: 0, End: 0.5}}
	report := e.EnrichTranscript(words, nil, nil)

	want := models.WordResult{Text: "hello", Tags: report.Words[0].Tags, ConfidenceScore: report.Words[0].ConfidenceScore}
	if !reflect.DeepEqual(report.Words[0], want) {
		t.Errorf("unexpected word result shape: %+v", report.Words[0])
	}
}

func TestAnalyze_DataQuality(t *testing.T) {
	e := NewDefault()

	transcript := &models.Transcript{
		Status:   "completed",
		FullText: "hello there",
		Words: []models.Word{
			{Text: "hello", Start: 0.0, End: 0.5},
			{Text: "there", Start: 0.5, End: 1.0},
		},
	}
	// 10 prosody frames at 0.1s spacing over a 1.0s utterance: full coverage.
	prosody := make([]models.ProsodyFrame, 10)
	for i := range prosody {
		prosody[i] = models.ProsodyFrame{Timestamp: float64(i) * 0.1, Intensity: 0.05}
	}

	result := e.Analyze(transcript, nil, prosody)

	if result.OriginalTranscript.WordCount != 2 {
		t.Errorf("expected word count 2, got %d", result.OriginalTranscript.WordCount)
	}
	if result.OriginalTranscript.Duration != 1.0 {
		t.Errorf("expected duration 1.0, got %f", result.OriginalTranscript.Duration)
	}
	if result.DataQuality.ProsodyCoverage != 100 {
		t.Errorf("expected full prosody coverage, got %f", result.DataQuality.ProsodyCoverage)
	}
	if result.DataQuality.VisionCoverage != 0 {
		t.Errorf("expected zero vision coverage, got %f", result.DataQuality.VisionCoverage)
	}
	if result.DataQuality.ProsodyFrameCount != 10 {
		t.Errorf("expected 10 prosody frames, got %d", result.DataQuality.ProsodyFrameCount)
	}
}

func TestAnalyze_CoverageCappedAt100(t *testing.T) {
	e := NewDefault()

	transcript := &models.Transcript{
		Status: "completed",
		Words: []models.Word{
			{Text: "hi", Start: 0.0, End: 1.0},
		},
	}
	// 10 vision frames at 0.5s spacing nominally cover 5s of a 1s
	// utterance; the estimate must cap, not report 500%.
	visionFrames := make([]models.VisionFrame, 10)
	for i := range visionFrames {
		visionFrames[i] = models.VisionFrame{Timestamp: float64(i) * 0.5}
	}

	result := e.Analyze(transcript, visionFrames, nil)

	if result.DataQuality.VisionCoverage != 100 {
		t.Errorf("expected vision coverage capped at 100, got %f", result.DataQuality.VisionCoverage)
	}
}

func TestAnalyze_CoverageSingleFrame(t *testing.T) {
	e := NewDefault()

	transcript := &models.Transcript{
		Status: "completed",
		Words:  []models.Word{{Text: "hi", Start: 0.0, End: 1.0}},
	}

	result := e.Analyze(transcript, nil, []models.ProsodyFrame{{Timestamp: 0.5, Intensity: 0.05}})

	// A single frame has no spacing to extrapolate from.
	if result.DataQuality.ProsodyCoverage != 0 {
		t.Errorf("expected zero coverage for one frame, got %f", result.DataQuality.ProsodyCoverage)
	}
}

func TestAnalyze_NilTranscript(t *testing.T) {
	e := NewDefault()

	result := e.Analyze(nil, nil, nil)

	if result.OriginalTranscript.WordCount != 0 {
		t.Errorf("expected empty summary, got %+v", result.OriginalTranscript)
	}
	if len(result.EnrichedTranscript.Words) != 0 {
		t.Errorf("expected no enriched words, got %d", len(result.EnrichedTranscript.Words))
	}
}

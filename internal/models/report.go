package models

// WordMetrics holds the per-word scalars derived from the sliced modality
// frames. All three default to zero when a modality is absent.
type WordMetrics struct {
	WristVelocity  float64 `json:"wrist_velocity"`
	AudioIntensity float64 `json:"audio_intensity"`
	Pitch          float64 `json:"pitch"`
}

// EnrichedWord is a word after the full per-word pipeline has run. Metrics
// are kept for the aggregation step and stripped from the public report.
type EnrichedWord struct {
	Word
	Metrics         WordMetrics `json:"metrics"`
	Tags            []Tag       `json:"tags"`
	ConfidenceScore int         `json:"confidence_score"`
}

// HasTag reports whether the word carries the given tag.
func (w *EnrichedWord) HasTag(tag Tag) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WordResult is the minimal public per-word schema.
type WordResult struct {
	Text            string `json:"text"`
	Tags            []Tag  `json:"tags"`
	ConfidenceScore int    `json:"confidence_score"`
}

// SentenceAnalysis aggregates the enriched-word sequence into utterance-level
// statistics and detected behavioral patterns.
type SentenceAnalysis struct {
	AvgConfidence   float64     `json:"avg_confidence"`
	FluencyScore    int         `json:"fluency_score"`
	DisfluencyCount int         `json:"disfluency_count"`
	SpeakingRate    float64     `json:"speaking_rate"`
	TagDistribution map[Tag]int `json:"tag_distribution"`
	Patterns        []Pattern   `json:"patterns"`
	WordCount       int         `json:"word_count"`
	TotalDuration   float64     `json:"total_duration"`
}

// EnrichmentReport is the core's output: the stripped word sequence plus the
// utterance-level analysis.
type EnrichmentReport struct {
	Words            []WordResult     `json:"words"`
	SentenceAnalysis SentenceAnalysis `json:"sentence_analysis"`
}

// TranscriptSummary echoes basic facts about the source transcript.
type TranscriptSummary struct {
	FullText  string  `json:"full_text"`
	WordCount int     `json:"word_count"`
	Duration  float64 `json:"duration"`
}

// DataQuality describes how much of the utterance each sampled modality
// actually covered, as a percentage of the spoken span.
type DataQuality struct {
	VisionCoverage    float64 `json:"vision_coverage"`
	ProsodyCoverage   float64 `json:"prosody_coverage"`
	VisionFrameCount  int     `json:"vision_frame_count"`
	ProsodyFrameCount int     `json:"prosody_frame_count"`
}

// AnalysisResult is the complete job payload returned to clients: the
// enrichment report plus source metadata and coverage figures.
type AnalysisResult struct {
	EnrichedTranscript EnrichmentReport  `json:"enriched_transcript"`
	OriginalTranscript TranscriptSummary `json:"original_transcript"`
	DataQuality        DataQuality       `json:"data_quality"`
}

// FeedbackItem is one timestamped piece of coaching feedback produced by the
// downstream natural-language generator.
type FeedbackItem struct {
	Timestamp float64 `json:"timestamp"`
	Feedback  string  `json:"feedback"`
}

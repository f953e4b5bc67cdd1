package enrich

import (
	"github.com/rs/zerolog/log"

	"speech-enrichment-service/internal/models"
)

// Context window sizes for the cross-word heuristics: stutter and pause
// detection look back at enriched words, false-start detection looks ahead
// at raw words.
const (
	previousWindow  = 3
	lookaheadWindow = 3
)

// Enricher aligns the three modality streams onto the word timeline and
// runs the heuristic bank over every word in chronological order. It is
// stateless between invocations and safe to call with partial inputs: a nil
// vision or prosody slice means "no data for this modality" and degrades to
// zero metrics and fewer tags, never an error.
type Enricher struct {
	tagger *Tagger
}

// New builds an enricher with the given registry values.
func New(th Thresholds, lex Lexicon) *Enricher {
	return &Enricher{tagger: NewTagger(th, lex)}
}

// NewDefault builds an enricher with the production thresholds and lexicon.
func NewDefault() *Enricher {
	return New(DefaultThresholds(), DefaultLexicon())
}

// EnrichWords runs the full per-word pipeline over the word sequence and
// returns the enriched words with metrics attached. Every input word
// appears in the output: a word whose enrichment panics is appended with
// degraded defaults and processing continues.
func (e *Enricher) EnrichWords(words []models.Word, vision []models.VisionFrame, prosody []models.ProsodyFrame) []models.EnrichedWord {
	enriched := make([]models.EnrichedWord, 0, len(words))
	for i := range words {
		enriched = append(enriched, e.enrichWord(i, words, enriched, vision, prosody))
	}
	return enriched
}

// enrichWord processes a single word: slice, extract, tag, score. A panic
// anywhere inside is recovered into the degraded fallback so one bad word
// can never abort the utterance.
func (e *Enricher) enrichWord(i int, words []models.Word, enriched []models.EnrichedWord, vision []models.VisionFrame, prosody []models.ProsodyFrame) (ew models.EnrichedWord) {
	word := words[i]

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("word", word.Text).
				Int("index", i).
				Msg("Word enrichment failed, emitting degraded defaults")
			ew = models.EnrichedWord{
				Word:            word,
				Metrics:         models.WordMetrics{},
				Tags:            []models.Tag{models.TagError},
				ConfidenceScore: scoreNeutral,
			}
		}
	}()

	wordVision, wordProsody := SliceForWord(word, vision, prosody)

	velocity := WristVelocity(wordVision)
	intensity, pitch := ProsodyAverages(wordProsody, e.tagger.TH)

	metrics := models.WordMetrics{
		WristVelocity:  roundTo(velocity, 4),
		AudioIntensity: roundTo(intensity, 4),
		Pitch:          roundTo(pitch, 2),
	}

	previous := enriched
	if len(previous) > previousWindow {
		previous = previous[len(previous)-previousWindow:]
	}

	var next []models.Word
	if i+1 < len(words) {
		hi := i + 1 + lookaheadWindow
		if hi > len(words) {
			hi = len(words)
		}
		next = words[i+1 : hi]
	}

	return e.tagger.Apply(WordContext{
		Word:       word,
		Metrics:    metrics,
		Prosody:    wordProsody,
		Previous:   previous,
		Next:       next,
		HasVision:  len(vision) > 0,
		HasProsody: len(prosody) > 0,
	})
}

// EnrichTranscript is the core entry point: words plus optionally-absent
// vision and prosody streams in, the public enrichment report out. Metrics
// are stripped from the report; only text, tags, and confidence survive.
func (e *Enricher) EnrichTranscript(words []models.Word, vision []models.VisionFrame, prosody []models.ProsodyFrame) models.EnrichmentReport {
	if len(words) == 0 {
		return models.EnrichmentReport{
			Words: []models.WordResult{},
			SentenceAnalysis: models.SentenceAnalysis{
				TagDistribution: map[models.Tag]int{},
				Patterns:        []models.Pattern{},
			},
		}
	}

	enriched := e.EnrichWords(words, vision, prosody)
	analysis := AnalyzeSentencePatterns(enriched)

	stripped := make([]models.WordResult, 0, len(enriched))
	for _, w := range enriched {
		stripped = append(stripped, models.WordResult{
			Text:            w.Text,
			Tags:            w.Tags,
			ConfidenceScore: w.ConfidenceScore,
		})
	}

	return models.EnrichmentReport{
		Words:            stripped,
		SentenceAnalysis: analysis,
	}
}

// Analyze wraps EnrichTranscript with source metadata and per-modality
// coverage figures, producing the complete job payload.
func (e *Enricher) Analyze(transcript *models.Transcript, vision []models.VisionFrame, prosody []models.ProsodyFrame) models.AnalysisResult {
	var words []models.Word
	fullText := ""
	if transcript != nil {
		words = transcript.Words
		fullText = transcript.FullText
	}

	duration := 0.0
	if len(words) > 0 {
		duration = words[len(words)-1].End
	}

	return models.AnalysisResult{
		EnrichedTranscript: e.EnrichTranscript(words, vision, prosody),
		OriginalTranscript: models.TranscriptSummary{
			FullText:  fullText,
			WordCount: len(words),
			Duration:  duration,
		},
		DataQuality: models.DataQuality{
			VisionCoverage:    roundTo(visionCoverage(vision, duration), 1),
			ProsodyCoverage:   roundTo(prosodyCoverage(prosody, duration), 1),
			VisionFrameCount:  len(vision),
			ProsodyFrameCount: len(prosody),
		},
	}
}

// coveragePercent estimates what fraction of the utterance a uniformly
// sampled frame series covered, from its count and inter-frame spacing.
// Capped at 100.
func coveragePercent(count int, spacing, duration float64) float64 {
	if duration == 0 || count < 2 {
		return 0
	}
	pct := float64(count) * spacing / duration * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func visionCoverage(frames []models.VisionFrame, duration float64) float64 {
	if len(frames) < 2 {
		return 0
	}
	return coveragePercent(len(frames), frames[1].Timestamp-frames[0].Timestamp, duration)
}

func prosodyCoverage(frames []models.ProsodyFrame, duration float64) float64 {
	if len(frames) < 2 {
		return 0
	}
	return coveragePercent(len(frames), frames[1].Timestamp-frames[0].Timestamp, duration)
}

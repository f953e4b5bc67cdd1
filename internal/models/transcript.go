// Package models defines the data structures shared across the enrichment
// pipeline: transcript words, per-frame modality samples, and the report
// types that make up the service's output contract.
package models

// Word is a single transcribed token with its time span in seconds.
// Words are ordered by Start; insertion order is chronological order and
// every cross-word heuristic relies on that.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the word's span in seconds. Degenerate zero-duration
// words are tolerated upstream, so this may return 0 (or a negative value
// for malformed input, which downstream thresholds simply never match).
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// Transcript is the result of a transcription provider call.
type Transcript struct {
	Status   string `json:"status"`
	FullText string `json:"full_text"`
	Words    []Word `json:"words"`
	Error    string `json:"error,omitempty"`
}

// Completed reports whether the provider produced a usable transcript.
func (t *Transcript) Completed() bool {
	return t != nil && t.Status == "completed"
}

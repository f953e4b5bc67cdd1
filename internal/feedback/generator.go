// Package feedback turns an enrichment report into timestamped coaching
// feedback by prompting an OpenAI-compatible chat completion endpoint.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"speech-enrichment-service/internal/models"
	"speech-enrichment-service/internal/observability/metrics"
)

const systemPrompt = `You are an expert public speaking analyst evaluating human presentation performance from noisy multimodal data (transcripts, timestamps, gesture metrics, pitch, intensity).

Given enriched transcript data describing a speaker's performance, extract the most meaningful public speaking feedback, identifying specific moments worth commenting on using the available timing information.

Your output must be a strict JSON array where each element has this exact structure:

[
  {
    "timestamp": <float>,   // approximate time in seconds
    "feedback": <string>    // clear, actionable, specific advice for that moment
  }
]

Formatting rules:
- Output only valid JSON (no explanations, no markdown, no prose).
- Use 2-8 feedback entries maximum per minute of input.
- Each feedback entry should be concise (<=180 characters) but actionable.
- Combine nearby repeated filler words or gestures into one aggregated item.
- Do not hallucinate metrics or events that contradict the data.
- Include both constructive criticism and positive reinforcement where appropriate.

Evaluation priorities:
1. Speaking clarity and filler words
2. Vocal delivery (pace, pitch, volume variation)
3. Gestures and physical presence
4. Engagement and confidence`

// Config holds the generator settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Generator produces coaching feedback from enrichment reports.
type Generator struct {
	cfg     Config
	client  *http.Client
	metrics *metrics.Metrics
}

// New creates a new feedback generator.
func New(cfg Config) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Generator{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		metrics: metrics.DefaultMetrics,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate prompts the model with the report and parses the feedback list.
func (g *Generator) Generate(ctx context.Context, result *models.AnalysisResult) ([]models.FeedbackItem, error) {
	items, err := g.generate(ctx, result)
	g.metrics.RecordFeedback(err)
	return items, err
}

func (g *Generator) generate(ctx context.Context, result *models.AnalysisResult) ([]models.FeedbackItem, error) {
	report, err := json.Marshal(result.EnrichedTranscript)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Here is the enriched transcript data: " + string(report)},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feedback request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feedback request: unexpected status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode feedback response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("feedback response has no choices")
	}

	return ParseFeedback(out.Choices[0].Message.Content)
}

// wireItem tolerates both numeric and string timestamps in the model output.
type wireItem struct {
	Timestamp json.RawMessage `json:"timestamp"`
	Feedback  string          `json:"feedback"`
}

// ParseFeedback parses the model's reply into feedback items. Code fences
// around the JSON and an {"feedback": [...]} envelope are both tolerated;
// anything else malformed is an error.
func ParseFeedback(content string) ([]models.FeedbackItem, error) {
	content = stripCodeFence(content)

	var wire []wireItem
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		// Some models wrap the array in an object.
		var envelope struct {
			Feedback []wireItem `json:"feedback"`
		}
		if envErr := json.Unmarshal([]byte(content), &envelope); envErr != nil || envelope.Feedback == nil {
			return nil, fmt.Errorf("parse feedback: %w", err)
		}
		wire = envelope.Feedback
	}

	items := make([]models.FeedbackItem, 0, len(wire))
	for _, w := range wire {
		if w.Feedback == "" {
			continue
		}
		items = append(items, models.FeedbackItem{
			Timestamp: parseTimestamp(w.Timestamp),
			Feedback:  w.Feedback,
		})
	}
	return items, nil
}

// parseTimestamp accepts a JSON number, a numeric string, or an "m:ss"
// string. Anything else maps to 0.
func parseTimestamp(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if mins, secs, ok := strings.Cut(s, ":"); ok {
		m, errM := strconv.ParseFloat(mins, 64)
		sec, errS := strconv.ParseFloat(secs, 64)
		if errM == nil && errS == nil {
			return m*60 + sec
		}
	}
	return 0
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

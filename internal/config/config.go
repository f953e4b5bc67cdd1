// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Configuration holds all runtime configuration for the service.
type Configuration struct {
	Service       ServiceConfig
	Providers     ProvidersConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
	Enrich        EnrichConfig
}

// ServiceConfig holds core service identity and listener settings.
type ServiceConfig struct {
	Principal         string
	HTTPPort          string
	ObservabilityPort string
	Environment       string
}

// ProviderConfig holds settings for one upstream modality provider.
type ProviderConfig struct {
	Provider     string // "mock" or "remote"
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	PollInterval time.Duration
}

// ProvidersConfig groups the three modality providers and the feedback LLM.
type ProvidersConfig struct {
	Transcript ProviderConfig
	Vision     ProviderConfig
	Prosody    ProviderConfig
	Feedback   FeedbackConfig
}

// FeedbackConfig holds settings for the coaching feedback generator.
type FeedbackConfig struct {
	Provider string // "disabled" or "remote"
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// KafkaConfig holds Kafka publisher settings.
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	TopicDegraded string
	TopicComplete string
	Principal     string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string
}

// EnrichConfig holds enrichment engine settings.
type EnrichConfig struct {
	ThresholdsPath string // optional YAML overrides, empty means defaults
}

// Load reads configuration from the environment with defaults.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-speech-enrichment")

	return &Configuration{
		Service: ServiceConfig{
			Principal:         principal,
			HTTPPort:          envOrDefault("HTTP_PORT", "8080"),
			ObservabilityPort: envOrDefault("OBSERVABILITY_PORT", "9090"),
			Environment:       envOrDefault("ENV", "prod"),
		},
		Providers: ProvidersConfig{
			Transcript: ProviderConfig{
				Provider:     envOrDefault("TRANSCRIPT_PROVIDER", "mock"),
				BaseURL:      envOrDefault("TRANSCRIPT_BASE_URL", "https://api.assemblyai.com"),
				APIKey:       os.Getenv("TRANSCRIPT_API_KEY"),
				Timeout:      envOrDefaultDuration("TRANSCRIPT_TIMEOUT", 2*time.Minute),
				PollInterval: envOrDefaultDuration("TRANSCRIPT_POLL_INTERVAL", 3*time.Second),
			},
			Vision: ProviderConfig{
				Provider:     envOrDefault("VISION_PROVIDER", "mock"),
				BaseURL:      os.Getenv("VISION_BASE_URL"),
				APIKey:       os.Getenv("VISION_API_KEY"),
				Timeout:      envOrDefaultDuration("VISION_TIMEOUT", 5*time.Minute),
				PollInterval: envOrDefaultDuration("VISION_POLL_INTERVAL", 5*time.Second),
			},
			Prosody: ProviderConfig{
				Provider: envOrDefault("PROSODY_PROVIDER", "mock"),
				BaseURL:  os.Getenv("PROSODY_BASE_URL"),
				APIKey:   os.Getenv("PROSODY_API_KEY"),
				Timeout:  envOrDefaultDuration("PROSODY_TIMEOUT", 2*time.Minute),
			},
			Feedback: FeedbackConfig{
				Provider: envOrDefault("FEEDBACK_PROVIDER", "disabled"),
				BaseURL:  envOrDefault("FEEDBACK_BASE_URL", "https://api.openai.com"),
				APIKey:   os.Getenv("FEEDBACK_API_KEY"),
				Model:    envOrDefault("FEEDBACK_MODEL", "gpt-4o-mini"),
				Timeout:  envOrDefaultDuration("FEEDBACK_TIMEOUT", 60*time.Second),
			},
		},
		Kafka: KafkaConfig{
			Enabled:       envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:       envOrDefaultSlice("KAFKA_BROKERS", nil),
			TopicDegraded: envOrDefault("KAFKA_TOPIC_DEGRADED", "speech.enrichment.degraded"),
			TopicComplete: envOrDefault("KAFKA_TOPIC_COMPLETE", "speech.enrichment.complete"),
			Principal:     envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:  envOrDefault("LOG_LEVEL", "info"),
			LogFormat: envOrDefault("LOG_FORMAT", "json"),
		},
		Enrich: EnrichConfig{
			ThresholdsPath: os.Getenv("ENRICH_THRESHOLDS_PATH"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return parsed
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return parsed
}

func envOrDefaultSlice(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

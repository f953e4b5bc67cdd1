// Package events provides event publishing functionality.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"speech-enrichment-service/internal/observability/metrics"
)

// Publisher publishes enrichment reports to separate Kafka topics: one for
// degraded reports (a modality was missing when the report was produced) and
// one for complete reports.
type Publisher struct {
	writerDegraded *kafka.Writer
	writerComplete *kafka.Writer
	principal      string
	topicDegraded  string
	topicComplete  string
	enabled        bool
	metrics        *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers       []string
	TopicDegraded string
	TopicComplete string
	Principal     string
	Enabled       bool
}

// New creates a new Kafka event publisher with separate topics for degraded
// and complete enrichment reports.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	// Handle nil config case
	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled: false,
			metrics: m,
		}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:     cfg.Principal,
			topicDegraded: cfg.TopicDegraded,
			topicComplete: cfg.TopicComplete,
			enabled:       false,
			metrics:       m,
		}
	}

	// Custom dialer with longer timeouts for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	// Writer for degraded reports
	writerDegraded := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicDegraded,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	// Writer for complete reports
	writerComplete := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicComplete,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicDegraded", cfg.TopicDegraded).
		Str("topicComplete", cfg.TopicComplete).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerDegraded: writerDegraded,
		writerComplete: writerComplete,
		principal:      cfg.Principal,
		topicDegraded:  cfg.TopicDegraded,
		topicComplete:  cfg.TopicComplete,
		enabled:        true,
		metrics:        m,
	}
}

// PublishDegraded publishes a degraded enrichment report.
func (p *Publisher) PublishDegraded(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerDegraded, p.topicDegraded, "degraded", key, event)
}

// PublishComplete publishes a complete enrichment report.
func (p *Publisher) PublishComplete(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerComplete, p.topicComplete, "complete", key, event)
}

// publish is the internal method that writes to a specific Kafka writer.
func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	// Log the event
	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	// If Kafka is disabled, just log
	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	// Publish to Kafka
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerDegraded != nil {
		if e := p.writerDegraded.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing degraded writer")
			err = e
		}
	}
	if p.writerComplete != nil {
		if e := p.writerComplete.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing complete writer")
			err = e
		}
	}
	return err
}

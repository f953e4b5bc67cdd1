// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "speech_enrichment"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Job metrics
	JobsTotal     prometheus.Counter
	JobsActive    prometheus.Gauge
	JobsCompleted prometheus.Counter
	JobsFailed    prometheus.Counter
	JobDuration   prometheus.Histogram

	// Enrichment metrics
	EnrichmentDuration prometheus.Histogram
	WordsEnriched      prometheus.Counter
	WordsDegraded      prometheus.Counter
	TagsEmitted        *prometheus.CounterVec

	// Provider metrics
	ProviderLatency *prometheus.HistogramVec
	ProviderErrors  *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// Feedback metrics
	FeedbackRequests prometheus.Counter
	FeedbackErrors   prometheus.Counter
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		// Job metrics
		JobsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Total number of enrichment jobs submitted",
		}),
		JobsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jobs_active",
			Help:      "Number of jobs currently in flight",
		}),
		JobsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_completed_total",
			Help:      "Total number of jobs that produced a complete report",
		}),
		JobsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_failed_total",
			Help:      "Total number of jobs that failed",
		}),
		JobDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "End-to-end job duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}),

		// Enrichment metrics
		EnrichmentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enrichment_duration_seconds",
			Help:      "Duration of a full enrichment pass in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}),
		WordsEnriched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_enriched_total",
			Help:      "Total number of words enriched",
		}),
		WordsDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_degraded_total",
			Help:      "Total number of words emitted with degraded defaults",
		}),
		TagsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tags_emitted_total",
			Help:      "Total number of tags emitted",
		}, []string{"tag"}),

		// Provider metrics
		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Upstream provider call latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15, 60},
		}, []string{"provider"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Total number of upstream provider errors",
		}, []string{"provider", "error_type"}),

		// Kafka publish metrics
		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		// Feedback metrics
		FeedbackRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_requests_total",
			Help:      "Total number of coaching feedback requests",
		}),
		FeedbackErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_errors_total",
			Help:      "Total number of coaching feedback failures",
		}),
	}
}

// RecordJobStart records a new job being submitted.
func (m *Metrics) RecordJobStart() {
	m.JobsTotal.Inc()
	m.JobsActive.Inc()
}

// RecordJobEnd records a job reaching a terminal state.
func (m *Metrics) RecordJobEnd(success bool, durationSeconds float64) {
	m.JobsActive.Dec()
	m.JobDuration.Observe(durationSeconds)
	if success {
		m.JobsCompleted.Inc()
	} else {
		m.JobsFailed.Inc()
	}
}

// RecordEnrichment records a completed enrichment pass.
func (m *Metrics) RecordEnrichment(words, degraded int, durationSeconds float64) {
	m.EnrichmentDuration.Observe(durationSeconds)
	m.WordsEnriched.Add(float64(words))
	m.WordsDegraded.Add(float64(degraded))
}

// RecordTag records a tag being emitted.
func (m *Metrics) RecordTag(tag string) {
	m.TagsEmitted.WithLabelValues(tag).Inc()
}

// RecordProviderCall records an upstream provider call.
func (m *Metrics) RecordProviderCall(provider string, err error, latencySeconds float64) {
	m.ProviderLatency.WithLabelValues(provider).Observe(latencySeconds)
	if err != nil {
		m.ProviderErrors.WithLabelValues(provider, "call_failed").Inc()
	}
}

// RecordProviderError records a categorized provider error.
func (m *Metrics) RecordProviderError(provider, errorType string) {
	m.ProviderErrors.WithLabelValues(provider, errorType).Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordFeedback records a coaching feedback request.
func (m *Metrics) RecordFeedback(err error) {
	m.FeedbackRequests.Inc()
	if err != nil {
		m.FeedbackErrors.Inc()
	}
}

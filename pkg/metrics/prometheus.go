package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	messagesIngested *prometheus.CounterVec
	fraudDecisions   *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	stabilityScore   *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		messagesIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paisapulse_messages_ingested_total",
				Help: "Total number of inbound messages processed",
			},
			[]string{"source", "category"},
		),
		fraudDecisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paisapulse_fraud_decisions_total",
				Help: "Total number of fraud screening decisions",
			},
			[]string{"decision"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paisapulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		stabilityScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paisapulse_stability_score",
				Help: "Last computed stability score for a user",
			},
			[]string{"user_id"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paisapulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordMessageIngested records one processed inbound message.
func (r *Recorder) RecordMessageIngested(source, category string) {
	r.messagesIngested.WithLabelValues(source, category).Inc()
}

// RecordFraudDecision records a screening decision.
func (r *Recorder) RecordFraudDecision(decision string) {
	r.fraudDecisions.WithLabelValues(decision).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordStabilityScore records the last stability score for a user.
func (r *Recorder) RecordStabilityScore(userID string, score float64) {
	r.stabilityScore.WithLabelValues(userID).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

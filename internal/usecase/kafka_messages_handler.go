package usecase

import (
	"context"
	"encoding/json"
	"time"

	"PaisaPulse/internal/domain/models"
	domrepo "PaisaPulse/internal/domain/repository"
	pkgkafka "PaisaPulse/pkg/kafka"
)

// KafkaMessagesHandler consumes raw notification messages from Kafka and runs
// them through the ingestor.
type KafkaMessagesHandler struct {
	topic    string
	ingestor *MessageIngestor
	metrics  domrepo.Metrics
}

func NewKafkaMessagesHandler(topic string, ingestor *MessageIngestor, metrics domrepo.Metrics) *KafkaMessagesHandler {
	return &KafkaMessagesHandler{topic: topic, ingestor: ingestor, metrics: metrics}
}

func (h *KafkaMessagesHandler) Topic() string { return h.topic }

// incoming message schema: {user_id, text, ts}
func (h *KafkaMessagesHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		UserID string `json:"user_id"`
		Text   string `json:"text"`
		TS     int64  `json:"ts"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.TS > 1e11 { // ms
		m.TS = m.TS / 1000
	}
	var ts time.Time
	if m.TS > 0 {
		ts = time.Unix(m.TS, 0)
		// E2E latency from event time to now (approx)
		h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(ts).Seconds())
	}

	_, err := h.ingestor.Ingest(ctx, &models.InboundMessage{
		UserID:    m.UserID,
		Text:      m.Text,
		Timestamp: ts,
	})
	if err != nil {
		h.metrics.RecordError("consumer_ingest")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaMessagesHandler)(nil)

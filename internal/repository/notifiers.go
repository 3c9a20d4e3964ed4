package repository

import (
	"context"
	"time"

	"PaisaPulse/internal/domain/repository"
	pkgkafka "PaisaPulse/pkg/kafka"
	"PaisaPulse/pkg/queue"
)

// KafkaNotifier publishes outbound user texts to the notify topic, keyed by
// user so one user's messages stay ordered.
type KafkaNotifier struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaNotifier creates the Kafka notifier.
func NewKafkaNotifier(producer *pkgkafka.Producer, topic string) repository.Notifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (n *KafkaNotifier) Send(ctx context.Context, userID, text string) error {
	return n.producer.Publish(ctx, n.topic, []byte(userID), map[string]interface{}{
		"user_id": userID,
		"text":    text,
		"ts":      time.Now().Unix(),
	})
}

func (n *KafkaNotifier) Close() error {
	if n.producer != nil {
		return n.producer.Close()
	}
	return nil
}

// RedisNotifier hands outbound texts to the Redis-backed job queue; delivery
// workers drain the queue out of process.
type RedisNotifier struct {
	queue queue.QueueService
}

// NewRedisNotifier creates the Redis queue notifier.
func NewRedisNotifier(q queue.QueueService) repository.Notifier {
	return &RedisNotifier{queue: q}
}

func (n *RedisNotifier) Send(ctx context.Context, userID, text string) error {
	return n.queue.PublishMessage(ctx, "notify.send", map[string]interface{}{
		"user_id": userID,
		"text":    text,
		"ts":      time.Now().Unix(),
	})
}

func (n *RedisNotifier) Close() error { return nil }

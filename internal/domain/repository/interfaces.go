package repository

import (
	"context"
	"time"

	"PaisaPulse/internal/domain/models"
)

// MessageStream is an inbound feed of raw transaction notifications from the
// messaging gateway.
type MessageStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.InboundMessage, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Ledger is the append-only transaction store. There is no update or delete:
// a record is written atomically once and readers observe a prefix of
// completed writes.
type Ledger interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Append(ctx context.Context, t *models.Transaction) error
	Transactions(ctx context.Context, userID string) ([]models.Transaction, error) // oldest first
	TransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error)
	Health(ctx context.Context) error
	Close() error
}

// AlertStore persists fraud alerts and their PENDING lifecycle.
type AlertStore interface {
	Create(ctx context.Context, a *models.FraudAlert) error
	UpdateStatus(ctx context.Context, id string, status models.AlertStatus) error
	LatestPending(ctx context.Context, userID string) (*models.FraudAlert, error)
	ListByUser(ctx context.Context, userID string) ([]models.FraudAlert, error)
}

// Notifier delivers outbound texts through the messaging adapter. Delivery is
// fire-and-forget; the core never blocks on confirmation.
type Notifier interface {
	Send(ctx context.Context, userID, text string) error
	Close() error
}

type Metrics interface {
	RecordMessageIngested(source, category string)
	RecordFraudDecision(decision string)
	RecordStabilityScore(userID string, score float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

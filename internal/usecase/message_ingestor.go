package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"PaisaPulse/internal/domain/models"
	drepo "PaisaPulse/internal/domain/repository"
	"PaisaPulse/internal/services/fraud"
	"PaisaPulse/internal/services/message"
	pkgcache "PaisaPulse/pkg/cache"
	applogger "PaisaPulse/pkg/logger"
)

// MessageIngestor turns a raw notification into a ledger record, screens it
// for fraud, and drives the alert/notification side effects. Work for the
// same user is serialized so velocity counting always observes a consistent
// history; different users proceed concurrently.
type MessageIngestor struct {
	ledger   drepo.Ledger
	alerts   drepo.AlertStore
	notifier drepo.Notifier
	engine   *fraud.Engine
	metrics  drepo.Metrics
	logger   *applogger.Logger

	cache pkgcache.Service // optional; invalidated on every append

	mu     sync.Mutex
	userMu map[string]*sync.Mutex
}

// IngestResult reports what happened to one inbound message. Parsed is false
// for texts that carry no transaction; that outcome is not an error.
type IngestResult struct {
	Parsed   bool                 `json:"parsed"`
	Category models.Category      `json:"category,omitempty"`
	Decision models.FraudDecision `json:"decision,omitempty"`
	AlertID  string               `json:"alert_id,omitempty"`
}

func NewMessageIngestor(
	ledger drepo.Ledger,
	alerts drepo.AlertStore,
	notifier drepo.Notifier,
	engine *fraud.Engine,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *MessageIngestor {
	return &MessageIngestor{
		ledger:   ledger,
		alerts:   alerts,
		notifier: notifier,
		engine:   engine,
		metrics:  metrics,
		logger:   logger,
		userMu:   make(map[string]*sync.Mutex),
	}
}

// SetCache attaches the profile cache so appends can invalidate stale
// derivations.
func (i *MessageIngestor) SetCache(c pkgcache.Service) { i.cache = c }

// Ingest processes one inbound message end to end: parse, classify, screen
// against the prior ledger, append, then raise the alert and notification for
// BLOCK/REVIEW decisions.
func (i *MessageIngestor) Ingest(ctx context.Context, msg *models.InboundMessage) (*IngestResult, error) {
	if msg == nil || msg.UserID == "" {
		return nil, fmt.Errorf("message without user")
	}
	start := time.Now()

	parsed, ok := message.Parse(msg.Text)
	if !ok {
		i.metrics.RecordMessageIngested("none", "not_a_transaction")
		return &IngestResult{Parsed: false}, nil
	}
	category := message.Classify(parsed, msg.Text)

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	txn := &models.Transaction{
		UserID:    msg.UserID,
		Amount:    parsed.Amount,
		Direction: parsed.Direction,
		Category:  category,
		Source:    parsed.Source,
		Timestamp: ts,
		Raw:       msg.Text,
	}

	mu := i.userLock(msg.UserID)
	mu.Lock()
	defer mu.Unlock()

	// Screen against the ledger as it was before this transaction.
	history, err := i.ledger.Transactions(ctx, msg.UserID)
	if err != nil {
		i.metrics.RecordError("ledger_read")
		return nil, fmt.Errorf("ledger read: %w", err)
	}
	screening := i.engine.Screen(history, txn)

	if err := i.ledger.Append(ctx, txn); err != nil {
		i.metrics.RecordError("ledger_append")
		return nil, fmt.Errorf("ledger append: %w", err)
	}
	i.invalidateDerived(ctx, msg.UserID)

	res := &IngestResult{Parsed: true, Category: category, Decision: screening.Decision}
	if screening.Decision != models.DecisionAllow {
		alert := &models.FraudAlert{
			ID:        uuid.NewString(),
			UserID:    msg.UserID,
			Amount:    txn.Amount,
			Decision:  screening.Decision,
			Status:    models.AlertPending,
			Reasons:   screening.Reasons,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := i.alerts.Create(ctx, alert); err != nil {
			i.metrics.RecordError("alert_create")
			return nil, fmt.Errorf("alert create: %w", err)
		}
		res.AlertID = alert.ID
		i.promptConfirmation(ctx, alert)
	}

	i.metrics.RecordMessageIngested(string(parsed.Source), string(category))
	i.metrics.RecordFraudDecision(string(screening.Decision))
	i.metrics.RecordLatency("ingest", time.Since(start).Seconds())
	return res, nil
}

// Process implements the ingest pipeline's downstream contract.
func (i *MessageIngestor) Process(ctx context.Context, m *models.InboundMessage) error {
	_, err := i.Ingest(ctx, m)
	return err
}

// promptConfirmation asks the user to confirm or deny the flagged payment.
// Delivery is best-effort; a send failure never fails the ingest.
func (i *MessageIngestor) promptConfirmation(ctx context.Context, alert *models.FraudAlert) {
	verb := "flagged for review"
	if alert.Decision == models.DecisionBlock {
		verb = "blocked"
	}
	text := fmt.Sprintf(
		"A payment of Rs %d was %s (%s). Reply YES if this was you, NO if not.",
		alert.Amount, verb, strings.Join(alert.Reasons, ", "),
	)
	if err := i.notifier.Send(ctx, alert.UserID, text); err != nil {
		i.metrics.RecordError("notify_send")
		if i.logger != nil {
			i.logger.Warn("alert notification failed",
				applogger.String("user_id", alert.UserID),
				applogger.String("alert_id", alert.ID),
				applogger.Error(err),
			)
		}
	}
}

func (i *MessageIngestor) invalidateDerived(ctx context.Context, userID string) {
	if i.cache == nil {
		return
	}
	if err := i.cache.Delete(ctx, forecastCacheKey(userID), profileCacheKey(userID)); err != nil {
		i.metrics.RecordError("cache_invalidate")
	}
}

func (i *MessageIngestor) userLock(userID string) *sync.Mutex {
	i.mu.Lock()
	defer i.mu.Unlock()
	mu, ok := i.userMu[userID]
	if !ok {
		mu = &sync.Mutex{}
		i.userMu[userID] = mu
	}
	return mu
}

func profileCacheKey(userID string) string  { return "paisapulse:profile:" + userID }
func forecastCacheKey(userID string) string { return "paisapulse:forecast:" + userID }

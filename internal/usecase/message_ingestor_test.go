package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"PaisaPulse/internal/domain/models"
	"PaisaPulse/internal/services/fraud"
)

// fakeLedger is an in-memory append-only store.
type fakeLedger struct {
	mu   sync.Mutex
	txns map[string][]models.Transaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{txns: make(map[string][]models.Transaction)}
}

func (f *fakeLedger) Init(context.Context) error { return nil }

func (f *fakeLedger) Append(_ context.Context, t *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txns[t.UserID] = append(f.txns[t.UserID], *t)
	return nil
}

func (f *fakeLedger) Transactions(_ context.Context, userID string) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Transaction, len(f.txns[userID]))
	copy(out, f.txns[userID])
	return out, nil
}

func (f *fakeLedger) TransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	all, _ := f.Transactions(ctx, userID)
	var out []models.Transaction
	for _, t := range all {
		if !t.Timestamp.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLedger) Health(context.Context) error { return nil }
func (f *fakeLedger) Close() error                 { return nil }

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []*models.FraudAlert
}

func (f *fakeAlerts) Create(_ context.Context, a *models.FraudAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.alerts = append(f.alerts, &cp)
	return nil
}

func (f *fakeAlerts) UpdateStatus(_ context.Context, id string, status models.AlertStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.alerts {
		if a.ID == id {
			a.Status = status
			a.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (f *fakeAlerts) LatestPending(_ context.Context, userID string) (*models.FraudAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.alerts) - 1; i >= 0; i-- {
		if f.alerts[i].UserID == userID && f.alerts[i].Status == models.AlertPending {
			cp := *f.alerts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAlerts) ListByUser(_ context.Context, userID string) ([]models.FraudAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FraudAlert
	for _, a := range f.alerts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) Send(_ context.Context, _, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeNotifier) Close() error { return nil }

type noopMetrics struct{}

func (noopMetrics) RecordMessageIngested(string, string) {}
func (noopMetrics) RecordFraudDecision(string)           {}
func (noopMetrics) RecordStabilityScore(string, float64) {}
func (noopMetrics) RecordError(string)                   {}
func (noopMetrics) RecordLatency(string, float64)        {}

func newTestIngestor(ledger *fakeLedger, alerts *fakeAlerts, notifier *fakeNotifier) *MessageIngestor {
	return NewMessageIngestor(ledger, alerts, notifier, fraud.NewEngine(fraud.DefaultConfig()), noopMetrics{}, nil)
}

func TestIngestNonTransactionText(t *testing.T) {
	ledger := newFakeLedger()
	ing := newTestIngestor(ledger, &fakeAlerts{}, &fakeNotifier{})

	res, err := ing.Ingest(context.Background(), &models.InboundMessage{
		UserID: "u1",
		Text:   "Your OTP is 482913, do not share it",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Parsed {
		t.Fatalf("expected not parsed")
	}
	if txns, _ := ledger.Transactions(context.Background(), "u1"); len(txns) != 0 {
		t.Fatalf("non-transaction must not be appended")
	}
}

func TestIngestAppendsAndScreens(t *testing.T) {
	ledger := newFakeLedger()
	alerts := &fakeAlerts{}
	notifier := &fakeNotifier{}
	ing := newTestIngestor(ledger, alerts, notifier)

	// First ever transaction on UPI: one signal (new payee), REVIEW + alert.
	res, err := ing.Ingest(context.Background(), &models.InboundMessage{
		UserID:    "u1",
		Text:      "Rs. 5,000 debited via UPI for spent groceries",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Parsed || res.Category != models.CategoryExpense {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Decision != models.DecisionReview {
		t.Fatalf("decision = %s, want REVIEW", res.Decision)
	}
	if res.AlertID == "" {
		t.Fatalf("expected alert id")
	}

	txns, _ := ledger.Transactions(context.Background(), "u1")
	if len(txns) != 1 || txns[0].Amount != 5000 {
		t.Fatalf("ledger = %+v", txns)
	}
	if len(alerts.alerts) != 1 || alerts.alerts[0].Status != models.AlertPending {
		t.Fatalf("alerts = %+v", alerts.alerts)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected one confirmation prompt, got %d", len(notifier.sent))
	}
}

func TestIngestBlockedTransactionStillAppends(t *testing.T) {
	ledger := newFakeLedger()
	alerts := &fakeAlerts{}
	ing := newTestIngestor(ledger, alerts, &fakeNotifier{})
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Build up enough clean UPI history for the spike detector.
	for i := 0; i < 6; i++ {
		_, err := ing.Ingest(context.Background(), &models.InboundMessage{
			UserID:    "u1",
			Text:      "Rs 100 debited via UPI",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed ingest: %v", err)
		}
	}

	// Large amount on a never-seen rail: spike + new payee = BLOCK.
	res, err := ing.Ingest(context.Background(), &models.InboundMessage{
		UserID:    "u1",
		Text:      "Rs 50,000 debited on card",
		Timestamp: base.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Decision != models.DecisionBlock {
		t.Fatalf("decision = %s, want BLOCK", res.Decision)
	}

	// The ledger records the transaction regardless of the decision.
	txns, _ := ledger.Transactions(context.Background(), "u1")
	if len(txns) != 7 {
		t.Fatalf("ledger size = %d, want 7", len(txns))
	}
}

func TestAlertReplyConfirms(t *testing.T) {
	ledger := newFakeLedger()
	alerts := &fakeAlerts{}
	notifier := &fakeNotifier{}
	ing := newTestIngestor(ledger, alerts, notifier)
	lifecycle := NewAlertLifecycle(alerts, notifier, noopMetrics{}, nil)

	res, err := ing.Ingest(context.Background(), &models.InboundMessage{
		UserID: "u1",
		Text:   "Rs. 5,000 debited via UPI",
	})
	if err != nil || res.AlertID == "" {
		t.Fatalf("setup ingest: %v %+v", err, res)
	}

	out, err := lifecycle.HandleReply(context.Background(), "u1", "YES")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Applied || out.Status != models.AlertConfirmed {
		t.Fatalf("outcome = %+v", out)
	}
	if alerts.alerts[0].Status != models.AlertConfirmed {
		t.Fatalf("alert status = %s", alerts.alerts[0].Status)
	}
}

func TestAlertReplyUnrecognizedStaysPending(t *testing.T) {
	ledger := newFakeLedger()
	alerts := &fakeAlerts{}
	notifier := &fakeNotifier{}
	ing := newTestIngestor(ledger, alerts, notifier)
	lifecycle := NewAlertLifecycle(alerts, notifier, noopMetrics{}, nil)

	if _, err := ing.Ingest(context.Background(), &models.InboundMessage{
		UserID: "u1",
		Text:   "Rs 900 debited via UPI",
	}); err != nil {
		t.Fatalf("setup ingest: %v", err)
	}

	out, err := lifecycle.HandleReply(context.Background(), "u1", "maybe?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Applied {
		t.Fatalf("unrecognized reply must not resolve the alert")
	}
	if alerts.alerts[0].Status != models.AlertPending {
		t.Fatalf("alert status = %s", alerts.alerts[0].Status)
	}
}

func TestAlertReplyWithoutPendingAlert(t *testing.T) {
	lifecycle := NewAlertLifecycle(&fakeAlerts{}, &fakeNotifier{}, noopMetrics{}, nil)

	out, err := lifecycle.HandleReply(context.Background(), "u1", "yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Applied || out.Note != "no pending alert" {
		t.Fatalf("outcome = %+v", out)
	}
}

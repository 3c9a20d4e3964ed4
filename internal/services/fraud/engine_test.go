package fraud

import (
	"testing"
	"time"

	"PaisaPulse/internal/domain/models"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func expense(at time.Time, amount int64, source models.Source) models.Transaction {
	return models.Transaction{
		UserID:    "u1",
		Amount:    amount,
		Direction: models.DirectionDebit,
		Category:  models.CategoryExpense,
		Source:    source,
		Timestamp: at,
	}
}

func history(n int, amount int64, source models.Source, gap time.Duration) []models.Transaction {
	txns := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txns = append(txns, expense(base.Add(time.Duration(i)*gap), amount, source))
	}
	return txns
}

func TestScreenFirstTransactionIsReview(t *testing.T) {
	e := NewEngine(DefaultConfig())
	txn := expense(base, 500, models.SourceUPI)

	s := e.Screen(nil, &txn)
	if s.Decision != models.DecisionReview {
		t.Fatalf("decision = %s, want REVIEW", s.Decision)
	}
	if len(s.Reasons) != 1 || s.Reasons[0] != ReasonNewPayee {
		t.Fatalf("reasons = %v", s.Reasons)
	}
}

func TestScreenAmountSpike(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Five prior expenses of 100 on UPI, well spread out in time.
	hist := history(5, 100, models.SourceUPI, time.Hour)

	txn := expense(base.Add(24*time.Hour), 1000, models.SourceUPI)
	s := e.Screen(hist, &txn)
	if s.Decision != models.DecisionReview {
		t.Fatalf("decision = %s, want REVIEW", s.Decision)
	}
	if len(s.Reasons) != 1 || s.Reasons[0] != ReasonAmountSpike {
		t.Fatalf("reasons = %v", s.Reasons)
	}
}

func TestScreenSpikeFailsClosedWithThinHistory(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Four prior expenses: below SpikeMinHistory, so no spike signal.
	hist := history(4, 100, models.SourceUPI, time.Hour)

	txn := expense(base.Add(24*time.Hour), 100000, models.SourceUPI)
	s := e.Screen(hist, &txn)
	for _, r := range s.Reasons {
		if r == ReasonAmountSpike {
			t.Fatalf("spike must not fire with thin history: %v", s.Reasons)
		}
	}
}

func TestScreenVelocity(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Three prior transactions inside the 10 minute window.
	hist := history(3, 100, models.SourceUPI, time.Minute)

	txn := expense(base.Add(5*time.Minute), 100, models.SourceUPI)
	s := e.Screen(hist, &txn)
	found := false
	for _, r := range s.Reasons {
		if r == ReasonVelocity {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected velocity signal, got %v", s.Reasons)
	}
}

func TestScreenTwoSignalsBlock(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// Enough history for the spike check, all on UPI; burst plus a new rail.
	hist := history(6, 100, models.SourceUPI, time.Minute)

	txn := expense(base.Add(6*time.Minute), 5000, models.SourceCard)
	s := e.Screen(hist, &txn)
	if s.Decision != models.DecisionBlock {
		t.Fatalf("decision = %s, want BLOCK (reasons %v)", s.Decision, s.Reasons)
	}
	if len(s.Reasons) < 2 {
		t.Fatalf("expected >= 2 reasons, got %v", s.Reasons)
	}
}

func TestScreenCleanTransactionAllows(t *testing.T) {
	e := NewEngine(DefaultConfig())
	hist := history(6, 100, models.SourceUPI, time.Hour)

	txn := expense(base.Add(48*time.Hour), 120, models.SourceUPI)
	s := e.Screen(hist, &txn)
	if s.Decision != models.DecisionAllow {
		t.Fatalf("decision = %s, want ALLOW (reasons %v)", s.Decision, s.Reasons)
	}
	if len(s.Reasons) != 0 {
		t.Fatalf("reasons = %v, want none", s.Reasons)
	}
}

func TestConfigDefaults(t *testing.T) {
	e := NewEngine(Config{})
	if e.cfg.VelocityWindow != 10*time.Minute || e.cfg.VelocityMax != 3 {
		t.Fatalf("velocity defaults not applied: %+v", e.cfg)
	}
	if e.cfg.SpikeMultiplier != 3.0 || e.cfg.SpikeMinHistory != 5 {
		t.Fatalf("spike defaults not applied: %+v", e.cfg)
	}
}

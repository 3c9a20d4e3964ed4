package usecase

import (
	"context"
	"testing"
	"time"

	"PaisaPulse/internal/domain/models"
	"PaisaPulse/internal/services/analytics"
)

func newTestAdvisor(ledger *fakeLedger) *RiskAdvisor {
	return NewRiskAdvisor(ledger, analytics.NewSeasonalForecaster(30), noopMetrics{}, 30)
}

func TestAdvisorStability(t *testing.T) {
	ledger := newFakeLedger()
	for m := time.Month(1); m <= 4; m++ {
		seedIncome(t, ledger, "u1", time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC), 42000)
	}

	p, err := newTestAdvisor(ledger).Stability(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StabilityScore != 100 || p.Remark != models.RemarkStable {
		t.Fatalf("profile = %+v", p)
	}
}

func TestAdvisorForecastThinHistory(t *testing.T) {
	ledger := newFakeLedger()
	seedIncome(t, ledger, "u1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 42000)

	f, err := newTestAdvisor(ledger).Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Status != models.ForecastNotEnoughData {
		t.Fatalf("status = %s", f.Status)
	}
}

func TestAdvisorLoanGatedOnThinHistory(t *testing.T) {
	ledger := newFakeLedger()
	// Plenty of stable months but too few daily points for a forecast.
	for m := time.Month(1); m <= 6; m++ {
		seedIncome(t, ledger, "u1", time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC), 42000)
	}

	res, err := newTestAdvisor(ledger).Loan(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Eligible {
		t.Fatalf("loan must be gated without a usable forecast")
	}
	if res.Reason != "not enough data" {
		t.Fatalf("reason = %q", res.Reason)
	}
}

func TestAdvisorEndToEnd(t *testing.T) {
	ledger := newFakeLedger()
	// Daily income for two months: stable profile and a usable forecast.
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		seedIncome(t, ledger, "u1", start.AddDate(0, 0, i), 1400)
	}

	advisor := newTestAdvisor(ledger)
	agg := NewAdviceAggregateUseCase(advisor)

	advice, err := agg.GetAdvice(context.Background(), GetAdviceParams{UserID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice.Errors != nil {
		t.Fatalf("unexpected section errors: %v", advice.Errors)
	}
	if advice.Stability == nil || advice.Forecast == nil || advice.Loan == nil ||
		advice.Investment == nil || advice.SIP == nil {
		t.Fatalf("missing sections: %+v", advice)
	}
	if !advice.Loan.Eligible {
		t.Fatalf("loan should be eligible: %+v", advice.Loan)
	}
	if advice.Forecast.Status != models.ForecastOK {
		t.Fatalf("forecast status = %s", advice.Forecast.Status)
	}
}

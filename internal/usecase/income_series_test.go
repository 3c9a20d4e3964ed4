package usecase

import (
	"context"
	"testing"
	"time"

	"PaisaPulse/internal/domain/models"
	domrepo "PaisaPulse/internal/domain/repository"
)

func seedIncome(t *testing.T, ledger *fakeLedger, userID string, day time.Time, amount int64) {
	t.Helper()
	err := ledger.Append(context.Background(), &models.Transaction{
		UserID:    userID,
		Amount:    amount,
		Direction: models.DirectionCredit,
		Category:  models.CategoryIncome,
		Source:    models.SourceBank,
		Timestamp: day,
	})
	if err != nil {
		t.Fatalf("seed append: %v", err)
	}
}

func TestGetSeriesMonthly(t *testing.T) {
	ledger := newFakeLedger()
	seedIncome(t, ledger, "u1", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 100)
	seedIncome(t, ledger, "u1", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), 200)
	seedIncome(t, ledger, "u1", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), 50)

	uc := NewIncomeSeriesUseCase(ledger)
	res, err := uc.GetSeries(context.Background(), GetSeriesParams{
		UserID:      "u1",
		Granularity: domrepo.Monthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 2 || res.Total != 350 {
		t.Fatalf("count=%d total=%d", res.Count, res.Total)
	}
}

func TestGetSeriesRangeFilter(t *testing.T) {
	ledger := newFakeLedger()
	seedIncome(t, ledger, "u1", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 100)
	seedIncome(t, ledger, "u1", time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), 200)
	seedIncome(t, ledger, "u1", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), 400)

	uc := NewIncomeSeriesUseCase(ledger)
	res, err := uc.GetSeries(context.Background(), GetSeriesParams{
		UserID:      "u1",
		Granularity: domrepo.Daily,
		From:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 1 || res.Total != 200 {
		t.Fatalf("count=%d total=%d", res.Count, res.Total)
	}
}

func TestGetSeriesValidation(t *testing.T) {
	uc := NewIncomeSeriesUseCase(newFakeLedger())

	if _, err := uc.GetSeries(context.Background(), GetSeriesParams{Granularity: domrepo.Daily}); err == nil {
		t.Fatalf("expected error for missing user")
	}

	_, err := uc.GetSeries(context.Background(), GetSeriesParams{
		UserID:      "u1",
		Granularity: domrepo.Daily,
		From:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

package income

import (
	"testing"
	"time"

	"PaisaPulse/internal/domain/models"
)

func txn(day time.Time, amount int64, cat models.Category) models.Transaction {
	return models.Transaction{
		UserID:    "u1",
		Amount:    amount,
		Direction: models.DirectionCredit,
		Category:  cat,
		Source:    models.SourceBank,
		Timestamp: day,
	}
}

func TestDailySeriesSumsPerDay(t *testing.T) {
	d := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		txn(d, 1000, models.CategoryIncome),
		txn(d.Add(4*time.Hour), 500, models.CategoryIncome),
		txn(d.AddDate(0, 0, 1), 200, models.CategoryIncome),
		txn(d, 9999, models.CategoryExpense), // ignored
	}

	points := DailySeries(txns)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Amount != 1500 {
		t.Fatalf("day 1 sum = %d", points[0].Amount)
	}
	if points[1].Amount != 200 {
		t.Fatalf("day 2 sum = %d", points[1].Amount)
	}
	if !points[0].Period.Before(points[1].Period) {
		t.Fatalf("series not sorted")
	}
}

func TestMonthlySeriesSpansMonths(t *testing.T) {
	txns := []models.Transaction{
		txn(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 100, models.CategoryIncome),
		txn(time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC), 200, models.CategoryIncome),
		txn(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 300, models.CategoryIncome),
	}

	points := MonthlySeries(txns)
	if len(points) != 2 {
		t.Fatalf("expected 2 months, got %d", len(points))
	}
	if points[0].Amount != 300 || points[1].Amount != 300 {
		t.Fatalf("unexpected sums %v", points)
	}
}

// Total over the series must equal the sum of the underlying income amounts.
func TestSeriesConservation(t *testing.T) {
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	var txns []models.Transaction
	var want int64
	for i := 0; i < 40; i++ {
		amt := int64(100 + i*7)
		txns = append(txns, txn(base.AddDate(0, 0, i%13), amt, models.CategoryIncome))
		want += amt
	}

	if got := Total(DailySeries(txns)); got != want {
		t.Fatalf("daily total %d want %d", got, want)
	}
	if got := Total(MonthlySeries(txns)); got != want {
		t.Fatalf("monthly total %d want %d", got, want)
	}
}

func TestEmptyLedger(t *testing.T) {
	if points := DailySeries(nil); len(points) != 0 {
		t.Fatalf("expected empty series")
	}
	if Total(nil) != 0 {
		t.Fatalf("expected zero total")
	}
}

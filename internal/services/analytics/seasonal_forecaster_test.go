package analytics

import (
	"context"
	"testing"
	"time"

	"PaisaPulse/internal/domain/models"
)

func dailySeries(start time.Time, amounts []int64) []models.IncomePoint {
	points := make([]models.IncomePoint, 0, len(amounts))
	for i, a := range amounts {
		points = append(points, models.IncomePoint{Period: start.AddDate(0, 0, i), Amount: a})
	}
	return points
}

func TestForecastNotEnoughData(t *testing.T) {
	f := NewSeasonalForecaster(30)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := f.FitAndProject(context.Background(), dailySeries(start, []int64{100, 200, 300}), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.ForecastNotEnoughData {
		t.Fatalf("status = %s", got.Status)
	}
	if got.HorizonDays != 30 {
		t.Fatalf("horizon = %d", got.HorizonDays)
	}
}

func TestForecastSteadyIncome(t *testing.T) {
	f := NewSeasonalForecaster(30)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	amounts := make([]int64, 60)
	for i := range amounts {
		amounts[i] = 1000
	}

	got, err := f.FitAndProject(context.Background(), dailySeries(start, amounts), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.ForecastOK {
		t.Fatalf("status = %s", got.Status)
	}
	// Perfectly steady history: zero residual spread, tight band.
	if got.ExpectedIncome < 29000 || got.ExpectedIncome > 31000 {
		t.Fatalf("expected = %f", got.ExpectedIncome)
	}
	if got.WorstCaseIncome > got.ExpectedIncome || got.ExpectedIncome > got.BestCaseIncome {
		t.Fatalf("band out of order: worst=%f expected=%f best=%f",
			got.WorstCaseIncome, got.ExpectedIncome, got.BestCaseIncome)
	}
	if got.ConfidencePercent < 0 || got.ConfidencePercent > 100 {
		t.Fatalf("confidence = %f", got.ConfidencePercent)
	}
}

func TestForecastNonNegative(t *testing.T) {
	f := NewSeasonalForecaster(30)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	// Sharply declining income; the per-day clamp keeps the band at zero or above.
	amounts := []int64{9000, 8000, 7000, 6000, 5000, 4000, 3000, 2000, 1000, 500, 100, 50}

	got, err := f.FitAndProject(context.Background(), dailySeries(start, amounts), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WorstCaseIncome < 0 || got.ExpectedIncome < 0 || got.BestCaseIncome < 0 {
		t.Fatalf("negative band: %+v", got)
	}
}

func TestForecastDeterministic(t *testing.T) {
	f := NewSeasonalForecaster(30)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	amounts := []int64{500, 800, 650, 900, 700, 850, 600, 950, 720, 810, 640, 930, 560, 880}
	series := dailySeries(start, amounts)

	a, _ := f.FitAndProject(context.Background(), series, 30)
	b, _ := f.FitAndProject(context.Background(), series, 30)
	if a.ExpectedIncome != b.ExpectedIncome || a.WorstCaseIncome != b.WorstCaseIncome {
		t.Fatalf("fit not deterministic: %f vs %f", a.ExpectedIncome, b.ExpectedIncome)
	}
}

func TestBandConfidence(t *testing.T) {
	if c := BandConfidence(0, 0); c != 0 {
		t.Fatalf("zero expected: %f", c)
	}
	if c := BandConfidence(1000, 800); c != 20 {
		t.Fatalf("confidence = %f, want 20", c)
	}
	if c := BandConfidence(1000, -500); c != 100 {
		t.Fatalf("confidence = %f, want clamp to 100", c)
	}
}

package analytics

import (
	"testing"
	"time"

	"PaisaPulse/internal/domain/models"
)

func monthPoint(year int, month time.Month, amount int64) models.IncomePoint {
	return models.IncomePoint{Period: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), Amount: amount}
}

func TestStabilityConstantIncome(t *testing.T) {
	series := []models.IncomePoint{
		monthPoint(2025, 1, 42000),
		monthPoint(2025, 2, 42000),
		monthPoint(2025, 3, 42000),
	}

	p := ComputeStability(series)
	if p.StabilityScore != 100 {
		t.Fatalf("score = %d, want 100", p.StabilityScore)
	}
	if p.Volatility != 0 {
		t.Fatalf("volatility = %f, want 0", p.Volatility)
	}
	if p.Remark != models.RemarkStable {
		t.Fatalf("remark = %q", p.Remark)
	}
	if p.AverageIncome != 42000 {
		t.Fatalf("average = %f", p.AverageIncome)
	}
}

func TestStabilityIrregularIncome(t *testing.T) {
	// Wild swings: mean 20000, std-dev well above 60% of the mean.
	series := []models.IncomePoint{
		monthPoint(2025, 1, 2000),
		monthPoint(2025, 2, 60000),
		monthPoint(2025, 3, 1000),
		monthPoint(2025, 4, 17000),
	}

	p := ComputeStability(series)
	if p.StabilityScore >= 40 {
		t.Fatalf("score = %d, want < 40", p.StabilityScore)
	}
	if p.Remark != models.RemarkIrregular {
		t.Fatalf("remark = %q", p.Remark)
	}
}

func TestStabilityNotEnoughData(t *testing.T) {
	for _, series := range [][]models.IncomePoint{nil, {monthPoint(2025, 1, 1000)}} {
		p := ComputeStability(series)
		if p.Remark != models.RemarkNotEnoughData {
			t.Fatalf("remark = %q for %d points", p.Remark, len(series))
		}
		if p.StabilityScore != 0 {
			t.Fatalf("score = %d for degenerate series", p.StabilityScore)
		}
	}
}

func TestStabilityScoreFloorsAtZero(t *testing.T) {
	// Volatility above 1.0 would push the score negative without the clamp.
	series := []models.IncomePoint{
		monthPoint(2025, 1, 1),
		monthPoint(2025, 2, 100000),
	}
	p := ComputeStability(series)
	if p.StabilityScore < 0 {
		t.Fatalf("score = %d, want >= 0", p.StabilityScore)
	}
}

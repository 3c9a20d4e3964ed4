package analytics

import (
	"math"

	"PaisaPulse/internal/domain/models"
)

// ComputeStability derives the stability profile from the monthly income
// series. Fewer than two distinct months yields the degenerate
// "Not enough data" profile rather than an error.
func ComputeStability(monthly []models.IncomePoint) models.StabilityProfile {
	if len(monthly) < 2 {
		return models.StabilityProfile{Remark: models.RemarkNotEnoughData}
	}

	var sum float64
	for _, p := range monthly {
		sum += float64(p.Amount)
	}
	mean := sum / float64(len(monthly))

	var ss float64
	for _, p := range monthly {
		d := float64(p.Amount) - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(monthly))) // population std-dev

	var vol float64
	if mean > 0 {
		vol = std / mean
	}

	score := 100 - int(math.Round(vol*100))
	if score < 0 {
		score = 0
	}

	return models.StabilityProfile{
		AverageIncome:  mean,
		Volatility:     vol,
		StabilityScore: score,
		Remark:         remarkFor(score),
	}
}

func remarkFor(score int) string {
	switch {
	case score >= 70:
		return models.RemarkStable
	case score >= 40:
		return models.RemarkModerate
	default:
		return models.RemarkIrregular
	}
}

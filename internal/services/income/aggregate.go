package income

import (
	"sort"
	"time"

	"PaisaPulse/internal/domain/models"
	domrepo "PaisaPulse/internal/domain/repository"
)

// DailySeries sums INCOME transactions per calendar day for one user's ledger
// snapshot. Non-income categories are ignored; days without income are absent
// from the result. The series is sorted chronologically.
func DailySeries(txns []models.Transaction) []models.IncomePoint {
	return series(txns, truncateDay)
}

// MonthlySeries sums INCOME transactions per calendar month.
func MonthlySeries(txns []models.Transaction) []models.IncomePoint {
	return series(txns, truncateMonth)
}

// SeriesFor buckets by the requested granularity.
func SeriesFor(txns []models.Transaction, g domrepo.Granularity) []models.IncomePoint {
	if g == domrepo.Daily {
		return DailySeries(txns)
	}
	return MonthlySeries(txns)
}

// Total returns the exact sum over all periods. Summation stays in integer
// arithmetic; no floating point touches ledger amounts here.
func Total(points []models.IncomePoint) int64 {
	var sum int64
	for _, p := range points {
		sum += p.Amount
	}
	return sum
}

func series(txns []models.Transaction, trunc func(time.Time) time.Time) []models.IncomePoint {
	sums := make(map[time.Time]int64)
	for _, t := range txns {
		if t.Category != models.CategoryIncome {
			continue
		}
		sums[trunc(t.Timestamp.UTC())] += t.Amount
	}

	out := make([]models.IncomePoint, 0, len(sums))
	for period, amount := range sums {
		out = append(out, models.IncomePoint{Period: period, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

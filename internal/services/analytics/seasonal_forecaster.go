package analytics

import (
	"context"
	"math"
	"time"

	"PaisaPulse/internal/domain/models"
	domsvc "PaisaPulse/internal/domain/service"
)

const (
	// MinDataPoints is the minimum number of income days required before a
	// forecast is attempted.
	MinDataPoints = 10

	// DefaultHorizonDays is the projection horizon.
	DefaultHorizonDays = 30

	// intervalZ widens the band by ~1.28 residual std-devs per side, an 80%
	// prediction interval for roughly normal residuals.
	intervalZ = 1.2816
)

// SeasonalForecaster is the in-process income forecaster. It fits an additive
// model over the sparse daily series: a linear trend plus weekly (day-of-week)
// and yearly (month-of-year) seasonal components. Days without income are
// absent from the input and stay absent from the fit; the model never treats
// them as zeros. The fit is deterministic for identical history.
type SeasonalForecaster struct {
	horizonDays int
}

func NewSeasonalForecaster(horizonDays int) *SeasonalForecaster {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &SeasonalForecaster{horizonDays: horizonDays}
}

func (f *SeasonalForecaster) FitAndProject(_ context.Context, series []models.IncomePoint, horizonDays int) (models.IncomeForecast, error) {
	if horizonDays <= 0 {
		horizonDays = f.horizonDays
	}
	if len(series) < MinDataPoints {
		return models.IncomeForecast{Status: models.ForecastNotEnoughData, HorizonDays: horizonDays}, nil
	}

	m := fitAdditive(series)

	last := series[len(series)-1].Period
	var expected, best, worst float64
	for d := 1; d <= horizonDays; d++ {
		day := last.AddDate(0, 0, d)
		yhat := m.predict(day)

		point := math.Max(0, yhat)
		lower := math.Max(0, yhat-intervalZ*m.sigma)
		upper := math.Max(0, yhat+intervalZ*m.sigma)

		expected += point
		worst += lower
		best += upper
	}

	return models.IncomeForecast{
		Status:            models.ForecastOK,
		HorizonDays:       horizonDays,
		ExpectedIncome:    expected,
		BestCaseIncome:    best,
		WorstCaseIncome:   worst,
		ConfidencePercent: BandConfidence(expected, worst),
		Model:             "additive-seasonal",
		GeneratedAt:       time.Now(),
	}, nil
}

// BandConfidence is (expected − worst) / expected × 100, clamped to 0 when
// expected is 0 and to the [0, 100] range otherwise.
func BandConfidence(expected, worst float64) float64 {
	if expected <= 0 {
		return 0
	}
	c := (expected - worst) / expected * 100
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// additiveModel holds the fitted components. Seasonal effects are additive
// offsets from the trend line.
type additiveModel struct {
	origin    time.Time
	intercept float64
	slope     float64
	weekly    [7]float64
	yearly    [12]float64
	sigma     float64
}

func (m *additiveModel) predict(day time.Time) float64 {
	x := day.Sub(m.origin).Hours() / 24
	return m.intercept + m.slope*x + m.weekly[int(day.Weekday())] + m.yearly[int(day.Month())-1]
}

func fitAdditive(series []models.IncomePoint) *additiveModel {
	n := len(series)
	origin := series[0].Period

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range series {
		xs[i] = p.Period.Sub(origin).Hours() / 24
		ys[i] = float64(p.Amount)
	}

	m := &additiveModel{origin: origin}
	m.intercept, m.slope = linearFit(xs, ys)

	// Weekly component: mean detrended residual per day of week.
	var wSum, wCnt [7]float64
	for i, p := range series {
		r := ys[i] - (m.intercept + m.slope*xs[i])
		wd := int(p.Period.Weekday())
		wSum[wd] += r
		wCnt[wd]++
	}
	for wd := range m.weekly {
		if wCnt[wd] > 0 {
			m.weekly[wd] = wSum[wd] / wCnt[wd]
		}
	}

	// Yearly component: mean remaining residual per calendar month. With under
	// a year of history this mostly captures month-level drift; harmless when
	// only a few months are represented.
	var ySum, yCnt [12]float64
	for i, p := range series {
		r := ys[i] - (m.intercept + m.slope*xs[i]) - m.weekly[int(p.Period.Weekday())]
		mo := int(p.Period.Month()) - 1
		ySum[mo] += r
		yCnt[mo]++
	}
	for mo := range m.yearly {
		if yCnt[mo] > 0 {
			m.yearly[mo] = ySum[mo] / yCnt[mo]
		}
	}

	// Residual spread drives the interval width.
	var ss float64
	for i, p := range series {
		e := ys[i] - m.predict(p.Period)
		ss += e * e
	}
	m.sigma = math.Sqrt(ss / float64(n))

	return m
}

func linearFit(xs, ys []float64) (intercept, slope float64) {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return sy / n, 0
	}
	slope = (n*sxy - sx*sy) / den
	intercept = (sy - slope*sx) / n
	return intercept, slope
}

var _ domsvc.IncomeForecaster = (*SeasonalForecaster)(nil)

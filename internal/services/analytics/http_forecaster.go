package analytics

import (
	"context"
	"fmt"
	"time"

	"PaisaPulse/internal/domain/models"
	domsvc "PaisaPulse/internal/domain/service"
	"PaisaPulse/pkg/config"
)

// HTTPIncomeForecaster delegates the fit to an external model service. Any
// interval-forecasting backend satisfies the contract; the core only consumes
// the expected/lower/upper band.
type HTTPIncomeForecaster struct{ base *HTTPServiceBase }

func NewHTTPIncomeForecaster(cfg *config.Config) *HTTPIncomeForecaster {
	return &HTTPIncomeForecaster{base: NewHTTPServiceBase(cfg)}
}

type forecastReq struct {
	Series  []forecastPoint `json:"series"`
	Horizon int             `json:"horizon_days"`
}

type forecastPoint struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

type forecastResp struct {
	Status   string  `json:"status"`
	Expected float64 `json:"expected"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Model    string  `json:"model"`
}

func (f *HTTPIncomeForecaster) FitAndProject(ctx context.Context, series []models.IncomePoint, horizonDays int) (models.IncomeForecast, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if len(series) < MinDataPoints {
		return models.IncomeForecast{Status: models.ForecastNotEnoughData, HorizonDays: horizonDays}, nil
	}

	req := forecastReq{Horizon: horizonDays, Series: make([]forecastPoint, 0, len(series))}
	for _, p := range series {
		req.Series = append(req.Series, forecastPoint{Date: p.Period.Format("2006-01-02"), Amount: p.Amount})
	}

	var fr forecastResp
	if err := f.base.PostJSON(ctx, "/forecast/income", req, &fr); err != nil {
		return models.IncomeForecast{}, fmt.Errorf("post forecast: %w", err)
	}
	if fr.Status == string(models.ForecastNotEnoughData) {
		return models.IncomeForecast{Status: models.ForecastNotEnoughData, HorizonDays: horizonDays}, nil
	}

	expected := clampNonNegative(fr.Expected)
	worst := clampNonNegative(fr.Lower)
	best := clampNonNegative(fr.Upper)
	return models.IncomeForecast{
		Status:            models.ForecastOK,
		HorizonDays:       horizonDays,
		ExpectedIncome:    expected,
		BestCaseIncome:    best,
		WorstCaseIncome:   worst,
		ConfidencePercent: BandConfidence(expected, worst),
		Model:             fr.Model,
		GeneratedAt:       time.Now(),
	}, nil
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

var _ domsvc.IncomeForecaster = (*HTTPIncomeForecaster)(nil)

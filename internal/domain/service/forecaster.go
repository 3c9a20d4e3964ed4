package service

import (
	"context"

	"PaisaPulse/internal/domain/models"
)

// IncomeForecaster fits a seasonal model over a sparse daily income series and
// projects an interval band over the given horizon. The series holds only days
// with non-zero income and must be treated as sparse. Implementations return
// a ForecastNotEnoughData status, not an error, when history is too short.
type IncomeForecaster interface {
	FitAndProject(ctx context.Context, series []models.IncomePoint, horizonDays int) (models.IncomeForecast, error)
}

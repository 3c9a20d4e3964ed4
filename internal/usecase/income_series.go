package usecase

import (
	"context"
	"fmt"
	"time"

	"PaisaPulse/internal/domain/models"
	domrepo "PaisaPulse/internal/domain/repository"
	"PaisaPulse/internal/services/income"
)

// IncomeSeriesUseCase provides business logic for retrieving income series.
type IncomeSeriesUseCase struct {
	ledger domrepo.Ledger
}

func NewIncomeSeriesUseCase(ledger domrepo.Ledger) *IncomeSeriesUseCase {
	return &IncomeSeriesUseCase{ledger: ledger}
}

type GetSeriesParams struct {
	UserID      string
	From        time.Time
	To          time.Time
	Granularity domrepo.Granularity
}

type GetSeriesResult struct {
	UserID      string
	Granularity string
	From        time.Time
	To          time.Time
	Count       int
	Total       int64
	Points      []models.IncomePoint
}

func (uc *IncomeSeriesUseCase) GetSeries(ctx context.Context, p GetSeriesParams) (*GetSeriesResult, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("user_id required")
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}

	txns, err := uc.ledger.Transactions(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("ledger read: %w", err)
	}

	points := income.SeriesFor(txns, p.Granularity)
	points = clipRange(points, p.From, p.To)

	return &GetSeriesResult{
		UserID:      p.UserID,
		Granularity: string(p.Granularity),
		From:        p.From,
		To:          p.To,
		Count:       len(points),
		Total:       income.Total(points),
		Points:      points,
	}, nil
}

// clipRange keeps points whose period falls inside [from, to]. Zero bounds are
// open on that side.
func clipRange(points []models.IncomePoint, from, to time.Time) []models.IncomePoint {
	if from.IsZero() && to.IsZero() {
		return points
	}
	out := points[:0]
	for _, p := range points {
		if !from.IsZero() && p.Period.Before(from) {
			continue
		}
		if !to.IsZero() && p.Period.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out
}

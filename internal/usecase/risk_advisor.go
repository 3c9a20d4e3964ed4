package usecase

import (
	"context"
	"fmt"
	"time"

	"PaisaPulse/internal/domain/models"
	drepo "PaisaPulse/internal/domain/repository"
	domsvc "PaisaPulse/internal/domain/service"
	"PaisaPulse/internal/services/analytics"
	"PaisaPulse/internal/services/income"
	"PaisaPulse/internal/services/risk"
	pkgcache "PaisaPulse/pkg/cache"
)

// RiskAdvisor derives the stability profile, income forecast, and the gated
// financial decisions for one user. Every derivation re-reads the full ledger
// so the result always reflects the latest append; the optional cache is a
// short-TTL shortcut that the ingestor invalidates on every write.
type RiskAdvisor struct {
	ledger      drepo.Ledger
	forecaster  domsvc.IncomeForecaster
	metrics     drepo.Metrics
	horizonDays int

	cache    pkgcache.Service
	cacheTTL time.Duration
}

func NewRiskAdvisor(ledger drepo.Ledger, forecaster domsvc.IncomeForecaster, metrics drepo.Metrics, horizonDays int) *RiskAdvisor {
	if horizonDays <= 0 {
		horizonDays = analytics.DefaultHorizonDays
	}
	return &RiskAdvisor{ledger: ledger, forecaster: forecaster, metrics: metrics, horizonDays: horizonDays}
}

// SetCache attaches a derivation cache with the given TTL.
func (a *RiskAdvisor) SetCache(c pkgcache.Service, ttl time.Duration) {
	a.cache = c
	a.cacheTTL = ttl
}

// Stability computes the stability profile from the monthly income series.
func (a *RiskAdvisor) Stability(ctx context.Context, userID string) (models.StabilityProfile, error) {
	if a.cache != nil {
		var cached models.StabilityProfile
		if err := a.cache.Get(ctx, profileCacheKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	txns, err := a.ledger.Transactions(ctx, userID)
	if err != nil {
		a.metrics.RecordError("ledger_read")
		return models.StabilityProfile{}, fmt.Errorf("ledger read: %w", err)
	}

	profile := analytics.ComputeStability(income.MonthlySeries(txns))
	a.metrics.RecordStabilityScore(userID, float64(profile.StabilityScore))

	if a.cache != nil {
		_ = a.cache.Set(ctx, profileCacheKey(userID), profile, a.cacheTTL)
	}
	return profile, nil
}

// Forecast fits the seasonal model over the daily income series and projects
// the configured horizon. Insufficient history comes back as a
// not_enough_data status, never an error.
func (a *RiskAdvisor) Forecast(ctx context.Context, userID string) (models.IncomeForecast, error) {
	if a.cache != nil {
		var cached models.IncomeForecast
		if err := a.cache.Get(ctx, forecastCacheKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	txns, err := a.ledger.Transactions(ctx, userID)
	if err != nil {
		a.metrics.RecordError("ledger_read")
		return models.IncomeForecast{}, fmt.Errorf("ledger read: %w", err)
	}

	start := time.Now()
	forecast, err := a.forecaster.FitAndProject(ctx, income.DailySeries(txns), a.horizonDays)
	if err != nil {
		a.metrics.RecordError("forecast_fit")
		return models.IncomeForecast{}, fmt.Errorf("forecast: %w", err)
	}
	a.metrics.RecordLatency("forecast_fit", time.Since(start).Seconds())

	if a.cache != nil && forecast.Status == models.ForecastOK {
		_ = a.cache.Set(ctx, forecastCacheKey(userID), forecast, a.cacheTTL)
	}
	return forecast, nil
}

// Loan assesses loan eligibility and sizes the fixed-tenure options.
func (a *RiskAdvisor) Loan(ctx context.Context, userID string) (models.LoanAssessment, error) {
	profile, forecast, err := a.inputs(ctx, userID)
	if err != nil {
		return models.LoanAssessment{}, err
	}
	return risk.AssessLoan(profile, forecast), nil
}

// Investment assesses investment eligibility and, when a running SIP is
// given, evaluates the independent pause guard.
func (a *RiskAdvisor) Investment(ctx context.Context, userID string, currentSIP float64) (models.InvestmentAdvice, models.InvestmentGuard, error) {
	profile, forecast, err := a.inputs(ctx, userID)
	if err != nil {
		return models.InvestmentAdvice{}, models.InvestmentGuard{}, err
	}
	return risk.AssessInvestment(profile, forecast), risk.GuardSIP(forecast, currentSIP), nil
}

// SIP sizes a recurring investment contribution.
func (a *RiskAdvisor) SIP(ctx context.Context, userID string) (models.SIPAdvice, error) {
	profile, forecast, err := a.inputs(ctx, userID)
	if err != nil {
		return models.SIPAdvice{}, err
	}
	return risk.SuggestSIP(profile, forecast), nil
}

func (a *RiskAdvisor) inputs(ctx context.Context, userID string) (models.StabilityProfile, models.IncomeForecast, error) {
	profile, err := a.Stability(ctx, userID)
	if err != nil {
		return models.StabilityProfile{}, models.IncomeForecast{}, err
	}
	forecast, err := a.Forecast(ctx, userID)
	if err != nil {
		return models.StabilityProfile{}, models.IncomeForecast{}, err
	}
	return profile, forecast, nil
}

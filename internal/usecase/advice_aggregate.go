package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"PaisaPulse/internal/domain/models"
)

// AdviceAggregateUseCase fans out to every advisory derivation and collects
// them into one RiskAdvice. A failing section lands in Errors; the rest of
// the view still comes back.
type AdviceAggregateUseCase struct {
	advisor *RiskAdvisor
	timeout time.Duration
}

func NewAdviceAggregateUseCase(advisor *RiskAdvisor) *AdviceAggregateUseCase {
	return &AdviceAggregateUseCase{advisor: advisor, timeout: 10 * time.Second}
}

type GetAdviceParams struct {
	UserID     string
	CurrentSIP float64
}

func (uc *AdviceAggregateUseCase) GetAdvice(ctx context.Context, p GetAdviceParams) (*models.RiskAdvice, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("user_id required")
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.RiskAdvice{
		UserID:    p.UserID,
		Timestamp: time.Now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 5)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.advisor.Stability(ctx, p.UserID)
		ch <- item{"stability", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.advisor.Forecast(ctx, p.UserID)
		ch <- item{"forecast", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.advisor.Loan(ctx, p.UserID)
		ch <- item{"loan", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		adv, guard, err := uc.advisor.Investment(ctx, p.UserID, p.CurrentSIP)
		ch <- item{"investment", adv, err}
		if err == nil {
			ch <- item{"guard", guard, nil}
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.advisor.SIP(ctx, p.UserID)
		ch <- item{"sip", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "stability":
			v := it.val.(models.StabilityProfile)
			res.Stability = &v
		case "forecast":
			v := it.val.(models.IncomeForecast)
			res.Forecast = &v
		case "loan":
			v := it.val.(models.LoanAssessment)
			res.Loan = &v
		case "investment":
			v := it.val.(models.InvestmentAdvice)
			res.Investment = &v
		case "guard":
			v := it.val.(models.InvestmentGuard)
			res.Guard = &v
		case "sip":
			v := it.val.(models.SIPAdvice)
			res.SIP = &v
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}

package risk

import (
	"github.com/shopspring/decimal"

	"PaisaPulse/internal/domain/models"
)

// Fixed policy constants. There is no learning or adaptation here.
const (
	safeEMIShare       = 0.30
	aggressiveEMIShare = 0.40

	minEligibleScore = 40
	lowRiskScore     = 70
	mediumRiskScore  = 50

	uncertaintyFloor = 0.6 // worst case must cover 60% of expected income
	guardMultiple    = 4   // pause when worst case cannot cover 4× the running SIP

	sipStableShare   = 0.15
	sipCautiousShare = 0.08
)

const (
	reasonIrregular     = "income too irregular"
	reasonUncertainty   = "high income uncertainty"
	reasonNotEnoughData = "not enough data"
	reasonGuardTripped  = "worst-case income cannot sustain current SIP"
)

var loanTenures = []int{12, 24, 36}

// EMIBand derives the safe and aggressive installment bounds from the
// forecast band, rounded to 2 decimal places.
func EMIBand(f models.IncomeForecast) models.EMIBand {
	return models.EMIBand{
		SafeEMI:       share(f.WorstCaseIncome, safeEMIShare),
		AggressiveEMI: share(f.ExpectedIncome, aggressiveEMIShare),
	}
}

// AssessLoan gates loan eligibility on the stability score alone, then sizes
// the fixed-tenure options from the safe EMI. A score below 40 is ineligible
// regardless of forecast values.
func AssessLoan(profile models.StabilityProfile, f models.IncomeForecast) models.LoanAssessment {
	if profile.StabilityScore < minEligibleScore {
		return models.LoanAssessment{Eligible: false, Reason: reasonIrregular, RiskLevel: models.RiskHigh}
	}
	if f.Status != models.ForecastOK {
		return models.LoanAssessment{Eligible: false, Reason: reasonNotEnoughData, RiskLevel: models.RiskHigh}
	}

	band := EMIBand(f)
	options := make([]models.LoanOption, 0, len(loanTenures))
	for _, tenure := range loanTenures {
		options = append(options, models.LoanOption{
			TenureMonths: tenure,
			EMI:          band.SafeEMI,
			TotalAmount:  band.SafeEMI.Mul(decimal.NewFromInt(int64(tenure))),
		})
	}
	return models.LoanAssessment{Eligible: true, RiskLevel: riskLevel(profile.StabilityScore), Options: options}
}

// AssessInvestment additionally requires the worst case to cover 60% of the
// expected income.
func AssessInvestment(profile models.StabilityProfile, f models.IncomeForecast) models.InvestmentAdvice {
	if profile.StabilityScore < minEligibleScore {
		return models.InvestmentAdvice{Eligible: false, Reason: reasonIrregular, RiskLevel: models.RiskHigh}
	}
	if f.Status != models.ForecastOK {
		return models.InvestmentAdvice{Eligible: false, Reason: reasonNotEnoughData, RiskLevel: models.RiskHigh}
	}
	if f.WorstCaseIncome < f.ExpectedIncome*uncertaintyFloor {
		return models.InvestmentAdvice{Eligible: false, Reason: reasonUncertainty, RiskLevel: models.RiskHigh}
	}

	level := models.RiskMedium
	if profile.StabilityScore >= lowRiskScore {
		level = models.RiskLow
	}
	return models.InvestmentAdvice{Eligible: true, RiskLevel: level}
}

// GuardSIP checks a running SIP commitment against the forecast. It is
// evaluated independently of eligibility and can pause an approved SIP.
func GuardSIP(f models.IncomeForecast, currentSIP float64) models.InvestmentGuard {
	if currentSIP > 0 && f.Status == models.ForecastOK && f.WorstCaseIncome < currentSIP*guardMultiple {
		return models.InvestmentGuard{PauseSIP: true, Reason: reasonGuardTripped}
	}
	return models.InvestmentGuard{}
}

// SuggestSIP sizes a recurring contribution: 15% of expected income for
// stable earners, 8% of the worst case otherwise.
func SuggestSIP(profile models.StabilityProfile, f models.IncomeForecast) models.SIPAdvice {
	if profile.StabilityScore >= lowRiskScore {
		return models.SIPAdvice{Monthly: share(f.ExpectedIncome, sipStableShare)}
	}
	return models.SIPAdvice{Monthly: share(f.WorstCaseIncome, sipCautiousShare)}
}

func riskLevel(score int) models.RiskLevel {
	switch {
	case score >= lowRiskScore:
		return models.RiskLow
	case score >= mediumRiskScore:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func share(amount, fraction float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(fraction)).Round(2)
}

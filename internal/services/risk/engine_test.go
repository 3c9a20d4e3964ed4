package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaisaPulse/internal/domain/models"
)

func okForecast(expected, worst, best float64) models.IncomeForecast {
	return models.IncomeForecast{
		Status:          models.ForecastOK,
		HorizonDays:     30,
		ExpectedIncome:  expected,
		WorstCaseIncome: worst,
		BestCaseIncome:  best,
	}
}

func stableProfile(score int) models.StabilityProfile {
	return models.StabilityProfile{StabilityScore: score, AverageIncome: 40000}
}

func TestEMIBand(t *testing.T) {
	band := EMIBand(okForecast(20000, 15000, 24000))
	assert.Equal(t, "4500", band.SafeEMI.String())
	assert.Equal(t, "8000", band.AggressiveEMI.String())
}

func TestEMIBandRounding(t *testing.T) {
	band := EMIBand(okForecast(10000.555, 9999.99, 11000))
	assert.Equal(t, "3000", band.SafeEMI.String()) // 2999.997 rounds up
	assert.Equal(t, "4000.22", band.AggressiveEMI.String())
}

func TestAssessLoanEligible(t *testing.T) {
	res := AssessLoan(stableProfile(85), okForecast(20000, 15000, 24000))
	require.True(t, res.Eligible)
	assert.Equal(t, models.RiskLow, res.RiskLevel)
	require.Len(t, res.Options, 3)

	for i, tenure := range []int{12, 24, 36} {
		opt := res.Options[i]
		assert.Equal(t, tenure, opt.TenureMonths)
		assert.Equal(t, "4500", opt.EMI.String())
	}
	assert.Equal(t, "54000", res.Options[0].TotalAmount.String())
	assert.Equal(t, "162000", res.Options[2].TotalAmount.String())
}

func TestAssessLoanIrregularIncome(t *testing.T) {
	res := AssessLoan(stableProfile(35), okForecast(20000, 15000, 24000))
	require.False(t, res.Eligible)
	assert.Equal(t, "income too irregular", res.Reason)
	assert.Equal(t, models.RiskHigh, res.RiskLevel)
	assert.Empty(t, res.Options)
}

func TestAssessLoanWithoutForecast(t *testing.T) {
	f := models.IncomeForecast{Status: models.ForecastNotEnoughData}
	res := AssessLoan(stableProfile(85), f)
	require.False(t, res.Eligible)
	assert.Equal(t, "not enough data", res.Reason)
}

func TestAssessInvestment(t *testing.T) {
	// Worst case covers 75% of expected: eligible.
	res := AssessInvestment(stableProfile(85), okForecast(20000, 15000, 24000))
	require.True(t, res.Eligible)
	assert.Equal(t, models.RiskLow, res.RiskLevel)

	// Medium stability lands medium risk.
	res = AssessInvestment(stableProfile(55), okForecast(20000, 15000, 24000))
	require.True(t, res.Eligible)
	assert.Equal(t, models.RiskMedium, res.RiskLevel)

	// Worst case below 60% of expected: too uncertain.
	res = AssessInvestment(stableProfile(85), okForecast(20000, 10000, 30000))
	require.False(t, res.Eligible)
	assert.Equal(t, "high income uncertainty", res.Reason)
}

func TestGuardSIP(t *testing.T) {
	f := okForecast(20000, 15000, 24000)

	// 15000 covers 4x a 3000 SIP exactly: no pause.
	assert.False(t, GuardSIP(f, 3000).PauseSIP)

	// 4x a 4000 SIP needs 16000: pause.
	g := GuardSIP(f, 4000)
	require.True(t, g.PauseSIP)
	assert.Equal(t, "worst-case income cannot sustain current SIP", g.Reason)

	// No running SIP, nothing to guard.
	assert.False(t, GuardSIP(f, 0).PauseSIP)

	// Guard never fires on an unusable forecast.
	assert.False(t, GuardSIP(models.IncomeForecast{Status: models.ForecastNotEnoughData}, 4000).PauseSIP)
}

func TestSuggestSIP(t *testing.T) {
	f := okForecast(20000, 15000, 24000)

	// Stable earner: 15% of expected.
	assert.Equal(t, "3000", SuggestSIP(stableProfile(75), f).Monthly.String())

	// Cautious sizing: 8% of the worst case.
	assert.Equal(t, "1200", SuggestSIP(stableProfile(50), f).Monthly.String())
}

func TestRiskLevels(t *testing.T) {
	assert.Equal(t, models.RiskLow, riskLevel(70))
	assert.Equal(t, models.RiskMedium, riskLevel(69))
	assert.Equal(t, models.RiskMedium, riskLevel(50))
	assert.Equal(t, models.RiskHigh, riskLevel(49))
}

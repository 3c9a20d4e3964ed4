package models

import "time"

// IncomePoint is one period of summed INCOME amounts. Period is truncated to
// the start of the day or month depending on the granularity; periods without
// income are simply absent from the series.
type IncomePoint struct {
	Period time.Time `json:"period"`
	Amount int64     `json:"amount"`
}

// Stability remarks by score bucket.
const (
	RemarkStable        = "Stable Income"
	RemarkModerate      = "Moderately Irregular"
	RemarkIrregular     = "Highly Irregular"
	RemarkNotEnoughData = "Not enough data"
)

// StabilityProfile summarizes income regularity over the monthly series.
// Volatility is the population standard deviation of monthly income divided by
// its mean (0 when the mean is 0).
type StabilityProfile struct {
	AverageIncome  float64 `json:"average_income"`
	Volatility     float64 `json:"volatility"`
	StabilityScore int     `json:"stability_score"`
	Remark         string  `json:"remark"`
}

// ForecastStatus distinguishes a usable forecast from the first-class
// insufficient-history outcome. Callers must branch on it before reading the
// numeric fields.
type ForecastStatus string

const (
	ForecastOK            ForecastStatus = "ok"
	ForecastNotEnoughData ForecastStatus = "not_enough_data"
)

// IncomeForecast is the projected income band summed over the forecast
// horizon. All amounts are non-negative rupee sums.
type IncomeForecast struct {
	Status            ForecastStatus `json:"status"`
	HorizonDays       int            `json:"horizon_days"`
	ExpectedIncome    float64        `json:"expected_income"`
	BestCaseIncome    float64        `json:"best_case_income"`
	WorstCaseIncome   float64        `json:"worst_case_income"`
	ConfidencePercent float64        `json:"confidence_percent"`
	Model             string         `json:"model,omitempty"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

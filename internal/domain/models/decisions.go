package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskLevel buckets a stability score for loan and investment decisions.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// EMIBand holds the two installment bounds derived from the forecast band,
// rounded to 2 decimal places.
type EMIBand struct {
	SafeEMI       decimal.Decimal `json:"safe_emi"`
	AggressiveEMI decimal.Decimal `json:"aggressive_emi"`
}

// LoanOption is one fixed-tenure offer sized from the safe EMI.
type LoanOption struct {
	TenureMonths int             `json:"tenure_months"`
	EMI          decimal.Decimal `json:"emi"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

type LoanAssessment struct {
	Eligible  bool         `json:"eligible"`
	Reason    string       `json:"reason,omitempty"`
	RiskLevel RiskLevel    `json:"risk_level"`
	Options   []LoanOption `json:"options,omitempty"`
}

type InvestmentAdvice struct {
	Eligible  bool      `json:"eligible"`
	Reason    string    `json:"reason,omitempty"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// InvestmentGuard is evaluated against a running SIP commitment, independently
// of eligibility, and may pause an already approved SIP.
type InvestmentGuard struct {
	PauseSIP bool   `json:"pause_sip"`
	Reason   string `json:"reason,omitempty"`
}

type SIPAdvice struct {
	Monthly decimal.Decimal `json:"monthly"`
}

// RiskAdvice is the consolidated advisory view for one user. Sub-sections that
// failed carry their error in Errors instead of a value.
type RiskAdvice struct {
	UserID     string            `json:"user_id"`
	Timestamp  time.Time         `json:"timestamp"`
	Stability  *StabilityProfile `json:"stability,omitempty"`
	Forecast   *IncomeForecast   `json:"forecast,omitempty"`
	Loan       *LoanAssessment   `json:"loan,omitempty"`
	Investment *InvestmentAdvice `json:"investment,omitempty"`
	Guard      *InvestmentGuard  `json:"guard,omitempty"`
	SIP        *SIPAdvice        `json:"sip,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

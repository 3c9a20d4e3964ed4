package models

// Requests for the advisory HTTP endpoints. Defined in domain for consistency
// and reuse across handlers.

type ProfileRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
}

type ForecastRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
}

type IncomeSeriesRequest struct {
	UserID      string `query:"user_id" json:"user_id" validate:"required"`
	Granularity string `query:"granularity" json:"granularity" default:"monthly" validate:"oneof=daily monthly"`
	From        string `query:"from" json:"from"`
	To          string `query:"to" json:"to"`
}

type LoanRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
}

type InvestmentRequest struct {
	UserID     string  `query:"user_id" json:"user_id" validate:"required"`
	CurrentSIP float64 `query:"sip" json:"sip" default:"0" validate:"gte=0"`
}

type SIPRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
}

type AdviceRequest struct {
	UserID     string  `query:"user_id" json:"user_id" validate:"required"`
	CurrentSIP float64 `query:"sip" json:"sip" default:"0" validate:"gte=0"`
}

type IngestMessageRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Text   string `json:"text" validate:"required,min=1,max=2048"`
	TS     string `json:"ts"`
}

type AlertsRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
}

type AlertReplyRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Reply  string `json:"reply" validate:"required,max=256"`
}

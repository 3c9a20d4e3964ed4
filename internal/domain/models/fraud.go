package models

import "time"

// FraudDecision is the aggregate outcome of screening one transaction.
type FraudDecision string

const (
	DecisionBlock  FraudDecision = "BLOCK"
	DecisionReview FraudDecision = "REVIEW"
	DecisionAllow  FraudDecision = "ALLOW"
)

// AlertStatus tracks the confirm/deny lifecycle. CONFIRMED and REJECTED are
// terminal; only PENDING alerts accept a transition.
type AlertStatus string

const (
	AlertPending   AlertStatus = "PENDING"
	AlertConfirmed AlertStatus = "CONFIRMED"
	AlertRejected  AlertStatus = "REJECTED"
)

// Screening carries the decision and the detector reasons behind it. Reasons
// is never empty unless the decision is ALLOW.
type Screening struct {
	Decision FraudDecision `json:"decision"`
	Reasons  []string      `json:"reasons,omitempty"`
}

// FraudAlert is created for BLOCK and REVIEW decisions only and starts PENDING.
type FraudAlert struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Amount    int64         `json:"amount"`
	Decision  FraudDecision `json:"decision"`
	Status    AlertStatus   `json:"status"`
	Reasons   []string      `json:"reasons"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

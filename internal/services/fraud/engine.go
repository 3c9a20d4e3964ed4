package fraud

import "PaisaPulse/internal/domain/models"

// Engine composes the three detectors into a single screening decision.
// History is the user's ledger snapshot BEFORE the new transaction is
// appended, so the transaction never matches itself as a known payee.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Screen evaluates the detectors in a fixed order and maps the collected
// reasons to a decision: two or more signals together are a high-confidence
// pattern and block, a single signal asks for review, none allows.
func (e *Engine) Screen(history []models.Transaction, txn *models.Transaction) models.Screening {
	reasons := make([]string, 0, 3)
	if amountSpike(history, txn.Amount, e.cfg) {
		reasons = append(reasons, ReasonAmountSpike)
	}
	if newPayee(history, txn.Source) {
		reasons = append(reasons, ReasonNewPayee)
	}
	if velocityExceeded(history, txn.Timestamp, e.cfg) {
		reasons = append(reasons, ReasonVelocity)
	}
	return models.Screening{Decision: decisionFor(len(reasons)), Reasons: reasons}
}

func decisionFor(signals int) models.FraudDecision {
	switch {
	case signals >= 2:
		return models.DecisionBlock
	case signals == 1:
		return models.DecisionReview
	default:
		return models.DecisionAllow
	}
}

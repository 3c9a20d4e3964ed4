package fraud

import (
	"time"

	"PaisaPulse/internal/domain/models"
)

// Reason labels reported on alerts, in detector evaluation order.
const (
	ReasonAmountSpike = "amount_spike"
	ReasonNewPayee    = "new_payee"
	ReasonVelocity    = "velocity"
)

// Config holds detector thresholds.
type Config struct {
	VelocityWindow  time.Duration // trailing window for the velocity check
	VelocityMax     int           // prior transactions inside the window before the new one flags
	SpikeMultiplier float64       // flags amounts above multiplier × mean prior expense
	SpikeMinHistory int           // prior expenses required before the spike check applies
}

func DefaultConfig() Config {
	return Config{
		VelocityWindow:  10 * time.Minute,
		VelocityMax:     3,
		SpikeMultiplier: 3.0,
		SpikeMinHistory: 5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.VelocityWindow <= 0 {
		c.VelocityWindow = d.VelocityWindow
	}
	if c.VelocityMax <= 0 {
		c.VelocityMax = d.VelocityMax
	}
	if c.SpikeMultiplier <= 0 {
		c.SpikeMultiplier = d.SpikeMultiplier
	}
	if c.SpikeMinHistory <= 0 {
		c.SpikeMinHistory = d.SpikeMinHistory
	}
	return c
}

// velocityExceeded counts the user's prior transactions inside the trailing
// window ending at the new transaction's timestamp.
func velocityExceeded(history []models.Transaction, at time.Time, cfg Config) bool {
	cutoff := at.Add(-cfg.VelocityWindow)
	n := 0
	for _, t := range history {
		if !t.Timestamp.Before(cutoff) && !t.Timestamp.After(at) {
			n++
		}
	}
	return n >= cfg.VelocityMax
}

// newPayee reports true when the source rail has never appeared in the user's
// history. A user with no history is a new payee for every source.
func newPayee(history []models.Transaction, source models.Source) bool {
	for _, t := range history {
		if t.Source == source {
			return false
		}
	}
	return true
}

// amountSpike flags amounts above SpikeMultiplier × the mean of prior
// expenses. With fewer than SpikeMinHistory prior expenses it fails closed
// and reports no spike.
func amountSpike(history []models.Transaction, amount int64, cfg Config) bool {
	var n int
	var sum int64
	for _, t := range history {
		if t.Category == models.CategoryExpense {
			n++
			sum += t.Amount
		}
	}
	if n < cfg.SpikeMinHistory {
		return false
	}
	mean := float64(sum) / float64(n)
	return float64(amount) > cfg.SpikeMultiplier*mean
}

package message

import (
	"regexp"
	"strconv"
	"strings"

	"PaisaPulse/internal/domain/models"
)

// amountPattern matches the first currency-tagged numeric token: "rs 5,000",
// "Rs. 500", "₹1200", "INR 99". Thousands separators are allowed.
var amountPattern = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*([0-9][0-9,]*)`)

// keywordRule pairs substring predicates with an outcome. Rules are evaluated
// in order; the first hit wins.
type keywordRule[T any] struct {
	keywords []string
	outcome  T
}

// Debit/credit detection runs before any other heuristic.
var directionRules = []keywordRule[models.Direction]{
	{keywords: []string{"debit", "spent"}, outcome: models.DirectionDebit},
	{keywords: []string{"credit", "received"}, outcome: models.DirectionCredit},
}

var sourceRules = []keywordRule[models.Source]{
	{keywords: []string{"upi"}, outcome: models.SourceUPI},
	{keywords: []string{"card"}, outcome: models.SourceCard},
}

// Parse extracts a transaction skeleton from a bank/UPI notification text.
// It is a pure function of the message. ok is false when the text carries no
// currency amount, which callers treat as "not a transaction".
func Parse(text string) (models.ParsedMessage, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return models.ParsedMessage{}, false
	}

	amount, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil || amount < 0 {
		return models.ParsedMessage{}, false
	}

	lower := strings.ToLower(text)
	return models.ParsedMessage{
		Amount:    amount,
		Direction: matchRules(lower, directionRules, models.DirectionUnknown),
		Source:    matchRules(lower, sourceRules, models.SourceBank),
	}, true
}

func matchRules[T any](lower string, rules []keywordRule[T], def T) T {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.outcome
			}
		}
	}
	return def
}

package message

import (
	"strings"

	"PaisaPulse/internal/domain/models"
)

// transferKeywords mark debits that move money between the user's own
// accounts rather than spending it.
var transferKeywords = []string{"self", "own account", "to bank", "withdrawal"}

// Classify maps a parsed skeleton plus the raw text to a ledger category.
// It never fails: messages that parsed but carry no direction keywords come
// out as UNKNOWN. Credits always classify as INCOME; this is a deliberate
// default, not a keyword filter.
func Classify(p models.ParsedMessage, text string) models.Category {
	switch p.Direction {
	case models.DirectionCredit:
		return models.CategoryIncome
	case models.DirectionDebit:
		if containsAny(strings.ToLower(text), transferKeywords) {
			return models.CategoryTransfer
		}
		return models.CategoryExpense
	default:
		return models.CategoryUnknown
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

package models

import "time"

// Direction is the money movement stated by the bank message.
type Direction string

const (
	DirectionDebit   Direction = "debit"
	DirectionCredit  Direction = "credit"
	DirectionUnknown Direction = "unknown"
)

// Category is assigned once at classification time and never recomputed.
type Category string

const (
	CategoryIncome   Category = "INCOME"
	CategoryExpense  Category = "EXPENSE"
	CategoryTransfer Category = "TRANSFER"
	CategoryUnknown  Category = "UNKNOWN"
)

// Source is the payment rail the message mentions.
type Source string

const (
	SourceUPI  Source = "UPI"
	SourceCard Source = "CARD"
	SourceBank Source = "BANK"
	SourceCash Source = "CASH"
)

// InboundMessage is one raw notification as delivered by the messaging adapter.
type InboundMessage struct {
	UserID    string
	Text      string
	Timestamp time.Time
}

// ParsedMessage is the transaction skeleton extracted from free text.
// Amount is in whole rupees, as bank notifications quote them.
type ParsedMessage struct {
	Amount    int64
	Direction Direction
	Source    Source
}

// Transaction is one immutable ledger record. The ledger is append-only:
// records are never updated or deleted after the write.
type Transaction struct {
	UserID    string
	Amount    int64
	Direction Direction
	Category  Category
	Source    Source
	Timestamp time.Time
	Raw       string
}

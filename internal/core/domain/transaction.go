package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// TransactionSource records how a transaction entered the system.
type TransactionSource string

const (
	SourceManual   TransactionSource = "manual"
	SourceImport   TransactionSource = "import"
	SourceWhatsApp TransactionSource = "whatsapp"
	SourceBill     TransactionSource = "bill"
)

// Transaction is a single income or expense record owned by a user.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	UserID        string            `json:"userID"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"` // Always positive
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	Date          time.Time         `json:"date"`
	Tags          []string          `json:"tags"`
	Notes         string            `json:"notes"`
	Source        TransactionSource `json:"source"`
	ExternalID    string            `json:"externalID"` // FITID for OFX imports
	AuditFields
}

// SignedAmount returns the amount negated for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Type     TransactionType
	Category string
	From     *time.Time
	To       *time.Time // exclusive
	Search   string
	Limit    int
	Offset   int
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	Description   string          `db:"description"`
	Date          time.Time       `db:"transaction_date"`
	Tags          []string        `db:"tags"`
	Notes         string          `db:"notes"`
	Source        string          `db:"source"`
	ExternalID    *string         `db:"external_id"` // NULL unless imported from OFX
	AuditFields
}

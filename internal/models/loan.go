package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the loans table row.
type Loan struct {
	LoanID      string          `db:"loan_id"`
	UserID      string          `db:"user_id"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Person      string          `db:"person"`
	PaidAmount  decimal.Decimal `db:"paid_amount"`
	Description string          `db:"description"`
	LoanDate    time.Time       `db:"loan_date"`
	DueDate     *time.Time      `db:"due_date"`
	AuditFields
}

// LoanPayment is the loan_payments table row.
type LoanPayment struct {
	PaymentID string          `db:"payment_id"`
	LoanID    string          `db:"loan_id"`
	Amount    decimal.Decimal `db:"amount"`
	PaidAt    time.Time       `db:"paid_at"`
	Notes     string          `db:"notes"`
	AuditFields
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanType says whether the user lent or borrowed the money.
type LoanType string

const (
	Lent     LoanType = "lent"
	Borrowed LoanType = "borrowed"
)

// Valid reports whether t is a known loan type.
func (t LoanType) Valid() bool {
	return t == Lent || t == Borrowed
}

// LoanStatus is derived from the paid/total ratio and never stored on its own.
type LoanStatus string

const (
	LoanPending LoanStatus = "pending"
	LoanPartial LoanStatus = "partial"
	LoanPaid    LoanStatus = "paid"
)

// Loan is money lent to or borrowed from a counterparty.
type Loan struct {
	LoanID      string          `json:"loanID"`
	UserID      string          `json:"userID"`
	Type        LoanType        `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Person      string          `json:"person"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Description string          `json:"description"`
	LoanDate    time.Time       `json:"loanDate"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}

// Status derives the loan status from how much has been paid.
func (l Loan) Status() LoanStatus {
	switch {
	case !l.PaidAmount.IsPositive():
		return LoanPending
	case l.PaidAmount.LessThan(l.Amount):
		return LoanPartial
	default:
		return LoanPaid
	}
}

// Remaining is the amount still outstanding, never negative.
func (l Loan) Remaining() decimal.Decimal {
	rem := l.Amount.Sub(l.PaidAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// LoanPayment is one repayment against a loan.
type LoanPayment struct {
	PaymentID string          `json:"paymentID"`
	LoanID    string          `json:"loanID"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
	Notes     string          `json:"notes"`
	AuditFields
}

// LoanFilter narrows a loan listing. Status is matched after derivation.
type LoanFilter struct {
	Type   LoanType
	Status LoanStatus
}

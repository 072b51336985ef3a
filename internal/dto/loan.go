package dto

import (
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to record a loan.
type CreateLoanRequest struct {
	Type        domain.LoanType `json:"type" binding:"required,oneof=lent borrowed"`
	Amount      decimal.Decimal `json:"amount" binding:"dgt0"`
	Person      string          `json:"person" binding:"required,max=120"`
	Description string          `json:"description" binding:"max=255"`
	LoanDate    string          `json:"loanDate" binding:"omitempty,datetime=2006-01-02"`
	DueDate     string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateLoanRequest defines the data allowed for updating a loan.
type UpdateLoanRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,dgt0"`
	Person      *string          `json:"person" binding:"omitempty,min=1,max=120"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	DueDate     *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
}

// AddLoanPaymentRequest records one repayment.
type AddLoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0"`
	PaidAt string          `json:"paidAt" binding:"omitempty,datetime=2006-01-02"`
	Notes  string          `json:"notes" binding:"max=255"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Type   domain.LoanType   `form:"type" binding:"omitempty,oneof=lent borrowed"`
	Status domain.LoanStatus `form:"status" binding:"omitempty,oneof=pending partial paid"`
}

// LoanResponse is a loan with its derived status and outstanding amount.
type LoanResponse struct {
	domain.Loan
	Status    domain.LoanStatus `json:"status"`
	Remaining decimal.Decimal   `json:"remaining"`
}

func ToLoanResponse(l domain.Loan) LoanResponse {
	return LoanResponse{Loan: l, Status: l.Status(), Remaining: l.Remaining()}
}

func ToListLoanResponse(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = ToLoanResponse(l)
	}
	return res
}

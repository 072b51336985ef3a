package mapping

import (
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:      d.LoanID,
		UserID:      d.UserID,
		Type:        string(d.Type),
		Amount:      d.Amount,
		Person:      d.Person,
		PaidAmount:  d.PaidAmount,
		Description: d.Description,
		LoanDate:    d.LoanDate,
		DueDate:     d.DueDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:      m.LoanID,
		UserID:      m.UserID,
		Type:        domain.LoanType(m.Type),
		Amount:      m.Amount,
		Person:      m.Person,
		PaidAmount:  m.PaidAmount,
		Description: m.Description,
		LoanDate:    m.LoanDate,
		DueDate:     m.DueDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model Loans to domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}

// ToModelLoanPayment converts a domain LoanPayment to a model LoanPayment
func ToModelLoanPayment(d domain.LoanPayment) models.LoanPayment {
	return models.LoanPayment{
		PaymentID:   d.PaymentID,
		LoanID:      d.LoanID,
		Amount:      d.Amount,
		PaidAt:      d.PaidAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoanPayment converts a model LoanPayment to a domain LoanPayment
func ToDomainLoanPayment(m models.LoanPayment) domain.LoanPayment {
	return domain.LoanPayment{
		PaymentID:   m.PaymentID,
		LoanID:      m.LoanID,
		Amount:      m.Amount,
		PaidAt:      m.PaidAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanPaymentSlice converts a slice of model LoanPayments to domain LoanPayments
func ToDomainLoanPaymentSlice(ms []models.LoanPayment) []domain.LoanPayment {
	ds := make([]domain.LoanPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoanPayment(m)
	}
	return ds
}

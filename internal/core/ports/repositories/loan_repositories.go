package repositories

import (
	"context"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// LoanReader defines read operations for loans
type LoanReader interface {
	FindLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error)
	ListLoans(ctx context.Context, userID string, loanType domain.LoanType) ([]domain.Loan, error)
	ListPayments(ctx context.Context, userID, loanID string) ([]domain.LoanPayment, error)
}

// LoanWriter defines write operations for loans
type LoanWriter interface {
	SaveLoan(ctx context.Context, loan domain.Loan) error
	UpdateLoan(ctx context.Context, loan domain.Loan) error
	DeleteLoan(ctx context.Context, userID, loanID string) error
}

// LoanPaymentManager changes the paid amount under a row lock.
type LoanPaymentManager interface {
	// AddPayment returns apperrors.ErrValidation when the payment exceeds the remaining balance.
	AddPayment(ctx context.Context, userID string, payment domain.LoanPayment) (*domain.Loan, error)
	DeletePayment(ctx context.Context, userID, loanID, paymentID string) (*domain.Loan, error)
}

// LoanRepositoryFacade combines all loan repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	LoanPaymentManager
}

// LoanRepositoryWithTx extends LoanRepositoryFacade with transaction capabilities
type LoanRepositoryWithTx interface {
	LoanRepositoryFacade
	TransactionManager
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type loanService struct {
	BaseService
	loanRepo portsrepo.LoanRepositoryWithTx
}

func NewLoanService(loanRepo portsrepo.LoanRepositoryWithTx, options ...ServiceOption) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(options),
		loanRepo:    loanRepo,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) GetLoan(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, userID, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

// ListLoans filters by type in the database and by derived status here.
func (s *loanService) ListLoans(ctx context.Context, userID string, params dto.ListLoansParams) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListLoans(ctx, userID, params.Type)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans", slog.String("user_id", userID))
		return nil, err
	}
	filtered := make([]domain.Loan, 0, len(loans))
	for _, loan := range loans {
		if params.Status == "" || loan.Status() == params.Status {
			filtered = append(filtered, loan)
		}
	}
	return filtered, nil
}

func (s *loanService) ListPayments(ctx context.Context, userID, loanID string) ([]domain.LoanPayment, error) {
	if _, err := s.GetLoan(ctx, userID, loanID); err != nil {
		return nil, err
	}
	payments, err := s.loanRepo.ListPayments(ctx, userID, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loan payments", slog.String("loan_id", loanID))
		return nil, err
	}
	if payments == nil {
		payments = []domain.LoanPayment{}
	}
	return payments, nil
}

func (s *loanService) CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid loan type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("loan amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	person := strings.TrimSpace(req.Person)
	if person == "" {
		return nil, fmt.Errorf("person is required: %w", apperrors.ErrValidation)
	}

	now := s.Now()
	loanDate := domain.DateOnly(now)
	if req.LoanDate != "" {
		parsed, err := dto.ParseDate(req.LoanDate)
		if err != nil {
			return nil, err
		}
		loanDate = parsed
	}
	dueDate, err := dto.ParseOptionalDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if dueDate != nil && dueDate.Before(loanDate) {
		return nil, fmt.Errorf("due date is before the loan date: %w", apperrors.ErrValidation)
	}

	loan := domain.Loan{
		LoanID:      uuid.NewString(),
		UserID:      userID,
		Type:        req.Type,
		Amount:      req.Amount,
		Person:      person,
		PaidAmount:  decimal.Zero,
		Description: strings.TrimSpace(req.Description),
		LoanDate:    loanDate,
		DueDate:     dueDate,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "Failed to save loan", slog.String("user_id", userID))
		return nil, err
	}
	return &loan, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, userID, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	loan, err := s.GetLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if req.Amount.LessThan(loan.PaidAmount) {
			return nil, fmt.Errorf("loan amount cannot be lower than the %s already paid: %w", loan.PaidAmount.StringFixed(2), apperrors.ErrValidation)
		}
		loan.Amount = *req.Amount
	}
	if req.Person != nil {
		person := strings.TrimSpace(*req.Person)
		if person == "" {
			return nil, fmt.Errorf("person is required: %w", apperrors.ErrValidation)
		}
		loan.Person = person
	}
	if req.Description != nil {
		loan.Description = strings.TrimSpace(*req.Description)
	}
	if req.DueDate != nil {
		due, err := dto.ParseOptionalDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		loan.DueDate = due
	}
	loan.Touch(userID, s.Now())

	// The repository re-checks the paid amount in the same statement.
	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, userID, loanID string) error {
	if err := s.loanRepo.DeleteLoan(ctx, userID, loanID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete loan", slog.String("loan_id", loanID))
		}
		return err
	}
	return nil
}

func (s *loanService) AddPayment(ctx context.Context, userID, loanID string, req dto.AddLoanPaymentRequest) (*domain.Loan, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	now := s.Now()
	paidAt := domain.DateOnly(now)
	if req.PaidAt != "" {
		parsed, err := dto.ParseDate(req.PaidAt)
		if err != nil {
			return nil, err
		}
		paidAt = parsed
	}

	payment := domain.LoanPayment{
		PaymentID:   uuid.NewString(),
		LoanID:      loanID,
		Amount:      req.Amount,
		PaidAt:      paidAt,
		Notes:       strings.TrimSpace(req.Notes),
		AuditFields: domain.NewAuditFields(userID, now),
	}
	loan, err := s.loanRepo.AddPayment(ctx, userID, payment)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to add loan payment", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Loan payment recorded",
		slog.String("loan_id", loanID),
		slog.String("status", string(loan.Status())))
	return loan, nil
}

func (s *loanService) DeletePayment(ctx context.Context, userID, loanID, paymentID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.DeletePayment(ctx, userID, loanID, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete loan payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return loan, nil
}

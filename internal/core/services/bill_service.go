package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/google/uuid"
)

// DefaultRecurrenceHorizon is how far ahead recurring bills are generated when no horizon is configured.
const DefaultRecurrenceHorizon = 30 * 24 * time.Hour

type billService struct {
	BaseService
	billRepo portsrepo.BillRepositoryWithTx
	horizon  time.Duration
}

func NewBillService(billRepo portsrepo.BillRepositoryWithTx, horizon time.Duration, options ...ServiceOption) portssvc.BillSvcFacade {
	if horizon <= 0 {
		horizon = DefaultRecurrenceHorizon
	}
	return &billService{
		BaseService: newBaseService(options),
		billRepo:    billRepo,
		horizon:     horizon,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) today() time.Time {
	return domain.DateOnly(s.Now())
}

func (s *billService) GetBill(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bill", slog.String("bill_id", billID))
		}
		return nil, err
	}
	return bill, nil
}

func (s *billService) ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, error) {
	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		return nil, err
	}

	// Listing still works when generation fails; the next call retries it.
	if _, err := s.GenerateDueBills(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to generate recurring bills before listing", slog.String("user_id", userID))
	}

	filter := domain.BillFilter{
		Status: params.Status,
		Type:   params.Type,
		From:   from,
		To:     dto.ExclusiveEnd(to),
	}
	bills, err := s.billRepo.ListBills(ctx, userID, filter, s.today())
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.String("user_id", userID))
		return nil, err
	}
	if bills == nil {
		bills = []domain.Bill{}
	}
	return bills, nil
}

func (s *billService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid bill type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("bill amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	due, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	audit := domain.NewAuditFields(userID, s.Now())

	if req.Recurrence == nil {
		bill := domain.Bill{
			BillID:      uuid.NewString(),
			UserID:      userID,
			Type:        req.Type,
			Amount:      req.Amount,
			Category:    strings.TrimSpace(req.Category),
			Description: strings.TrimSpace(req.Description),
			DueDate:     due,
			Status:      domain.BillOpen,
			AuditFields: audit,
		}
		if err := s.billRepo.SaveBill(ctx, bill); err != nil {
			s.LogError(ctx, err, "Failed to save bill", slog.String("user_id", userID))
			return nil, err
		}
		return &bill, nil
	}

	rec, err := s.newRecurrence(userID, req, due, audit)
	if err != nil {
		return nil, err
	}
	first := rec.NewBill(uuid.NewString(), due, audit)
	if err := s.billRepo.SaveRecurrence(ctx, rec, first); err != nil {
		s.LogError(ctx, err, "Failed to save bill recurrence", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Bill recurrence created",
		slog.String("recurrence_id", rec.RecurrenceID),
		slog.String("frequency", string(rec.Frequency)))
	return &first, nil
}

func (s *billService) newRecurrence(userID string, req dto.CreateBillRequest, due time.Time, audit domain.AuditFields) (domain.BillRecurrence, error) {
	r := req.Recurrence
	if !r.Frequency.Valid() {
		return domain.BillRecurrence{}, fmt.Errorf("invalid recurrence frequency %q: %w", r.Frequency, apperrors.ErrValidation)
	}
	interval := r.Interval
	if interval == 0 {
		interval = 1
	}
	if interval < 0 {
		return domain.BillRecurrence{}, fmt.Errorf("recurrence interval must be at least 1: %w", apperrors.ErrValidation)
	}
	endDate, err := dto.ParseOptionalDate(r.EndDate)
	if err != nil {
		return domain.BillRecurrence{}, err
	}
	if endDate != nil && endDate.Before(due) {
		return domain.BillRecurrence{}, fmt.Errorf("recurrence end date is before the first due date: %w", apperrors.ErrValidation)
	}

	rec := domain.BillRecurrence{
		RecurrenceID: uuid.NewString(),
		UserID:       userID,
		Type:         req.Type,
		Amount:       req.Amount,
		Category:     strings.TrimSpace(req.Category),
		Description:  strings.TrimSpace(req.Description),
		Frequency:    r.Frequency,
		Interval:     interval,
		StartDate:    due,
		EndDate:      endDate,
		AuditFields:  audit,
	}
	rec.NextDueDate = rec.NextAfter(due)
	rec.Active = rec.Covers(rec.NextDueDate)
	return rec, nil
}

func (s *billService) UpdateBill(ctx context.Context, userID, billID string, req dto.UpdateBillRequest) (*domain.Bill, error) {
	bill, err := s.GetBill(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != domain.BillOpen {
		return nil, fmt.Errorf("only open bills can be edited: %w", apperrors.ErrValidation)
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("bill amount must be greater than zero: %w", apperrors.ErrValidation)
		}
		bill.Amount = *req.Amount
	}
	if req.Category != nil {
		bill.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		bill.Description = strings.TrimSpace(*req.Description)
	}
	if req.DueDate != nil {
		due, err := dto.ParseDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		bill.DueDate = due
	}
	bill.Touch(userID, s.Now())

	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		s.LogError(ctx, err, "Failed to update bill", slog.String("bill_id", billID))
		return nil, err
	}
	return bill, nil
}

func (s *billService) DeleteBill(ctx context.Context, userID, billID string) error {
	if err := s.billRepo.DeleteBill(ctx, userID, billID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete bill", slog.String("bill_id", billID))
		}
		return err
	}
	return nil
}

func (s *billService) PayBill(ctx context.Context, userID, billID string, req dto.PayBillRequest) (*domain.Bill, *domain.Transaction, error) {
	bill, err := s.GetBill(ctx, userID, billID)
	if err != nil {
		return nil, nil, err
	}
	if bill.Status != domain.BillOpen {
		return nil, nil, fmt.Errorf("bill is %s and cannot be paid: %w", bill.Status, apperrors.ErrValidation)
	}

	now := s.Now()
	paidAt := domain.DateOnly(now)
	if req.PaidAt != "" {
		if paidAt, err = dto.ParseDate(req.PaidAt); err != nil {
			return nil, nil, err
		}
	}
	bill.Status = domain.BillPaid
	bill.PaidAt = &paidAt
	bill.Touch(userID, now)

	var txn *domain.Transaction
	if req.CreateTransaction {
		category := bill.Category
		if category == "" {
			category = domain.FallbackCategory
		}
		txn = &domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          bill.Type.TransactionType(),
			Amount:        bill.Amount,
			Category:      category,
			Description:   bill.Description,
			Date:          paidAt,
			Tags:          []string{},
			Source:        domain.SourceBill,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
	}

	if err := s.billRepo.PayBill(ctx, *bill, txn); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to pay bill", slog.String("bill_id", billID))
		}
		return nil, nil, err
	}
	s.LogInfo(ctx, "Bill paid", slog.String("bill_id", billID), slog.Bool("transaction_recorded", txn != nil))
	return bill, txn, nil
}

func (s *billService) CancelBill(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	bill, err := s.GetBill(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != domain.BillOpen {
		return nil, fmt.Errorf("bill is %s and cannot be canceled: %w", bill.Status, apperrors.ErrValidation)
	}
	bill.Status = domain.BillCanceled
	bill.PaidAt = nil
	bill.Touch(userID, s.Now())

	if err := s.billRepo.SetBillStatus(ctx, *bill); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to cancel bill", slog.String("bill_id", billID))
		}
		return nil, err
	}
	return bill, nil
}

func (s *billService) ListRecurrences(ctx context.Context, userID string) ([]domain.BillRecurrence, error) {
	recs, err := s.billRepo.ListRecurrences(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bill recurrences", slog.String("user_id", userID))
		return nil, err
	}
	if recs == nil {
		recs = []domain.BillRecurrence{}
	}
	return recs, nil
}

// DeactivateRecurrence stops future generation. Bills already generated are kept.
func (s *billService) DeactivateRecurrence(ctx context.Context, userID, recurrenceID string) error {
	if err := s.billRepo.DeactivateRecurrence(ctx, userID, recurrenceID, s.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate bill recurrence", slog.String("recurrence_id", recurrenceID))
		}
		return err
	}
	return nil
}

func (s *billService) GenerateDueBills(ctx context.Context, userID string) (int, error) {
	now := s.Now()
	horizon := domain.DateOnly(now.Add(s.horizon))

	recs, err := s.billRepo.ListDueRecurrences(ctx, userID, horizon)
	if err != nil {
		return 0, fmt.Errorf("failed to list due recurrences: %w", err)
	}

	created := 0
	for _, rec := range recs {
		previous := rec.NextDueDate
		dates, next := rec.Pending(horizon)

		bills := make([]domain.Bill, 0, len(dates))
		for _, due := range dates {
			bills = append(bills, rec.NewBill(uuid.NewString(), due, domain.NewAuditFields(userID, now)))
		}
		rec.NextDueDate = next
		rec.Active = rec.Covers(next)
		rec.Touch(userID, now)

		advanced, err := s.billRepo.AdvanceRecurrence(ctx, rec, previous, bills)
		if err != nil {
			return created, fmt.Errorf("failed to generate bills for recurrence %s: %w", rec.RecurrenceID, err)
		}
		if !advanced {
			s.LogDebug(ctx, "Recurrence already advanced by another run", slog.String("recurrence_id", rec.RecurrenceID))
			continue
		}
		created += len(bills)
	}

	if created > 0 {
		s.LogInfo(ctx, "Generated recurring bills", slog.String("user_id", userID), slog.Int("count", created))
	}
	return created, nil
}

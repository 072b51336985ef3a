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
	"github.com/shopspring/decimal"
)

type budgetService struct {
	BaseService
	budgetRepo    portsrepo.BudgetRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, reportingRepo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.BudgetSvcFacade {
	return &budgetService{
		BaseService:   newBaseService(options),
		budgetRepo:    budgetRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// spentByCategory returns the month's expense totals keyed by lower-cased category name.
func (s *budgetService) spentByCategory(ctx context.Context, userID string, month time.Time) (map[string]decimal.Decimal, error) {
	from, to := domain.MonthRange(month)
	totals, err := s.reportingRepo.TotalsByCategory(ctx, userID, domain.Expense, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute spending by category", slog.String("user_id", userID))
		return nil, err
	}
	spent := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		key := strings.ToLower(t.Category)
		spent[key] = spent[key].Add(t.Total)
	}
	return spent, nil
}

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, fmt.Errorf("category is required: %w", apperrors.ErrValidation)
	}
	if !req.MonthlyLimit.IsPositive() {
		return nil, fmt.Errorf("monthly limit must be greater than zero: %w", apperrors.ErrValidation)
	}
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		UserID:       userID,
		Category:     category,
		MonthlyLimit: req.MonthlyLimit,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("category %s already has a budget: %w", category, err)
		}
		s.LogError(ctx, err, "Failed to save budget", slog.String("user_id", userID))
		return nil, err
	}
	return &budget, nil
}

func (s *budgetService) GetBudget(ctx context.Context, userID, budgetID string, month time.Time) (*domain.BudgetProgress, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	spent, err := s.spentByCategory(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	progress := domain.NewBudgetProgress(*budget, month, spent[strings.ToLower(budget.Category)])
	return &progress, nil
}

func (s *budgetService) ListBudgetProgress(ctx context.Context, userID string, month time.Time) ([]domain.BudgetProgress, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, err
	}
	if len(budgets) == 0 {
		return []domain.BudgetProgress{}, nil
	}
	spent, err := s.spentByCategory(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	progress := make([]domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		progress = append(progress, domain.NewBudgetProgress(b, month, spent[strings.ToLower(b.Category)]))
	}
	return progress, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, fmt.Errorf("category is required: %w", apperrors.ErrValidation)
		}
		budget.Category = category
	}
	if req.MonthlyLimit != nil {
		if !req.MonthlyLimit.IsPositive() {
			return nil, fmt.Errorf("monthly limit must be greater than zero: %w", apperrors.ErrValidation)
		}
		budget.MonthlyLimit = *req.MonthlyLimit
	}
	budget.Touch(userID, s.Now())

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, userID, budgetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		}
		return err
	}
	return nil
}

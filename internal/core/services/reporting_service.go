package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
)

const (
	// MaxReportMonths bounds the monthly report window.
	MaxReportMonths    = 36
	dashboardTopSpends = 5
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	budgets       portssvc.BudgetSvcFacade
}

func NewReportingService(reportingRepo portsrepo.ReportingRepository, budgets portssvc.BudgetSvcFacade, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(options),
		reportingRepo: reportingRepo,
		budgets:       budgets,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func validateRange(from, to time.Time) error {
	if !from.Before(to) {
		return fmt.Errorf("'from' must be before 'to': %w", apperrors.ErrValidation)
	}
	return nil
}

func (s *reportingService) GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.Summary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	summary, err := s.reportingRepo.Summarize(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize transactions", slog.String("user_id", userID))
		return nil, err
	}
	return summary, nil
}

func (s *reportingService) GetCategoryTotals(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) ([]domain.CategoryTotal, error) {
	if txType == "" {
		txType = domain.Expense
	}
	if !txType.Valid() {
		return nil, fmt.Errorf("invalid transaction type %q: %w", txType, apperrors.ErrValidation)
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	totals, err := s.reportingRepo.TotalsByCategory(ctx, userID, txType, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to total transactions by category", slog.String("user_id", userID))
		return nil, err
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return domain.WithPercentages(totals), nil
}

func (s *reportingService) GetMonthlyTotals(ctx context.Context, userID string, months int) ([]domain.MonthlyTotal, error) {
	if months < 1 || months > MaxReportMonths {
		return nil, fmt.Errorf("months must be between 1 and %d: %w", MaxReportMonths, apperrors.ErrValidation)
	}
	current, next := domain.MonthRange(s.Now())
	from := current.AddDate(0, -(months - 1), 0)

	totals, err := s.reportingRepo.MonthlyTotals(ctx, userID, from, next)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute monthly totals", slog.String("user_id", userID))
		return nil, err
	}
	return totals, nil
}

func (s *reportingService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	now := s.Now()
	from, to := domain.MonthRange(now)

	month, err := s.GetSummary(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	bills, err := s.reportingRepo.BillTotals(ctx, userID, domain.DateOnly(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to compute bill totals", slog.String("user_id", userID))
		return nil, err
	}
	loans, err := s.reportingRepo.LoanTotals(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute loan totals", slog.String("user_id", userID))
		return nil, err
	}
	budgets, err := s.budgets.ListBudgetProgress(ctx, userID, from)
	if err != nil {
		return nil, err
	}
	spends, err := s.GetCategoryTotals(ctx, userID, domain.Expense, from, to)
	if err != nil {
		return nil, err
	}
	if len(spends) > dashboardTopSpends {
		spends = spends[:dashboardTopSpends]
	}

	return &domain.Dashboard{
		Month:     *month,
		Bills:     *bills,
		Loans:     *loans,
		Budgets:   budgets,
		TopSpends: spends,
	}, nil
}

package services

import (
	"context"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// ReportingService defines the interface for read aggregations. Ranges are [from, to).
type ReportingService interface {
	GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.Summary, error)
	GetCategoryTotals(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) ([]domain.CategoryTotal, error)
	// GetMonthlyTotals returns the last months calendar months, ending with the current one.
	GetMonthlyTotals(ctx context.Context, userID string, months int) ([]domain.MonthlyTotal, error)
	GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// ReportingRepository runs the aggregate queries behind reports. Ranges are [from, to).
type ReportingRepository interface {
	Summarize(ctx context.Context, userID string, from, to time.Time) (*domain.Summary, error)
	TotalsByCategory(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) ([]domain.CategoryTotal, error)
	MonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyTotal, error)
	BillTotals(ctx context.Context, userID string, today time.Time) (*domain.BillTotals, error)
	LoanTotals(ctx context.Context, userID string) (*domain.LoanTotals, error)
}

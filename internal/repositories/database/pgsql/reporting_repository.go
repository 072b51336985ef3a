package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) Summarize(ctx context.Context, userID string, from, to time.Time) (*domain.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
			COUNT(*) FILTER (WHERE type = 'income'),
			COUNT(*) FILTER (WHERE type = 'expense')
		FROM transactions
		WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date < $3
	`
	s := &domain.Summary{From: from, To: to}
	err := r.Pool.QueryRow(ctx, query, userID, from, to).Scan(&s.Income, &s.Expense, &s.IncomeCount, &s.ExpenseCount)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s, nil
}

type categoryTotalRow struct {
	Category string          `db:"category"`
	Total    decimal.Decimal `db:"total"`
	Count    int             `db:"count"`
}

func (r *PgxReportingRepository) TotalsByCategory(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount) AS total, COUNT(*)::int AS count
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND transaction_date >= $3 AND transaction_date < $4
		GROUP BY category
		ORDER BY total DESC, category
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(txType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryTotalRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect category totals: %w", err)
	}
	totals := make([]domain.CategoryTotal, len(ms))
	for i, m := range ms {
		totals[i] = domain.CategoryTotal{Category: m.Category, Total: m.Total, Count: m.Count}
	}
	return totals, nil
}

type monthlyTotalRow struct {
	Month   time.Time       `db:"month"`
	Income  decimal.Decimal `db:"income"`
	Expense decimal.Decimal `db:"expense"`
}

// MonthlyTotals returns one row per month in [from, to), including months without transactions.
func (r *PgxReportingRepository) MonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyTotal, error) {
	query := `
		WITH months AS (
			SELECT generate_series(date_trunc('month', $2::date), $3::date - interval '1 day', interval '1 month')::date AS month
		)
		SELECT m.month,
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0) AS income,
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0) AS expense
		FROM months m
		LEFT JOIN transactions t
			ON t.user_id = $1
			AND t.transaction_date >= m.month
			AND t.transaction_date < (m.month + interval '1 month')
		GROUP BY m.month
		ORDER BY m.month
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[monthlyTotalRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect monthly totals: %w", err)
	}
	totals := make([]domain.MonthlyTotal, len(ms))
	for i, m := range ms {
		totals[i] = domain.MonthlyTotal{
			Month:   domain.DateOnly(m.Month),
			Income:  m.Income,
			Expense: m.Expense,
			Balance: m.Income.Sub(m.Expense),
		}
	}
	return totals, nil
}

func (r *PgxReportingRepository) BillTotals(ctx context.Context, userID string, today time.Time) (*domain.BillTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'payable'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'receivable'), 0),
			COUNT(*) FILTER (WHERE due_date < $2),
			COALESCE(SUM(amount) FILTER (WHERE type = 'payable' AND due_date < $2), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'receivable' AND due_date < $2), 0)
		FROM bills
		WHERE user_id = $1 AND status = 'open'
	`
	t := &domain.BillTotals{}
	err := r.Pool.QueryRow(ctx, query, userID, today).Scan(
		&t.OpenPayable, &t.OpenReceivable, &t.OverdueCount, &t.OverduePayable, &t.OverdueReceivable,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bills: %w", err)
	}
	return t, nil
}

func (r *PgxReportingRepository) LoanTotals(ctx context.Context, userID string) (*domain.LoanTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(GREATEST(amount - paid_amount, 0)) FILTER (WHERE type = 'lent'), 0),
			COALESCE(SUM(GREATEST(amount - paid_amount, 0)) FILTER (WHERE type = 'borrowed'), 0)
		FROM loans
		WHERE user_id = $1
	`
	t := &domain.LoanTotals{}
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&t.OutstandingLent, &t.OutstandingBorrowed); err != nil {
		return nil, fmt.Errorf("failed to aggregate loans: %w", err)
	}
	return t, nil
}

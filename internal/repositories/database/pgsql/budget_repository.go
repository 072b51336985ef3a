package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_app/internal/models"
	"github.com/SscSPs/personal_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetSelectQuery = `
	SELECT budget_id, user_id, category, monthly_limit,
		created_at, created_by, last_updated_at, last_updated_by
	FROM budgets
`

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, budgetSelectQuery+` WHERE budget_id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, notFoundIfNoRows(err, "failed to scan budget")
	}
	b := mapping.ToDomainBudget(m)
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, budgetSelectQuery+` WHERE user_id = $1 ORDER BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, fmt.Errorf("failed to collect budget rows: %w", err)
	}
	return mapping.ToDomainBudgetSlice(ms), nil
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (budget_id, user_id, category, monthly_limit,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.UserID, m.Category, m.MonthlyLimit,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("budget for category %q: %w", budget.Category, apperrors.ErrDuplicate)
		}
		return writeError(err, "failed to save budget")
	}
	return nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET category = $1, monthly_limit = $2, last_updated_at = $3, last_updated_by = $4
		WHERE budget_id = $5 AND user_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Category, m.MonthlyLimit, m.LastUpdatedAt, m.LastUpdatedBy, m.BudgetID, m.UserID)
	if err != nil && pgErrorCode(err) == pgUniqueViolation {
		return fmt.Errorf("budget for category %q: %w", budget.Category, apperrors.ErrDuplicate)
	}
	return requireRowsAffected(tag, err, "failed to update budget")
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2`, budgetID, userID)
	return requireRowsAffected(tag, err, "failed to delete budget")
}

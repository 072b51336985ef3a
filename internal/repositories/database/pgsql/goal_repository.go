package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_app/internal/models"
	"github.com/SscSPs/personal_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxGoalRepository struct {
	BaseRepository
}

func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

const goalColumns = `
	goal_id, user_id, title, target_amount, current_amount, target_date, priority, status,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+goalColumns+` FROM goals WHERE goal_id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}
	return collectGoal(rows)
}

func collectGoal(rows pgx.Rows) (*domain.Goal, error) {
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Goal])
	if err != nil {
		return nil, notFoundIfNoRows(err, "failed to scan goal")
	}
	g := mapping.ToDomainGoal(m)
	return &g, nil
}

func (r *PgxGoalRepository) ListGoals(ctx context.Context, userID string, status domain.GoalStatus) ([]domain.Goal, error) {
	w := &whereClause{}
	w.add("user_id = ?", userID)
	if status != "" {
		w.add("status = ?", string(status))
	}
	query := `SELECT ` + goalColumns + ` FROM goals` + w.String() + `
		ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, target_date NULLS LAST, created_at`
	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Goal])
	if err != nil {
		return nil, fmt.Errorf("failed to collect goal rows: %w", err)
	}
	return mapping.ToDomainGoalSlice(ms), nil
}

func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.UserID, m.Title, m.TargetAmount, m.CurrentAmount, m.TargetDate, m.Priority, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "failed to save goal")
	}
	return nil
}

func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals
		SET title = $1, target_amount = $2, current_amount = $3, target_date = $4, priority = $5, status = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE goal_id = $9 AND user_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Title, m.TargetAmount, m.CurrentAmount, m.TargetDate, m.Priority, m.Status,
		m.LastUpdatedAt, m.LastUpdatedBy, m.GoalID, m.UserID,
	)
	return requireRowsAffected(tag, err, "failed to update goal")
}

func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2`, goalID, userID)
	return requireRowsAffected(tag, err, "failed to delete goal")
}

func (r *PgxGoalRepository) AddContribution(ctx context.Context, userID, goalID string, amount decimal.Decimal, by string) (*domain.Goal, error) {
	query := `
		UPDATE goals
		SET current_amount = current_amount + $1,
			status = CASE WHEN status = 'active' AND current_amount + $1 >= target_amount THEN 'completed' ELSE status END,
			last_updated_at = NOW(), last_updated_by = $2
		WHERE goal_id = $3 AND user_id = $4
		RETURNING ` + goalColumns
	rows, err := r.Pool.Query(ctx, query, amount, by, goalID, userID)
	if err != nil {
		return nil, writeError(err, "failed to add goal contribution")
	}
	return collectGoal(rows)
}

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

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categorySelectQuery = `
SELECT
	category_id, user_id, name, type, icon, color, is_default,
	created_at, created_by, last_updated_at, last_updated_by
FROM categories
`

func (r *PgxCategoryRepository) getCategories(ctx context.Context, filter string, args ...any) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, categorySelectQuery+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect category rows: %w", err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return r.getCategories(ctx, `WHERE user_id = $1 ORDER BY is_default DESC, name`, userID)
}

func (r *PgxCategoryRepository) findOne(ctx context.Context, filter string, args ...any) (*domain.Category, error) {
	cats, err := r.getCategories(ctx, filter, args...)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &cats[0], nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	return r.findOne(ctx, `WHERE user_id = $1 AND category_id = $2`, userID, categoryID)
}

func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, userID, name string) (*domain.Category, error) {
	return r.findOne(ctx, `WHERE user_id = $1 AND lower(name) = lower($2)`, userID, name)
}

const categoryInsertQuery = `
	INSERT INTO categories (
		category_id, user_id, name, type, icon, color, is_default,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func categoryInsertArgs(c domain.Category) []any {
	m := mapping.ToModelCategory(c)
	return []any{
		m.CategoryID, m.UserID, m.Name, m.Type, m.Icon, m.Color, m.IsDefault,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	_, err := r.Pool.Exec(ctx, categoryInsertQuery, categoryInsertArgs(category)...)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("category %q: %w", category.Name, apperrors.ErrDuplicate)
		}
		return writeError(err, "failed to save category")
	}
	return nil
}

func (r *PgxCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(categoryInsertQuery+` ON CONFLICT DO NOTHING`, categoryInsertArgs(c)...)
	}
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return writeError(err, "failed to seed categories")
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $1, type = $2, icon = $3, color = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $7 AND user_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.Type, m.Icon, m.Color, m.LastUpdatedAt, m.LastUpdatedBy, m.CategoryID, m.UserID)
	if err != nil && pgErrorCode(err) == pgUniqueViolation {
		return fmt.Errorf("category %q: %w", category.Name, apperrors.ErrDuplicate)
	}
	return requireRowsAffected(tag, err, "failed to update category")
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1 AND user_id = $2`, categoryID, userID)
	return requireRowsAffected(tag, err, "failed to delete category")
}

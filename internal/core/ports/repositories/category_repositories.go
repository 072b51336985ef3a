package repositories

import (
	"context"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// CategoryReader defines read operations for categories
type CategoryReader interface {
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	// FindCategoryByName matches the name case-insensitively.
	FindCategoryByName(ctx context.Context, userID, name string) (*domain.Category, error)
}

// CategoryWriter defines write operations for categories
type CategoryWriter interface {
	// SaveCategory returns apperrors.ErrDuplicate when the name is taken.
	SaveCategory(ctx context.Context, category domain.Category) error
	// SaveCategories inserts categories, skipping names the user already has.
	SaveCategories(ctx context.Context, categories []domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

package services

import (
	"context"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/dto"
)

// CategoryReaderSvc defines read operations for categories
type CategoryReaderSvc interface {
	// ListCategories returns the user's categories, seeding the default set on first use.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	// ResolveCategory maps a free-text name onto one of the user's categories,
	// falling back to domain.FallbackCategory.
	ResolveCategory(ctx context.Context, userID, name string) (string, error)
}

// CategoryWriterSvc defines write operations for categories
type CategoryWriterSvc interface {
	SeedDefaults(ctx context.Context, userID string) error
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}

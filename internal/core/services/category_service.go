package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, options ...ServiceOption) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  newBaseService(options),
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	if err := s.SeedDefaults(ctx, userID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListCategories(ctx, userID)
}

func (s *categoryService) ResolveCategory(ctx context.Context, userID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.FallbackCategory, nil
	}
	category, err := s.categoryRepo.FindCategoryByName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.FallbackCategory, nil
		}
		return "", err
	}
	return category.Name, nil
}

func (s *categoryService) SeedDefaults(ctx context.Context, userID string) error {
	now := s.Now()
	categories := make([]domain.Category, 0, len(domain.DefaultCategories))
	for _, def := range domain.DefaultCategories {
		categories = append(categories, domain.Category{
			CategoryID:  uuid.NewString(),
			UserID:      userID,
			Name:        def.Name,
			Type:        def.Type,
			Icon:        def.Icon,
			Color:       def.Color,
			IsDefault:   true,
			AuditFields: domain.NewAuditFields(userID, now),
		})
	}
	if err := s.categoryRepo.SaveCategories(ctx, categories); err != nil {
		s.LogError(ctx, err, "Failed to seed default categories", slog.String("user_id", userID))
		return fmt.Errorf("failed to seed default categories: %w", err)
	}
	s.LogDebug(ctx, "Seeded default categories", slog.String("user_id", userID))
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("category name cannot be blank: %w", apperrors.ErrValidation)
	}
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Type:        req.Type,
		Icon:        req.Icon,
		Color:       strings.ToUpper(req.Color),
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save category", slog.String("user_id", userID))
		}
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("category name cannot be blank: %w", apperrors.ErrValidation)
		}
		if category.Name == domain.FallbackCategory && name != domain.FallbackCategory {
			return nil, fmt.Errorf("the %s category cannot be renamed: %w", domain.FallbackCategory, apperrors.ErrForbidden)
		}
		category.Name = name
	}
	if req.Type != nil {
		category.Type = *req.Type
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = strings.ToUpper(*req.Color)
	}
	category.Touch(userID, s.Now())

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Existing transactions keep the name as a label.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if category.Name == domain.FallbackCategory {
		return fmt.Errorf("the %s category cannot be deleted: %w", domain.FallbackCategory, apperrors.ErrForbidden)
	}
	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}
	return nil
}

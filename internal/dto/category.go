package dto

import "github.com/SscSPs/personal_finance_app/internal/core/domain"

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,min=1,max=60"`
	Type  domain.CategoryType `json:"type" binding:"required,oneof=income expense both"`
	Icon  string              `json:"icon" binding:"max=40"`
	Color string              `json:"color" binding:"omitempty,hexcolor,len=7"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name  *string              `json:"name" binding:"omitempty,min=1,max=60"`
	Type  *domain.CategoryType `json:"type" binding:"omitempty,oneof=income expense both"`
	Icon  *string              `json:"icon" binding:"omitempty,max=40"`
	Color *string              `json:"color" binding:"omitempty,hexcolor,len=7"`
}

package dto

import (
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// UpdateUserRequest defines the data allowed for updating the current user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=120"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

type UserResponse struct {
	UserID       string              `json:"userID"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Phone        string              `json:"phone"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		Phone:        user.Phone,
		AuthProvider: user.AuthProvider,
		CreatedAt:    user.CreatedAt,
	}
}

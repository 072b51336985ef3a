package services

import (
	"context"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// IssueRefreshToken creates a new refresh token and stores its hash on the user,
	// replacing any previous one.
	IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// GoogleOAuthHandlerSvcFacade verifies Google identities.
type GoogleOAuthHandlerSvcFacade interface {
	// VerifyIDToken validates an ID token issued to this application's client ID.
	VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)
	// ExchangeCode trades an authorization code for Google tokens and returns the ID token.
	ExchangeCode(ctx context.Context, code string) (string, error)
}

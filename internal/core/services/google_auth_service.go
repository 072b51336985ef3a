package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// IDTokenValidator matches idtoken.Validate.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	validate     IDTokenValidator
}

// GoogleOption customizes the Google sign-in service.
type GoogleOption func(*googleOAuthHandlerService)

// WithIDTokenValidator replaces idtoken.Validate.
func WithIDTokenValidator(v IDTokenValidator) GoogleOption {
	return func(s *googleOAuthHandlerService) {
		s.validate = v
	}
}

// WithOAuth2Endpoint replaces the Google token endpoint.
func WithOAuth2Endpoint(endpoint oauth2.Endpoint) GoogleOption {
	return func(s *googleOAuthHandlerService) {
		s.oauth2Config.Endpoint = endpoint
	}
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config, options ...GoogleOption) portssvc.GoogleOAuthHandlerSvcFacade {
	s := &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// ExchangeCode exchanges an OAuth authorization code for Google tokens and returns the ID token.
func (s *googleOAuthHandlerService) ExchangeCode(ctx context.Context, code string) (string, error) {
	if s.cfg.GoogleClientID == "" || s.cfg.GoogleClientSecret == "" {
		return "", errors.New("google code exchange is not configured in the application")
	}
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode < 500 {
			return "", fmt.Errorf("invalid or expired authorization code: %w", apperrors.ErrUnauthorized)
		}
		return "", fmt.Errorf("failed to exchange oauth code for token: %v: %w", err, apperrors.ErrUpstream)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("google token response has no id_token: %w", apperrors.ErrUpstream)
	}
	return idToken, nil
}

// VerifyIDToken validates an ID token received from Google and extracts the identity.
func (s *googleOAuthHandlerService) VerifyIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := s.validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %v: %w", err, apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		return nil, fmt.Errorf("google ID token is missing the email or subject claim: %w", apperrors.ErrUnauthorized)
	}
	if !verified {
		return nil, fmt.Errorf("google account email is not verified: %w", apperrors.ErrUnauthorized)
	}

	return &domain.GoogleUserInfo{Subject: payload.Subject, Email: email, Name: name}, nil
}

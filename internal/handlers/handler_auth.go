package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/middleware"
	"github.com/SscSPs/personal_finance_app/internal/platform/config"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles sign-up, sign-in and session refresh.
type authHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	googleService portssvc.GoogleOAuthHandlerSvcFacade
	analytics     *utils.PosthogClientWrapper
	cfg           *config.Config
}

func newAuthHandler(services *portssvc.ServiceContainer, analytics *utils.PosthogClientWrapper, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:   services.User,
		tokenService:  services.TokenService,
		googleService: services.GoogleOAuthHandler,
		analytics:     analytics,
		cfg:           cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, analytics *utils.PosthogClientWrapper, cfg *config.Config, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(services, analytics, cfg)
	limit := middleware.RateLimit(loginLimiter)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", limit, h.login)
		auth.POST("/google", limit, h.googleLogin)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a local account and seeds the default categories.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to register user")
		return
	}

	h.analytics.Enqueue(user.UserID, utils.EventUserRegistered, map[string]any{"provider": string(user.AuthProvider)})
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Authenticates with email and password. The refresh token is set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Login failed", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to sign in")
		return
	}
	h.startSession(c, user)
}

// googleLogin godoc
// @Summary Sign in with Google
// @Description Accepts a Google ID token, or an authorization code that is exchanged for one.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginRequest true "Google credential"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	idToken := req.IDToken
	if idToken == "" {
		var err error
		if idToken, err = h.googleService.ExchangeCode(ctx, req.Code); err != nil {
			respondWithError(c, err, "Failed to exchange Google authorization code")
			return
		}
	}

	info, err := h.googleService.VerifyIDToken(ctx, idToken)
	if err != nil {
		respondWithError(c, err, "Failed to verify Google credential")
		return
	}
	user, err := h.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondWithError(c, err, "Failed to process Google sign-in")
		return
	}
	h.startSession(c, user)
}

// refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token cookie and returns a new access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	ctx := c.Request.Context()
	userID, raw, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(ctx, userID, raw)
	if err != nil {
		h.clearRefreshCookie(c)
		respondWithError(c, err, "Failed to refresh session")
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondWithError(c, err, "Failed to generate access token")
		return
	}
	if !h.rotateRefreshToken(c, user) {
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken, ExpiresAt: expiresAt})
}

// logout godoc
// @Summary Log out
// @Description Revokes the refresh token carried by the cookie and clears it.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	ctx := c.Request.Context()
	if userID, raw, ok := h.readRefreshCookie(c); ok {
		// only the holder of a valid token may revoke it
		if _, err := h.tokenService.ValidateAndParseRefreshToken(ctx, userID, raw); err == nil {
			if err := h.tokenService.RevokeRefreshToken(ctx, userID); err != nil {
				middleware.GetLoggerFromContext(c).Error("Failed to revoke refresh token", slog.String("error", err.Error()))
			}
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *authHandler) startSession(c *gin.Context, user *domain.User) {
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err, "Failed to generate access token")
		return
	}
	if !h.rotateRefreshToken(c, user) {
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}

func (h *authHandler) rotateRefreshToken(c *gin.Context, user *domain.User) bool {
	raw, expiresAt, err := h.tokenService.IssueRefreshToken(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err, "Failed to issue refresh token")
		return false
	}
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, user.UserID+":"+raw, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	return true
}

// readRefreshCookie splits the cookie into the owning user and the raw token.
func (h *authHandler) readRefreshCookie(c *gin.Context) (string, string, bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	userID, raw, found := strings.Cut(value, ":")
	if !found || userID == "" || raw == "" {
		return "", "", false
	}
	return userID, raw, true
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/personal_finance_app/cmd/docs"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/middleware"
	"github.com/SscSPs/personal_finance_app/internal/platform/config"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

const (
	defaultLoginRate  = "5-M"
	defaultAdviceRate = "10-H"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	if err := RegisterValidators(); err != nil {
		panic("registering request validators: " + err.Error())
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter := buildLimiter(cfg.LoginRateLimit, defaultLoginRate)
	adviceLimiter := buildLimiter(cfg.AdviceRateLimit, defaultAdviceRate)

	// Public authentication routes
	public := r.Group("/api/v1")
	registerAuthRoutes(public, services, analytics, cfg, loginLimiter)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, analytics, adviceLimiter)

	// Gateway callbacks authenticate with their own shared secret
	registerWhatsAppRoutes(r, services.WhatsApp, analytics, cfg.WhatsAppVerifyToken, cfg.WhatsAppAPIKey)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
	adviceLimiter *limiter.Limiter,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerUserRoutes(v1, services.User)
	registerCategoryRoutes(v1, services.Category)
	registerTransactionRoutes(v1, services.Transaction, analytics)
	registerBillRoutes(v1, services.Bill)
	registerLoanRoutes(v1, services.Loan)
	registerBudgetRoutes(v1, services.Budget)
	registerGoalRoutes(v1, services.Goal)
	registerReportingRoutes(v1, services.Reporting)
	registerImportRoutes(v1, services.Import, analytics)
	registerAdviceRoutes(v1, services.Advice, analytics, adviceLimiter)
}

// buildLimiter falls back to the default rate when the configured one cannot be parsed.
func buildLimiter(formatted, fallback string) *limiter.Limiter {
	l, err := middleware.NewMemoryLimiter(formatted)
	if err == nil {
		return l
	}
	slog.Warn("Invalid rate limit, using default",
		slog.String("rate", formatted), slog.String("default", fallback), slog.String("error", err.Error()))
	l, err = middleware.NewMemoryLimiter(fallback)
	if err != nil {
		panic("building default rate limiter: " + err.Error())
	}
	return l
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	MigrationsPath    string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string `mapstructure:"REFRESH_TOKEN_COOKIE_PATH"`

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey string

	// WhatsApp gateway
	WhatsAppVerifyToken string
	WhatsAppAPIKey      string

	// Language model used for advice
	LLMAPIKey         string
	LLMBaseURL        string
	LLMModel          string
	LLMTimeout        time.Duration
	AdviceHistoryDays int
	AdviceRateLimit   string

	LoginRateLimit        string
	BillRecurrenceHorizon time.Duration
	CategoryRulesFile     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "personal-finance-app")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("WHATSAPP_VERIFY_TOKEN", "")
	viper.SetDefault("WHATSAPP_API_KEY", "")
	viper.SetDefault("LLM_API_KEY", "")
	viper.SetDefault("LLM_BASE_URL", "")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_TIMEOUT", "30s")
	viper.SetDefault("ADVICE_HISTORY_DAYS", 90)
	viper.SetDefault("ADVICE_RATE_LIMIT", "10-H")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("BILL_RECURRENCE_HORIZON", "720h")
	viper.SetDefault("CATEGORY_RULES_FILE", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		MigrationsPath:         viper.GetString("MIGRATIONS_PATH"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		JWTIssuer:              viper.GetString("JWT_ISSUER"),
		RefreshTokenCookieName: viper.GetString("REFRESH_TOKEN_COOKIE_NAME"),
		RefreshTokenCookiePath: viper.GetString("REFRESH_TOKEN_COOKIE_PATH"),
		GoogleClientID:         viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:     viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:      viper.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:        viper.GetString("FRONTEND_BASE_URL"),
		PosthogAPIKey:          viper.GetString("POSTHOG_API_KEY"),
		WhatsAppVerifyToken:    viper.GetString("WHATSAPP_VERIFY_TOKEN"),
		WhatsAppAPIKey:         viper.GetString("WHATSAPP_API_KEY"),
		LLMAPIKey:              viper.GetString("LLM_API_KEY"),
		LLMBaseURL:             viper.GetString("LLM_BASE_URL"),
		LLMModel:               viper.GetString("LLM_MODEL"),
		AdviceHistoryDays:      viper.GetInt("ADVICE_HISTORY_DAYS"),
		AdviceRateLimit:        viper.GetString("ADVICE_RATE_LIMIT"),
		LoginRateLimit:         viper.GetString("LOGIN_RATE_LIMIT"),
		CategoryRulesFile:      viper.GetString("CATEGORY_RULES_FILE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.AdviceHistoryDays <= 0 {
		cfg.AdviceHistoryDays = 90
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = durationOrDefault("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.LLMTimeout = durationOrDefault("LLM_TIMEOUT", 30*time.Second)
	cfg.BillRecurrenceHorizon = durationOrDefault("BILL_RECURRENCE_HORIZON", 30*24*time.Hour)

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	if cfg.LLMAPIKey == "" {
		log.Println("Warning: LLM_API_KEY not set. Advice requests will fail.")
	}
	if cfg.WhatsAppVerifyToken == "" {
		log.Println("Warning: WHATSAPP_VERIFY_TOKEN not set. Webhook verification will always fail.")
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

type categoryRulesFile struct {
	Fallback string           `mapstructure:"fallback"`
	Rules    []statement.Rule `mapstructure:"rules"`
}

// LoadCategorizer builds the import categorizer. An empty path keeps the built-in keyword table;
// otherwise the file (YAML, JSON or TOML) must provide a non-empty "rules" list.
func LoadCategorizer(path string) (*statement.Categorizer, error) {
	if path == "" {
		return statement.DefaultCategorizer(), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read category rules from %s: %w", path, err)
	}
	var file categoryRulesFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode category rules from %s: %w", path, err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("category rules file %s defines no rules", path)
	}
	return statement.NewCategorizer(file.Rules, file.Fallback), nil
}

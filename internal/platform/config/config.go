package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StoreDriver   string

	JWTSecret    string
	AuthDisabled bool

	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"

	PosthogAPIKey   string
	PosthogEndpoint string

	CurrencyCode     string
	CurrencySymbol   string
	CurrencyDecimals int
	CurrencyLocale   string

	// ConflictMaxRetries bounds retries of an operation that lost an optimistic-lock race.
	ConflictMaxRetries    int
	ConflictRetryInterval time.Duration
	RecurringMaxCatchUp   int
	RecurringWorkers      int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("AUTH_DISABLED", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("CURRENCY_CODE", "USD")
	viper.SetDefault("CURRENCY_SYMBOL", "$")
	viper.SetDefault("CURRENCY_DECIMALS", 2)
	viper.SetDefault("CURRENCY_LOCALE", "en-US")
	viper.SetDefault("CONFLICT_MAX_RETRIES", 3)
	viper.SetDefault("CONFLICT_RETRY_INTERVAL", "10ms")
	viper.SetDefault("RECURRING_MAX_CATCH_UP", 36)
	viper.SetDefault("RECURRING_WORKERS", 4)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		log.Printf("Warning: Invalid value for STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.AuthDisabled = viper.GetBool("AUTH_DISABLED")
	if cfg.AuthDisabled && cfg.IsProduction {
		log.Println("Warning: AUTH_DISABLED is set in production. All requests run as the anonymous user.")
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")
	cfg.CurrencySymbol = viper.GetString("CURRENCY_SYMBOL")
	cfg.CurrencyDecimals = viper.GetInt("CURRENCY_DECIMALS")
	cfg.CurrencyLocale = viper.GetString("CURRENCY_LOCALE")

	cfg.ConflictMaxRetries = viper.GetInt("CONFLICT_MAX_RETRIES")
	if cfg.ConflictMaxRetries < 0 {
		cfg.ConflictMaxRetries = 0
	}
	retryInterval, err := time.ParseDuration(viper.GetString("CONFLICT_RETRY_INTERVAL"))
	if err != nil || retryInterval <= 0 {
		retryInterval = 10 * time.Millisecond
		log.Printf("Warning: Invalid value for CONFLICT_RETRY_INTERVAL. Defaulting to %s.\n", retryInterval)
	}
	cfg.ConflictRetryInterval = retryInterval

	cfg.RecurringMaxCatchUp = viper.GetInt("RECURRING_MAX_CATCH_UP")
	if cfg.RecurringMaxCatchUp <= 0 {
		cfg.RecurringMaxCatchUp = 36
	}
	cfg.RecurringWorkers = viper.GetInt("RECURRING_WORKERS")
	if cfg.RecurringWorkers <= 0 {
		cfg.RecurringWorkers = 1
	}

	return cfg, nil
}

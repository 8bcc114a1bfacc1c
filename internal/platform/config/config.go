package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string
	DatabaseURL   string
	EnableDBCheck bool
	RunMigrations bool
	SeedFile      string
	JWTSecret     string

	// Pricing and conversion
	BaseCurrency             string
	CommercialMargin         decimal.Decimal
	MaxDiscount              int
	DiscountStep             int
	DenominationTolerance    decimal.Decimal
	ConvergenceMaxIterations int

	// Ledger and transfers
	LedgerConflictRetries       int
	TransferRejectRefundsSender bool

	// Official rate source
	RateAPIURL     string
	RateAPITimeout time.Duration
	RateCacheTTL   time.Duration
	RedisURL       string

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("SEED_FILE", "")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("BASE_CURRENCY", "EUR")
	viper.SetDefault("COMMERCIAL_MARGIN", "1.4")
	viper.SetDefault("MAX_DISCOUNT", 95)
	viper.SetDefault("DISCOUNT_STEP", 5)
	viper.SetDefault("DENOMINATION_TOLERANCE", "0.02")
	viper.SetDefault("CONVERGENCE_MAX_ITERATIONS", 50)
	viper.SetDefault("LEDGER_CONFLICT_RETRIES", 3)
	viper.SetDefault("TRANSFER_REJECT_REFUNDS_SENDER", true)
	viper.SetDefault("RATE_API_URL", "https://api.frankfurter.dev/v1")
	viper.SetDefault("RATE_API_TIMEOUT", "5s")
	viper.SetDefault("RATE_CACHE_TTL", "60s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                        viper.GetString("PORT"),
		IsProduction:                viper.GetBool("IS_PRODUCTION"),
		StorageDriver:               strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		DatabaseURL:                 viper.GetString("PGSQL_URL"),
		EnableDBCheck:               viper.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:               viper.GetBool("RUN_MIGRATIONS"),
		SeedFile:                    viper.GetString("SEED_FILE"),
		JWTSecret:                   viper.GetString("JWT_SECRET"),
		BaseCurrency:                strings.ToUpper(viper.GetString("BASE_CURRENCY")),
		MaxDiscount:                 viper.GetInt("MAX_DISCOUNT"),
		DiscountStep:                viper.GetInt("DISCOUNT_STEP"),
		ConvergenceMaxIterations:    viper.GetInt("CONVERGENCE_MAX_ITERATIONS"),
		LedgerConflictRetries:       viper.GetInt("LEDGER_CONFLICT_RETRIES"),
		TransferRejectRefundsSender: viper.GetBool("TRANSFER_REJECT_REFUNDS_SENDER"),
		RateAPIURL:                  strings.TrimRight(viper.GetString("RATE_API_URL"), "/"),
		RedisURL:                    viper.GetString("REDIS_URL"),
		RateLimit:                   viper.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		if cfg.SeedFile == "" {
			log.Println("Warning: SEED_FILE not set. The in-memory store starts empty.")
		}
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER '%s'. Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.CommercialMargin = decimalOr("COMMERCIAL_MARGIN", decimal.RequireFromString("1.4"))
	if !cfg.CommercialMargin.GreaterThan(decimal.NewFromInt(1)) {
		log.Printf("Warning: COMMERCIAL_MARGIN must be greater than 1 ('%s'). Defaulting to 1.4.\n", cfg.CommercialMargin)
		cfg.CommercialMargin = decimal.RequireFromString("1.4")
	}
	if cfg.MaxDiscount < 0 || cfg.MaxDiscount >= 100 {
		log.Printf("Warning: MAX_DISCOUNT must be within [0, 100) (%d). Defaulting to 95.\n", cfg.MaxDiscount)
		cfg.MaxDiscount = 95
	}
	if cfg.DiscountStep <= 0 {
		cfg.DiscountStep = 5
	}
	cfg.DenominationTolerance = decimalOr("DENOMINATION_TOLERANCE", decimal.RequireFromString("0.02"))
	if cfg.DenominationTolerance.IsNegative() {
		log.Println("Warning: DENOMINATION_TOLERANCE cannot be negative. Defaulting to 0.02.")
		cfg.DenominationTolerance = decimal.RequireFromString("0.02")
	}
	if cfg.ConvergenceMaxIterations <= 0 {
		cfg.ConvergenceMaxIterations = 50
	}
	if cfg.LedgerConflictRetries < 0 {
		cfg.LedgerConflictRetries = 0
	}

	cfg.RateAPITimeout = durationOr("RATE_API_TIMEOUT", 5*time.Second)
	cfg.RateCacheTTL = durationOr("RATE_CACHE_TTL", time.Minute)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func decimalOr(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

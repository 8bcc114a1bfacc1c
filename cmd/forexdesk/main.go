package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/SscSPs/forexdesk/internal/adapters/notify"
	"github.com/SscSPs/forexdesk/internal/adapters/ratesource"
	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/ports"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/core/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/SscSPs/forexdesk/internal/handlers"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/SscSPs/forexdesk/internal/platform/config"
	"github.com/SscSPs/forexdesk/internal/platform/metrics"
	"github.com/SscSPs/forexdesk/internal/repositories/database/memory"
	"github.com/SscSPs/forexdesk/internal/repositories/database/pgsql"
	"github.com/SscSPs/forexdesk/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Forex Desk API
// @version 1.0
// @description Currency exchange desks: denomination-aware conversion, sessions, reconciliation and transfers.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ctx := middleware.WithLogger(context.Background(), logger)

	repos, cleanup, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	m := metrics.New()
	provider, err := setupRateProvider(ctx, cfg, m, logger)
	if err != nil {
		logger.Error("Failed to initialize rate source", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterValidators(cfg.MaxDiscount, cfg.DiscountStep); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := services.NewServiceContainer(cfg, repos, provider,
		services.WithNotifier(notify.NewLogNotifier(m)),
		services.WithMetrics(m),
	)
	checkBaseCurrency(ctx, cfg, container.Currency, logger)

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware (logging, metrics, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), m.Middleware(), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, m.Handler(), rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		store := memory.NewStore()
		if cfg.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.SeedFile); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
			logger.Info("Seed file loaded", slog.String("path", cfg.SeedFile))
		}
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
			dbPool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}
	return pgsql.NewRepositoryProvider(dbPool, cfg.LedgerConflictRetries), dbPool.Close, nil
}

func setupRateProvider(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (ports.RateProvider, error) {
	client := ratesource.NewClient(cfg.RateAPIURL, cfg.RateAPITimeout)

	var cache ratesource.Cache = ratesource.NewMemoryCache()
	if cfg.RedisURL != "" {
		redisClient, err := ratesource.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		cache = ratesource.NewRedisCache(redisClient)
		logger.Info("Rate cache backed by redis")
	}
	return ratesource.NewProvider(client, cache, cfg.RateCacheTTL, m), nil
}

// checkBaseCurrency warns when the catalog disagrees with the configured base currency.
func checkBaseCurrency(ctx context.Context, cfg *config.Config, currencies portssvc.CurrencyReaderSvc, logger *slog.Logger) {
	base, err := currencies.GetBaseCurrency(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("No base currency in the catalog. Rates cannot be quoted until one is created.")
	case err != nil:
		logger.Error("Failed to read base currency", slog.String("error", err.Error()))
	case base.CurrencyCode != cfg.BaseCurrency:
		logger.Warn("Catalog base currency differs from configuration",
			slog.String("catalog", base.CurrencyCode), slog.String("configured", cfg.BaseCurrency))
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/financo/internal/adapter/http"
	"github.com/iho/financo/internal/adapter/http/handler"
	"github.com/iho/financo/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/financo/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/financo/internal/adapter/repository/redis"
	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/infrastructure/auth"
	"github.com/iho/financo/internal/infrastructure/config"
	"github.com/iho/financo/internal/infrastructure/logger"
	"github.com/iho/financo/internal/infrastructure/metrics"
	"github.com/iho/financo/internal/infrastructure/postgres"
	"github.com/iho/financo/internal/infrastructure/redis"
	"github.com/iho/financo/internal/usecase"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	rates, err := cfg.Rates()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid conversion rates")
	}

	ctx := context.Background()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	recordRepo := postgresRepo.NewRecordRepository(pool)
	investmentRepo := postgresRepo.NewInvestmentRepository(pool)
	reminderRepo := postgresRepo.NewReminderRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	clock := domain.SystemClock{}

	// Use cases
	salaryUC := usecase.NewSalaryUseCase(recordRepo, idGen, clock, rates)
	expenseUC := usecase.NewExpenseUseCase(recordRepo, idGen, clock, rates)
	fundUC := usecase.NewFundUseCase(txManager, recordRepo, idGen, clock, rates, cache, retrier, m)
	investmentUC := usecase.NewInvestmentUseCase(txManager, investmentRepo, recordRepo, idGen, clock, rates, retrier, m)
	reportUC := usecase.NewReportUseCase(recordRepo, clock, rates)
	reminderUC := usecase.NewReminderUseCase(reminderRepo, idGen, clock)
	userUC := usecase.NewUserUseCase(userRepo, idGen, clock)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
		}
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.Reset()
		}
	}()

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:       handler.NewAuthHandler(userUC, jwtManager),
		SalaryHandler:     handler.NewSalaryHandler(salaryUC),
		ExpenseHandler:    handler.NewExpenseHandler(expenseUC),
		FundHandler:       handler.NewFundHandler(fundUC),
		InvestmentHandler: handler.NewInvestmentHandler(investmentUC),
		ReportHandler:     handler.NewReportHandler(reportUC),
		ReminderHandler:   handler.NewReminderHandler(reminderUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		JWTManager:        jwtManager,
		IdempotencyStore:  idempotencyStore,
		MetricsMiddleware: middleware.NewMetricsMiddleware(m),
		LoggingMiddleware: middleware.NewLoggingMiddleware(log.Logger),
		RateLimiter:       rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

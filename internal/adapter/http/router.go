package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/financo/internal/adapter/http/handler"
	"github.com/iho/financo/internal/adapter/http/middleware"
	"github.com/iho/financo/internal/infrastructure/auth"
	"github.com/iho/financo/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler       *handler.AuthHandler
	SalaryHandler     *handler.SalaryHandler
	ExpenseHandler    *handler.ExpenseHandler
	FundHandler       *handler.FundHandler
	InvestmentHandler *handler.InvestmentHandler
	ReportHandler     *handler.ReportHandler
	ReminderHandler   *handler.ReminderHandler
	HealthHandler     *handler.HealthHandler
	JWTManager        *auth.JWTManager
	IdempotencyStore  usecase.IdempotencyStore
	MetricsMiddleware *middleware.MetricsMiddleware
	LoggingMiddleware *middleware.LoggingMiddleware
	RateLimiter       *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Wrap)
	}
	if cfg.MetricsMiddleware != nil {
		r.Use(cfg.MetricsMiddleware.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Everything else requires a valid token.
		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", cfg.AuthHandler.ListUsers)
				r.Get("/{id}", cfg.AuthHandler.GetUser)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Post("/", cfg.SalaryHandler.Create)
				r.Get("/", cfg.SalaryHandler.List)
				r.Get("/balance", cfg.SalaryHandler.Balance)
				r.Get("/summary", cfg.SalaryHandler.Summary)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", cfg.ExpenseHandler.Create)
				r.Get("/", cfg.ExpenseHandler.List)
				r.Get("/monthly", cfg.ExpenseHandler.Monthly)
				r.Get("/summary", cfg.ExpenseHandler.Summary)
				r.Put("/{id}", cfg.ExpenseHandler.Update)
				r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			})

			r.Route("/funds/{type}", func(r chi.Router) {
				r.Get("/", cfg.FundHandler.Summary)
				r.Get("/history", cfg.FundHandler.History)
				r.Post("/entries", cfg.FundHandler.CreateEntry)
				r.Post("/entries/from-salary", cfg.FundHandler.CreateEntryFromSalary)
				r.Delete("/entries/{id}", cfg.FundHandler.DeleteEntry)
				r.Post("/expenses", cfg.FundHandler.CreateExpense)
				r.Delete("/expenses/{id}", cfg.FundHandler.DeleteExpense)
			})

			r.Route("/investments", func(r chi.Router) {
				r.Post("/", cfg.InvestmentHandler.Create)
				r.Get("/", cfg.InvestmentHandler.List)
				r.Post("/from-salary", cfg.InvestmentHandler.CreateFromSalary)
				r.Get("/summary", cfg.InvestmentHandler.Summary)
				r.Post("/entries", cfg.InvestmentHandler.CreateEntry)
				r.Get("/entries/{year}", cfg.InvestmentHandler.AnnualEntries)

				r.Route("/returns", func(r chi.Router) {
					r.Put("/", cfg.InvestmentHandler.UpsertReturn)
					r.Get("/", cfg.InvestmentHandler.ListReturns)
					r.Delete("/{year}", cfg.InvestmentHandler.DeleteReturn)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.InvestmentHandler.Get)
					r.Put("/", cfg.InvestmentHandler.Update)
					r.Delete("/", cfg.InvestmentHandler.Delete)
					r.Post("/transactions", cfg.InvestmentHandler.CreateTransaction)
					r.Get("/transactions", cfg.InvestmentHandler.ListTransactions)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/dashboard", cfg.ReportHandler.Dashboard)
				r.Get("/monthly", cfg.ReportHandler.Monthly)
				r.Get("/annual/{year}", cfg.ReportHandler.Annual)
				r.Get("/annual/{year}/users", cfg.ReportHandler.AnnualByUser)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Post("/", cfg.ReminderHandler.Create)
				r.Get("/", cfg.ReminderHandler.List)
				r.Get("/{id}", cfg.ReminderHandler.Get)
				r.Put("/{id}", cfg.ReminderHandler.Update)
				r.Delete("/{id}", cfg.ReminderHandler.Delete)
			})
		})
	})

	return r
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/adapter/http/handler"
	"github.com/iho/glkernel/internal/adapter/http/middleware"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	DerivationHandler *handler.DerivationHandler
	MappingHandler    *handler.MappingHandler
	PeriodHandler     *handler.PeriodHandler
	JournalHandler    *handler.JournalHandler
	CoAHandler        *handler.CoAHandler
	ReportHandler     *handler.ReportHandler
	NumberingHandler  *handler.NumberingHandler
	HealthHandler     *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		// Derivation
		r.Post("/events/{eventId}/derive", cfg.DerivationHandler.Derive)
		r.Post("/derivations/preview", cfg.DerivationHandler.Preview)

		// Mapping versions
		r.Get("/mappings/{eventType}", cfg.MappingHandler.Current)
		r.Put("/mappings/{eventType}", cfg.MappingHandler.Publish)

		// Ledgers
		r.Route("/ledgers/{ledgerId}", func(r chi.Router) {
			r.Get("/periods", cfg.PeriodHandler.List)
			r.Post("/periods", cfg.PeriodHandler.Open)
			r.Post("/periods/{periodKey}/close", cfg.PeriodHandler.Close)
			r.Get("/periods/{periodKey}/posting-check", cfg.PeriodHandler.CheckPosting)

			r.Post("/reclass", cfg.JournalHandler.Reclass)
			r.Post("/allocations", cfg.JournalHandler.Allocation)
			r.Post("/accruals", cfg.JournalHandler.Accrual)

			r.Get("/trial-balance", cfg.ReportHandler.TrialBalance)
		})

		// Companies
		r.Route("/companies/{companyId}", func(r chi.Router) {
			r.Put("/coa", cfg.CoAHandler.Publish)
			r.Get("/coa/validate", cfg.CoAHandler.Validate)
			r.Get("/coa/subtree", cfg.CoAHandler.Subtree)
			r.Get("/coa/accounts/{accountId}/ancestors", cfg.CoAHandler.Ancestors)

			r.Post("/dimensions/validate", cfg.NumberingHandler.ValidateDimensions)
		})

		// Document numbering
		r.Post("/sequences/{sequenceId}/allocate", cfg.NumberingHandler.Allocate)
	})

	return r
}

package api

import (
	"context"
	"library-lending/internal/api/handler"
	mw "library-lending/internal/api/middleware"
	"library-lending/internal/config"
	"library-lending/internal/domain/bookcopy"
	"library-lending/internal/domain/borrowing"
	"library-lending/internal/domain/customer"
	"library-lending/internal/domain/fine"
	"log/slog"
	"net/http"
	"time"

	_ "library-lending/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services groups the domain entry points the HTTP layer depends on.
type Services struct {
	Borrowings borrowing.Manager
	Fines      fine.Engine
	Copies     bookcopy.Tracker
	Customers  customer.CustomerService
}

// SetupRouter builds the HTTP surface. ctx bounds background work owned by
// middleware such as the rate limiter's idle sweep.
func SetupRouter(ctx context.Context, services Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		setupBorrowingRoutes(r, services.Borrowings, logger)
		setupFineRoutes(r, services.Fines, logger)
		setupCopyRoutes(r, services.Copies, logger)
		setupCustomerRoutes(r, services.Customers, logger)
	})

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupBorrowingRoutes(r chi.Router, manager borrowing.Manager, logger *slog.Logger) {
	h := handler.NewBorrowingHandler(manager, logger)

	r.Route("/borrowings", func(r chi.Router) {
		r.Post("/", h.OpenBorrowing)
		r.Get("/", h.ListBorrowings)
		r.Get("/current", h.ListCurrentBorrowings)
		r.Route("/{borrowingID}", func(r chi.Router) {
			r.Get("/", h.GetBorrowing)
			r.Put("/return", h.CloseBorrowing)
		})
	})
}

func setupFineRoutes(r chi.Router, engine fine.Engine, logger *slog.Logger) {
	h := handler.NewFineHandler(engine, logger)

	r.Route("/fines", func(r chi.Router) {
		r.Get("/", h.ListFines)
		r.Get("/{fineID}", h.GetFine)
		r.Put("/{borrowingID}/payment", h.MarkFinePaid)
	})
}

func setupCopyRoutes(r chi.Router, tracker bookcopy.Tracker, logger *slog.Logger) {
	h := handler.NewCopyHandler(tracker, logger)

	r.Route("/copies", func(r chi.Router) {
		r.Get("/{copyID}", h.GetCopy)
		r.Get("/barcode/{barcode}", h.GetCopyByBarcode)
	})
}

func setupCustomerRoutes(r chi.Router, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.FindCustomerByEmail)
		r.Get("/{customerID}", h.GetCustomer)
	})
}

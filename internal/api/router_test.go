package api

import (
	"bytes"
	"context"
	"library-lending/internal/config"
	"library-lending/internal/domain/customer"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomerService struct{}

func (stubCustomerService) GetCustomer(context.Context, int64) (*customer.Customer, error) {
	return &customer.Customer{ID: 1}, nil
}

func (stubCustomerService) GetCustomerByEmail(context.Context, string) (*customer.Customer, error) {
	return &customer.Customer{ID: 1}, nil
}

func newTestRouter(t *testing.T, auth config.AuthConfig) *chi.Mux {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Auth:      auth,
			RateLimit: config.RateLimitConfig{Enabled: false},
		},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return SetupRouter(ctx, Services{Customers: stubCustomerService{}}, cfg, logger)
}

func TestSetupRouterHealth(t *testing.T) {
	router := newTestRouter(t, config.AuthConfig{Enabled: true, JWTSecret: "secret"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSetupRouterRequiresAuthOnLendingRoutes(t *testing.T) {
	router := newTestRouter(t, config.AuthConfig{Enabled: true, JWTSecret: "secret"})

	for _, path := range []string{"/borrowings", "/borrowings/current", "/fines", "/copies/1", "/customers/1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSetupRouterCustomerRouteWithoutAuth(t *testing.T) {
	router := newTestRouter(t, config.AuthConfig{Enabled: false})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupRouterSwaggerRedirect(t *testing.T) {
	router := newTestRouter(t, config.AuthConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger", nil))

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/swagger/index.html", rec.Header().Get("Location"))
}

func TestSetupRouterRoutes(t *testing.T) {
	router := newTestRouter(t, config.AuthConfig{})

	routes := map[string]bool{}
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, want := range []string{
		"POST /borrowings/",
		"GET /borrowings/",
		"GET /borrowings/current",
		"GET /borrowings/{borrowingID}/",
		"PUT /borrowings/{borrowingID}/return",
		"GET /fines/",
		"GET /fines/{fineID}",
		"PUT /fines/{borrowingID}/payment",
		"GET /copies/{copyID}",
		"GET /copies/barcode/{barcode}",
		"GET /customers/",
		"GET /customers/{customerID}",
		"GET /health",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

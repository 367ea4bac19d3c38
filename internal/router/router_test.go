package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/villains-api/internal/config"
	"github.com/deppfellow/villains-api/internal/errs"
	"github.com/deppfellow/villains-api/internal/handler"
	"github.com/deppfellow/villains-api/internal/middleware"
	"github.com/deppfellow/villains-api/internal/model"
	"github.com/deppfellow/villains-api/internal/server"
	"github.com/deppfellow/villains-api/internal/service"
	"github.com/deppfellow/villains-api/internal/testing/mocks"
)

func newTestRouter(t *testing.T, mutate func(*config.Config)) (*echo.Echo, *mocks.VillainStore) {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	if mutate != nil {
		mutate(cfg)
	}
	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	store := &mocks.VillainStore{}
	h := &handler.Handlers{
		Health:   handler.NewHealthHandler(s),
		OpenAPI:  handler.NewOpenAPIHandler(s),
		Villains: handler.NewVillainHandler(s, service.NewVillainService(store, nil)),
	}

	return NewRouter(s, h, middleware.NewMiddlewares(s, service.NewAuthService(s))), store
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_VillainRoutes(t *testing.T) {
	e, store := newTestRouter(t, nil)
	scar := model.Villain{Name: "Scar", Movie: "The Lion King", Slug: "scar"}
	store.On("FindAll", mock.Anything).Return([]model.Villain{scar}, nil)
	store.On("FindBySlug", mock.Anything, "scar").Return(scar, true, nil)
	store.On("Create", mock.Anything, scar).Return(&model.VillainRecord{Villain: scar}, nil)

	rec := serve(e, http.MethodGet, "/villains", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/villains/scar", "").Code)
	assert.Equal(t, http.StatusCreated,
		serve(e, http.MethodPost, "/villains", `{"name":"Scar","movie":"The Lion King","slug":"scar"}`).Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := serve(e, http.MethodGet, "/heroes", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Route not found", env.Message)
}

func TestRouter_StatusAndMetrics(t *testing.T) {
	e, store := newTestRouter(t, nil)
	store.On("FindAll", mock.Anything).Return([]model.Villain{}, nil)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/status", "").Code)

	serve(e, http.MethodGet, "/villains", "")
	body := serve(e, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, body, `villains_api_http_requests_total{method="GET",path="/villains",status="200"} 1`)
}

func TestRouter_ProtectedWrites(t *testing.T) {
	e, store := newTestRouter(t, func(c *config.Config) {
		c.Auth.ProtectWrites = true
		c.Auth.SecretKey = "sk_test_123"
	})
	store.On("FindAll", mock.Anything).Return([]model.Villain{}, nil)

	rec := serve(e, http.MethodPost, "/villains", `{"name":"a","movie":"b","slug":"c"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/villains", "").Code)
}

func TestRouter_RateLimit(t *testing.T) {
	e, store := newTestRouter(t, func(c *config.Config) { c.Server.RateLimit = 1 })
	store.On("FindAll", mock.Anything).Return([]model.Villain{}, nil)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/villains", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodGet, "/villains", "").Code)
}

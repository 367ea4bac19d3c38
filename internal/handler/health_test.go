package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		enabled    []string
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "all healthy",
			checks:     map[string]CheckFunc{"database": ok, "redis": ok},
			enabled:    []string{"database", "redis"},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"database": "healthy", "redis": "healthy"},
		},
		{
			name:       "database down",
			checks:     map[string]CheckFunc{"database": down, "redis": ok},
			enabled:    []string{"database", "redis"},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"database": "unhealthy", "redis": "healthy"},
		},
		{
			name:       "disabled check is skipped",
			checks:     map[string]CheckFunc{"database": ok, "redis": down},
			enabled:    []string{"database"},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"database": "healthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			s.Config.Observability.HealthChecks.Checks = tt.enabled
			h := &HealthHandler{Handler: NewHandler(s), checks: tt.checks}

			e := newTestEcho(s)
			e.GET("/status", h.CheckHealth)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "test", body.Environment)
			require.Len(t, body.Checks, len(tt.wantChecks))
			for name, status := range tt.wantChecks {
				assert.Equal(t, status, body.Checks[name].Status, name)
			}
		})
	}
}

func TestNewHealthHandler_NoDependencies(t *testing.T) {
	assert.Empty(t, NewHealthHandler(newTestServer()).checks)
}

func TestServeOpenAPIUI(t *testing.T) {
	s := newTestServer()
	page := filepath.Join(t.TempDir(), "openapi.html")
	require.NoError(t, os.WriteFile(page, []byte("<html>docs</html>"), 0o600))

	h := NewOpenAPIHandler(s)
	h.uiPath = page
	e := newTestEcho(s)
	e.GET("/docs", h.ServeOpenAPIUI)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "<html>docs</html>", rec.Body.String())

	h.uiPath = filepath.Join(t.TempDir(), "missing.html")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicemart-backend/internal/config"
	"spicemart-backend/pkg/auth"
)

func testConfig() config.Config {
	return config.Config{
		CORSOrigins:   []string{"http://localhost:3000"},
		AdminEmail:    "admin@example.com",
		AdminPassword: "hunter2pass",
	}
}

func testHandlers() Handlers {
	return Handlers{
		Users:    NewUserHandler(nil),
		Cart:     NewCartHandler(nil),
		Products: NewProductHandler(nil, nil),
		Orders:   NewOrderHandler(nil),
	}
}

func TestNewRouterAbsoluteMediaBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.MediaDir = "media"
	cfg.MediaBaseURL = "https://cdn.example.com/media"

	assert.NotPanics(t, func() {
		NewRouter(cfg, auth.New("test-secret"), testHandlers())
	})
}

func TestNewRouterMountsRelativeMediaPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.MediaDir = t.TempDir()
	cfg.MediaBaseURL = "/media"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.MediaDir, "pepper.jpg"), []byte("img"), 0o644))

	r := NewRouter(cfg, auth.New("test-secret"), testHandlers())

	req := httptest.NewRequest(http.MethodGet, "/media/pepper.jpg", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "img", w.Body.String())
}

func TestRouterGatesAdminRoutes(t *testing.T) {
	r := NewRouter(testConfig(), auth.New("test-secret"), testHandlers())

	req := httptest.NewRequest(http.MethodPost, "/order/list", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

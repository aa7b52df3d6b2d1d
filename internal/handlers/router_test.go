package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/metrics"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newTestRouter(t *testing.T, servePublic bool) http.Handler {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte(sampleCatalog), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "waffle.jpg"), []byte("jpeg"), 0o644))

	log := logger.NewWithWriter(io.Discard, "error")
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := service.NewProductService(repository.NewFileProductRepository(filepath.Join(dir, "products.json")))

	cfg := RouterConfig{
		Products:       NewProductHandler(svc, m, log),
		Health:         NewHealthHandler("test", log),
		Metrics:        m,
		Gatherer:       reg,
		RequestTimeout: 5 * time.Second,
		Logger:         log,
	}
	if servePublic {
		cfg.PublicDir = dir
	}
	return NewRouter(cfg)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(t, true)

	w := get(r, "/api/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, sampleCatalog, w.Body.String())

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)

	w = get(r, "/images/waffle.jpg")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())

	w = get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storefront_catalog_loads_total{outcome="success"} 1`)
}

func TestRouter_PublicDisabled(t *testing.T) {
	r := newTestRouter(t, false)

	assert.Equal(t, http.StatusNotFound, get(r, "/images/waffle.jpg").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/products").Code)
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnsupportedMethod(t *testing.T) {
	r := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

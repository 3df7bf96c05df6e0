package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minliz/udacimarket-backend/internal/products"
	"github.com/minliz/udacimarket-backend/pkg/config"
	"github.com/minliz/udacimarket-backend/pkg/metrics"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type stubProductService struct {
	rows []products.WithPlacement
	err  error
}

func (s *stubProductService) List(ctx context.Context, page pagination.Params) ([]products.WithPlacement, error) {
	return s.rows, s.err
}

func (s *stubProductService) Find(ctx context.Context, id int) (*products.ProductDTO, error) {
	return nil, s.err
}

func (s *stubProductService) Create(ctx context.Context, input products.CreateProductInput) (*products.CreateResult, error) {
	return &products.CreateResult{}, s.err
}

func (s *stubProductService) Update(ctx context.Context, id int, input products.UpdateProductInput) (*products.ProductDTO, error) {
	return nil, s.err
}

func testRouter(t *testing.T, cfg *config.Config, productService products.Service) http.Handler {
	t.Helper()
	return NewRouter(
		cfg, nil, nil, nil,
		metrics.NewHTTPMetrics(),
		nil, nil, nil,
		nil, nil, nil, nil,
		productService,
		nil, nil,
	)
}

func testModeConfig() *config.Config {
	cfg := &config.Config{}
	cfg.FeatureFlags.TestMode = true
	return cfg
}

func TestHealthRoutesArePublic(t *testing.T) {
	router := testRouter(t, testModeConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsRouteExposed(t *testing.T) {
	router := testRouter(t, testModeConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedRouteWithoutTokenIs401(t *testing.T) {
	router := testRouter(t, testModeConfig(), &stubProductService{})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestSessionBypassWithoutSessionStoreIs401(t *testing.T) {
	// The bypass flag must not reach through a nil session manager when
	// the login flow is disabled; the request just fails authentication.
	cfg := &config.Config{}
	cfg.FeatureFlags.SessionBypass = true
	router := testRouter(t, cfg, &stubProductService{})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestProtectedRouteWithTestPermission(t *testing.T) {
	svc := &stubProductService{rows: []products.WithPlacement{{ID: 1, Name: "Eggs"}}}
	router := testRouter(t, testModeConfig(), svc)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Test-Permission", "get:product")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedRouteWithWrongPermissionIs403(t *testing.T) {
	svc := &stubProductService{rows: []products.WithPlacement{{ID: 1, Name: "Eggs"}}}
	router := testRouter(t, testModeConfig(), svc)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Test-Permission", "get:aisle")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/handler"
	"github.com/saralbooks/billing-api/internal/infra/cache"
	"github.com/saralbooks/billing-api/internal/infra/observability"
	"github.com/saralbooks/billing-api/internal/infra/resilience"
	"github.com/saralbooks/billing-api/internal/port"
	"github.com/saralbooks/billing-api/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// stubStore serves canned rows for the report routes. Unimplemented
// BillingStore methods panic if reached; report builds never reach them.
type stubStore struct {
	port.BillingStore

	invoices []domain.Invoice
	profile  *domain.BusinessProfile
}

func (s *stubStore) ListInvoices(_ context.Context, _ string, _ domain.Period) ([]domain.Invoice, error) {
	return s.invoices, nil
}

func (s *stubStore) ListPurchases(_ context.Context, _ string, _ domain.Period) ([]domain.Purchase, error) {
	return nil, nil
}

func (s *stubStore) ListReturns(_ context.Context, _ string, _ domain.Period) ([]domain.ReturnDoc, error) {
	return nil, nil
}

func (s *stubStore) ListProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubStore) GetBusinessProfile(_ context.Context, businessID string) (*domain.BusinessProfile, error) {
	if s.profile == nil {
		return nil, &domain.ErrNotFound{Resource: "business_profile", ID: businessID}
	}
	return s.profile, nil
}

func newTestRouter(store *stubStore, opts handler.Options) http.Handler {
	metrics := observability.NewMetrics()
	logger := zap.NewNop()
	reportSvc := service.NewReportService(
		store,
		cache.New[*domain.BusinessProfile](time.Minute),
		resilience.NewBulkhead(4),
		metrics,
		logger,
	)
	billingSvc := service.NewBillingService(store, metrics, logger)
	return handler.NewRouter(reportSvc, billingSvc, metrics, logger, opts)
}

func TestHealthz(t *testing.T) {
	router := handler.NewRouter(nil, nil, observability.NewMetrics(), zap.NewNop(), handler.Options{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := handler.NewRouter(nil, nil, observability.NewMetrics(), zap.NewNop(), handler.Options{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := handler.NewRouter(nil, nil, observability.NewMetrics(), zap.NewNop(), handler.Options{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestGSTR3BEndpoint(t *testing.T) {
	router := newTestRouter(&stubStore{
		profile: &domain.BusinessProfile{ID: "biz-1", GSTIN: "27AAAAA0000A1Z5", State: "Maharashtra"},
		invoices: []domain.Invoice{
			{ID: "i1", IssueDate: "2025-04-10", SupplyPlace: "Maharashtra", Subtotal: 1000, TaxTotal: 180, TotalAmount: 1180, Status: domain.InvoiceStatusFinalized},
		},
	}, handler.Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/businesses/biz-1/reports/gstr3b?from=2025-04-01&to=2025-04-30", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got domain.GSTR3BReport
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Outward.CentralTax != 90 || got.Outward.StateTax != 90 {
		t.Errorf("unexpected split: central=%v state=%v", got.Outward.CentralTax, got.Outward.StateTax)
	}
	if got.GSTIN != "27AAAAA0000A1Z5" {
		t.Errorf("expected GSTIN, got %q", got.GSTIN)
	}
}

func TestSalesPerformanceEndpoint_BadGroupBy(t *testing.T) {
	router := newTestRouter(&stubStore{}, handler.Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/businesses/biz-1/reports/sales-performance?group_by=region", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGSTR1Endpoint_ProfileNotFound(t *testing.T) {
	router := newTestRouter(&stubStore{}, handler.Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/businesses/missing/reports/gstr1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	router := newTestRouter(&stubStore{
		profile: &domain.BusinessProfile{ID: "biz-1", State: "Maharashtra"},
	}, handler.Options{JWTSecret: secret})

	// No token
	req := httptest.NewRequest(http.MethodGet, "/v1/businesses/biz-1/reports/gstr1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	// Token for another business
	req = httptest.NewRequest(http.MethodGet, "/v1/businesses/biz-1/reports/gstr1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "biz-2"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong business, got %d", rec.Code)
	}

	// Matching token
	req = httptest.NewRequest(http.MethodGet, "/v1/businesses/biz-1/reports/gstr1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "biz-1"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with matching token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDevSeedDisabledByDefault(t *testing.T) {
	router := newTestRouter(&stubStore{}, handler.Options{})

	req := httptest.NewRequest(http.MethodPost, "/v1/dev/seed", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected dev routes unmounted, got %d", rec.Code)
	}
}

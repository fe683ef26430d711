package handler

import (
	"net/http"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/infra/observability"
	"github.com/saralbooks/billing-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Options tunes the optional router surfaces.
type Options struct {
	// JWTSecret enables the auth middleware on the /v1/businesses
	// routes when non-empty. Empty leaves them open (local dev).
	JWTSecret string
	// DevTools mounts the /v1/dev seeding endpoints.
	DevTools bool
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(reportSvc *service.ReportService, billingSvc *service.BillingService, metrics *observability.Metrics, logger *zap.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(billingSvc, logger))
	r.Get("/readyz", readyzHandler())
	if metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	}

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		r.Route("/businesses/{businessId}", func(r chi.Router) {
			if opts.JWTSecret != "" {
				r.Use(JWTAuthMiddleware(opts.JWTSecret, logger))
			}

			// =============================================
			// Reports
			// =============================================
			r.Get("/reports/gstr1", gstr1Handler(reportSvc, logger))
			r.Get("/reports/gstr3b", gstr3bHandler(reportSvc, logger))
			r.Get("/reports/profit-loss", profitLossHandler(reportSvc, logger))
			r.Get("/reports/sales-performance", salesPerformanceHandler(reportSvc, logger))
			r.Get("/reports/stock-summary", stockSummaryHandler(reportSvc, logger))

			// =============================================
			// Invoices
			// =============================================
			r.Get("/invoices", listInvoicesHandler(billingSvc, logger))
			r.Post("/invoices", createInvoiceHandler(billingSvc, logger))
			r.Get("/invoices/{invoiceId}", getInvoiceHandler(billingSvc, logger))
			r.Put("/invoices/{invoiceId}/status", updateInvoiceStatusHandler(billingSvc, logger))

			// =============================================
			// Purchases
			// =============================================
			r.Get("/purchases", listPurchasesHandler(billingSvc, logger))
			r.Post("/purchases", createPurchaseHandler(billingSvc, logger))
			r.Get("/purchases/{purchaseId}", getPurchaseHandler(billingSvc, logger))

			// =============================================
			// Returns
			// =============================================
			r.Get("/returns", listReturnsHandler(billingSvc, logger))
			r.Post("/returns", createReturnHandler(billingSvc, logger))
			r.Get("/returns/{returnId}", getReturnHandler(billingSvc, logger))

			// =============================================
			// Products & stock
			// =============================================
			r.Get("/products", listProductsHandler(billingSvc, logger))
			r.Post("/products", createProductHandler(billingSvc, logger))
			r.Get("/products/{productId}", getProductHandler(billingSvc, logger))
			r.Put("/products/{productId}/stock", adjustStockHandler(billingSvc, logger))

			// =============================================
			// Parties
			// =============================================
			r.Get("/parties", listPartiesHandler(billingSvc, logger))
			r.Post("/parties", createPartyHandler(billingSvc, logger))
			r.Get("/parties/{partyId}", getPartyHandler(billingSvc, logger))

			// =============================================
			// Payments & expenses
			// =============================================
			r.Get("/payments", listPaymentsHandler(billingSvc, logger))
			r.Post("/payments", recordPaymentHandler(billingSvc, logger))
			r.Get("/expenses", listExpensesHandler(billingSvc, logger))
			r.Post("/expenses", recordExpenseHandler(billingSvc, logger))
		})

		// =============================================
		// Metrics snapshot
		// =============================================
		r.Get("/metrics/reports", reportMetricsHandler(reportSvc, logger))

		// =============================================
		// Dev Tools (testing helpers)
		// =============================================
		if opts.DevTools {
			r.Post("/dev/seed", devSeedHandler(billingSvc, logger))
		}
	})

	return r
}

// healthzHandler pings the data backend with a cheap query and reports
// per-dependency health.
func healthzHandler(billingSvc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "billing-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if billingSvc != nil {
			start := time.Now()
			_, err := billingSvc.ListProducts(ctx, "health-check")
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func reportMetricsHandler(reportSvc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reportSvc == nil {
			writeError(w, http.StatusServiceUnavailable, "report service unavailable")
			return
		}
		writeJSON(w, http.StatusOK, reportSvc.MetricsSnapshot())
	}
}

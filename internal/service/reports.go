// Package service provides the business logic layer (use cases).
// ReportService builds the GST and profitability reports; BillingService
// handles the document and catalog operations that feed them.
package service

import (
	"context"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/infra/observability"
	"github.com/saralbooks/billing-api/internal/infra/resilience"
	"github.com/saralbooks/billing-api/internal/port"
	"github.com/saralbooks/billing-api/internal/report"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var reportTracer = otel.Tracer("service/reports")

// ReportService orchestrates report builds: it fetches the document sets
// concurrently from the store, resolves the business profile through a
// TTL cache, and runs the pure aggregation functions on the result.
type ReportService struct {
	store        port.BillingStore
	profileCache port.Cache[*domain.BusinessProfile]
	bulkhead     *resilience.Bulkhead
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewReportService creates a report service. The bulkhead caps how many
// report builds run concurrently; each build fans out several queries.
func NewReportService(
	store port.BillingStore,
	profileCache port.Cache[*domain.BusinessProfile],
	bulkhead *resilience.Bulkhead,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		store:        store,
		profileCache: profileCache,
		bulkhead:     bulkhead,
		metrics:      metrics,
		logger:       logger,
	}
}

// documentSet holds the row sets a report build consumed.
type documentSet struct {
	invoices  []domain.Invoice
	purchases []domain.Purchase
	returns   []domain.ReturnDoc
	products  []domain.Product
}

// fetchNeeds flags which row sets a report needs so builds only query
// the tables they read.
type fetchNeeds struct {
	invoices  bool
	purchases bool
	returns   bool
	products  bool
}

// fetchDocuments loads the needed row sets concurrently. One failing
// query cancels the rest.
func (s *ReportService) fetchDocuments(ctx context.Context, businessID string, period domain.Period, needs fetchNeeds) (*documentSet, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.fetchDocuments")
	defer span.End()

	docs := &documentSet{}
	g, gctx := errgroup.WithContext(ctx)

	if needs.invoices {
		g.Go(func() error {
			rows, err := s.store.ListInvoices(gctx, businessID, period)
			if err != nil {
				return err
			}
			s.metrics.AddRowsFetched("invoices", len(rows))
			docs.invoices = rows
			return nil
		})
	}
	if needs.purchases {
		g.Go(func() error {
			rows, err := s.store.ListPurchases(gctx, businessID, period)
			if err != nil {
				return err
			}
			s.metrics.AddRowsFetched("purchases", len(rows))
			docs.purchases = rows
			return nil
		})
	}
	if needs.returns {
		g.Go(func() error {
			rows, err := s.store.ListReturns(gctx, businessID, period)
			if err != nil {
				return err
			}
			s.metrics.AddRowsFetched("returns", len(rows))
			docs.returns = rows
			return nil
		})
	}
	if needs.products {
		g.Go(func() error {
			rows, err := s.store.ListProducts(gctx, businessID)
			if err != nil {
				return err
			}
			s.metrics.AddRowsFetched("products", len(rows))
			docs.products = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.metrics.IncrExternalError("supabase")
		s.logger.Error("report fetch failed",
			zap.String("business_id", businessID),
			zap.Error(err),
		)
		return nil, err
	}
	return docs, nil
}

// businessProfile resolves the tenant profile through the TTL cache.
func (s *ReportService) businessProfile(ctx context.Context, businessID string) (*domain.BusinessProfile, error) {
	if profile, ok := s.profileCache.Get(businessID); ok {
		s.metrics.IncrCacheHit("profile")
		return profile, nil
	}
	s.metrics.IncrCacheMiss("profile")

	profile, err := s.store.GetBusinessProfile(ctx, businessID)
	if err != nil {
		return nil, err
	}
	s.profileCache.Set(businessID, profile)
	return profile, nil
}

// validatePeriod checks both bounds when present. An empty bound leaves
// that side of the range open.
func validatePeriod(p domain.Period) error {
	if p.From != "" {
		if _, err := time.Parse("2006-01-02", p.From); err != nil {
			return &domain.ErrValidation{Field: "from", Message: "invalid date, use YYYY-MM-DD"}
		}
	}
	if p.To != "" {
		if _, err := time.Parse("2006-01-02", p.To); err != nil {
			return &domain.ErrValidation{Field: "to", Message: "invalid date, use YYYY-MM-DD"}
		}
	}
	if p.From != "" && p.To != "" && p.From > p.To {
		return &domain.ErrValidation{Field: "from", Message: "must not be after 'to'"}
	}
	return nil
}

// BuildGSTR1 produces the outward-supplies return for a filing period,
// including the per-HSN roll-up.
func (s *ReportService) BuildGSTR1(ctx context.Context, businessID string, period domain.Period) (*domain.GSTR1Report, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.BuildGSTR1")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.bulkhead.Release()

	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.RecordReportDuration("gstr1", time.Since(start))
		s.metrics.IncrReport(outcome)
	}()

	profile, err := s.businessProfile(ctx, businessID)
	if err != nil {
		outcome = "error"
		return nil, err
	}

	docs, err := s.fetchDocuments(ctx, businessID, period, fetchNeeds{invoices: true, returns: true})
	if err != nil {
		outcome = "error"
		return nil, err
	}

	summary := report.AggregateTax(docs.invoices, nil, docs.returns, profile.State, period)

	return &domain.GSTR1Report{
		BusinessID:   businessID,
		GSTIN:        profile.GSTIN,
		Period:       period,
		Outward:      summary.Outward,
		InvoiceCount: len(report.QualifyingInvoices(docs.invoices, period)),
		HSNSummary:   report.SummarizeHSN(docs.invoices, period),
	}, nil
}

// BuildGSTR3B produces the monthly summary return: outward liability,
// inward input tax credit, and the net payable.
func (s *ReportService) BuildGSTR3B(ctx context.Context, businessID string, period domain.Period) (*domain.GSTR3BReport, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.BuildGSTR3B")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.bulkhead.Release()

	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.RecordReportDuration("gstr3b", time.Since(start))
		s.metrics.IncrReport(outcome)
	}()

	profile, err := s.businessProfile(ctx, businessID)
	if err != nil {
		outcome = "error"
		return nil, err
	}

	docs, err := s.fetchDocuments(ctx, businessID, period,
		fetchNeeds{invoices: true, purchases: true, returns: true})
	if err != nil {
		outcome = "error"
		return nil, err
	}

	return &domain.GSTR3BReport{
		BusinessID: businessID,
		GSTIN:      profile.GSTIN,
		Period:     period,
		TaxSummary: report.AggregateTax(docs.invoices, docs.purchases, docs.returns, profile.State, period),
	}, nil
}

// BuildProfitAndLoss produces per-invoice and aggregate gross profit for
// a period, net of sales returns.
func (s *ReportService) BuildProfitAndLoss(ctx context.Context, businessID string, period domain.Period) (*domain.ProfitAndLoss, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.BuildProfitAndLoss")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.bulkhead.Release()

	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.RecordReportDuration("profit_loss", time.Since(start))
		s.metrics.IncrReport(outcome)
	}()

	docs, err := s.fetchDocuments(ctx, businessID, period,
		fetchNeeds{invoices: true, returns: true, products: true})
	if err != nil {
		outcome = "error"
		return nil, err
	}

	pl := report.ComputeInvoiceProfitability(docs.invoices, docs.products, docs.returns, period)
	pl.BusinessID = businessID
	return &pl, nil
}

// BuildSalesPerformance ranks products (or categories) by profit over a
// period. groupBy defaults to product.
func (s *ReportService) BuildSalesPerformance(ctx context.Context, businessID string, period domain.Period, groupBy string) (*domain.SalesPerformanceReport, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.BuildSalesPerformance")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID), attribute.String("group_by", groupBy))

	if groupBy == "" {
		groupBy = report.GroupByProduct
	}
	if groupBy != report.GroupByProduct && groupBy != report.GroupByCategory {
		return nil, &domain.ErrValidation{Field: "group_by", Message: "must be 'product' or 'category'"}
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.bulkhead.Release()

	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.RecordReportDuration("sales_performance", time.Since(start))
		s.metrics.IncrReport(outcome)
	}()

	docs, err := s.fetchDocuments(ctx, businessID, period,
		fetchNeeds{invoices: true, products: true})
	if err != nil {
		outcome = "error"
		return nil, err
	}

	return &domain.SalesPerformanceReport{
		BusinessID: businessID,
		Period:     period,
		GroupBy:    groupBy,
		Groups:     report.RankProductProfitability(docs.invoices, docs.products, period, groupBy),
	}, nil
}

// BuildStockSummary values the current inventory at cost. The figure is
// a point-in-time snapshot and takes no period.
func (s *ReportService) BuildStockSummary(ctx context.Context, businessID string) (*domain.StockSummaryReport, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.BuildStockSummary")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.bulkhead.Release()

	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.RecordReportDuration("stock_summary", time.Since(start))
		s.metrics.IncrReport(outcome)
	}()

	docs, err := s.fetchDocuments(ctx, businessID, domain.Period{}, fetchNeeds{products: true})
	if err != nil {
		outcome = "error"
		return nil, err
	}

	summary := report.BuildStockSummary(businessID, docs.products)
	return &summary, nil
}

// MetricsSnapshot exposes the report counters for the metrics endpoint.
func (s *ReportService) MetricsSnapshot() *domain.ReportMetrics {
	return s.metrics.GetReportSnapshot()
}

package observability

import (
	"time"

	"github.com/saralbooks/billing-api/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the billing API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can serve it.
	Registry *prometheus.Registry

	reportDuration *prometheus.HistogramVec
	reportsTotal   *prometheus.CounterVec
	externalErrors *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	rowsFetched    *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. A private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "billing_report_duration_seconds",
				Help:    "Time spent building a report, by report type.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		reportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_reports_total",
				Help: "Reports built, by outcome.",
			},
			[]string{"status"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_external_errors_total",
				Help: "Total errors from the data backend.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		rowsFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_rows_fetched_total",
				Help: "Rows fetched from the data backend, by entity.",
			},
			[]string{"entity"},
		),
	}
}

// RecordReportDuration records how long a report build took.
func (m *Metrics) RecordReportDuration(reportType string, d time.Duration) {
	m.reportDuration.WithLabelValues(reportType).Observe(d.Seconds())
}

// IncrReport increments the report counter with an outcome label.
func (m *Metrics) IncrReport(status string) {
	m.reportsTotal.WithLabelValues(status).Inc()
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// AddRowsFetched records how many rows a backend query returned.
func (m *Metrics) AddRowsFetched(entity string, n int) {
	m.rowsFetched.WithLabelValues(entity).Add(float64(n))
}

// GetReportSnapshot returns a snapshot of report-related metrics for the
// GET /v1/metrics/reports endpoint.
func (m *Metrics) GetReportSnapshot() *domain.ReportMetrics {
	success := getCounterValue(m.reportsTotal, "success")
	failed := getCounterValue(m.reportsTotal, "error")
	total := success + failed

	hits := getCounterValue(m.cacheHits, "profile")
	misses := getCounterValue(m.cacheMisses, "profile")

	errorRate := float64(0)
	if total > 0 {
		errorRate = failed / total
	}
	cacheHitRate := float64(0)
	if hits+misses > 0 {
		cacheHitRate = hits / (hits + misses)
	}

	return &domain.ReportMetrics{
		TotalReports: int64(total),
		ErrorRate:    errorRate,
		CacheHitRate: cacheHitRate,
		Period:       "all_time",
	}
}

// getCounterValue extracts the current value from a CounterVec for a label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

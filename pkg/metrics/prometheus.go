// Package metrics provides Prometheus metrics for the flixdash dashboard service.
package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const nanosecondsPerMillisecond = 1e6

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Catalog load metrics
	catalogLoads             prometheus.Counter
	catalogLoadErrors        prometheus.Counter
	catalogLoadDuration      prometheus.Histogram
	catalogRows              prometheus.Gauge
	catalogRowsDropped       prometheus.Gauge
	catalogDateParseFailures prometheus.Counter
	catalogInvalidations     *prometheus.CounterVec
	catalogLastLoadUnix      prometheus.Gauge

	// Page metrics
	pageComputeLatency *prometheus.HistogramVec
	pageErrors         *prometheus.CounterVec
	exports            *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "flixdash",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	latencyBuckets := []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

	m.catalogLoads = auto.NewCounter(m.counterOpts(
		"catalog_loads_total", "Total number of successful catalog loads"))
	m.catalogLoadErrors = auto.NewCounter(m.counterOpts(
		"catalog_load_errors_total", "Total number of failed catalog loads"))
	m.catalogLoadDuration = auto.NewHistogram(m.histogramOpts(
		"catalog_load_duration_milliseconds", "Catalog read, clean and materialize time in milliseconds", latencyBuckets))
	m.catalogRows = auto.NewGauge(m.gaugeOpts(
		"catalog_rows", "Rows in the current catalog snapshot"))
	m.catalogRowsDropped = auto.NewGauge(m.gaugeOpts(
		"catalog_rows_dropped", "Rows dropped by cleaning in the current snapshot"))
	m.catalogDateParseFailures = auto.NewCounter(m.counterOpts(
		"catalog_date_parse_failures_total", "Total number of date_added values that could not be parsed"))
	m.catalogInvalidations = auto.NewCounterVec(m.counterOpts(
		"catalog_invalidations_total", "Total number of catalog cache invalidations"), []string{"source"})
	m.catalogLastLoadUnix = auto.NewGauge(m.gaugeOpts(
		"catalog_last_load_unix", "Unix time of the last successful catalog load"))

	m.pageComputeLatency = auto.NewHistogramVec(m.histogramOpts(
		"page_compute_latency_milliseconds", "Page aggregation time in milliseconds", latencyBuckets), []string{"page"})
	m.pageErrors = auto.NewCounterVec(m.counterOpts(
		"page_errors_total", "Total number of page requests that failed"), []string{"page"})
	m.exports = auto.NewCounterVec(m.counterOpts(
		"exports_total", "Total number of xlsx exports"), []string{"page"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_seconds", "HTTP request duration in seconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Catalog Metrics Functions.

// RecordCatalogLoad records a successful load with its size and duration.
func RecordCatalogLoad(rows, dropped int, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.catalogLoads.Inc()
	globalManager.catalogLoadDuration.Observe(durationMs)
	globalManager.catalogRows.Set(float64(rows))
	globalManager.catalogRowsDropped.Set(float64(dropped))
	globalManager.catalogLastLoadUnix.SetToCurrentTime()
}

// RecordCatalogLoadError increments the failed load counter.
func RecordCatalogLoadError() {
	if !globalManager.enabled {
		return
	}
	globalManager.catalogLoadErrors.Inc()
}

// RecordDateParseFailures adds n unparsable date_added values.
func RecordDateParseFailures(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.catalogDateParseFailures.Add(float64(n))
}

// RecordCatalogInvalidation counts a cache invalidation by its source
// (api, watch, manual).
func RecordCatalogInvalidation(source string) {
	if !globalManager.enabled {
		return
	}
	globalManager.catalogInvalidations.WithLabelValues(source).Inc()
}

// Page Metrics Functions.

// RecordPageComputeLatency records how long a page aggregation took.
func RecordPageComputeLatency(page string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.pageComputeLatency.WithLabelValues(page).Observe(latencyMs)
}

// RecordPageError increments the page error counter.
func RecordPageError(page string) {
	if !globalManager.enabled {
		return
	}
	globalManager.pageErrors.WithLabelValues(page).Inc()
}

// RecordExport increments the export counter.
func RecordExport(page string) {
	if !globalManager.enabled {
		return
	}
	globalManager.exports.WithLabelValues(page).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshSystem samples the runtime and updates the system gauges.
func RefreshSystem() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	UpdateSystemMemoryUsage(m.Alloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		RecordSystemGCPauseTime(float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond)
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

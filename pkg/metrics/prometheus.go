// Package metrics provides Prometheus metrics for the pcforge service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default score buckets. Most categories land in 0-150, storage runs high.
var defaultScoreBuckets = []float64{1, 5, 10, 25, 50, 75, 100, 150, 250, 500, 1000} //nolint:gochecknoglobals // immutable defaults

// Manager manages all Prometheus metrics for the pcforge service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	enabled          bool
	registry         prometheus.Registerer

	// Engine metrics
	evaluations       *prometheus.CounterVec
	evaluationScores  *prometheus.HistogramVec
	evaluationLatency prometheus.Histogram

	// Compatibility metrics
	compatibilityChecks     prometheus.Counter
	compatibilityViolations *prometheus.CounterVec

	// Catalog and build metrics
	catalogComponents *prometheus.GaugeVec
	buildsTotal       prometheus.Gauge
	buildMutations    *prometheus.CounterVec

	// Repository metrics
	repositoryQueryLatency prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pcforge",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		scoreBuckets:     defaultScoreBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of component evaluations by category and purpose",
	}, []string{"category", "purpose"})

	m.evaluationScores = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "performance_score",
		Help:      "Distribution of computed performance scores by category",
		Buckets:   m.scoreBuckets,
	}, []string{"category"})

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_latency_milliseconds",
		Help:      "Histogram of classification and scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.compatibilityChecks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "compatibility_checks_total",
		Help:      "Total number of compatibility checks",
	})

	m.compatibilityViolations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "compatibility_violations_total",
		Help:      "Total number of compatibility violations by rule",
	}, []string{"rule"})

	m.catalogComponents = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "components",
		Help:      "Number of catalog components by category",
	}, []string{"category"})

	m.buildsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "builds",
		Help:      "Number of stored builds",
	})

	m.buildMutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "build_mutations_total",
		Help:      "Total number of build mutations by operation",
	}, []string{"operation"})

	m.repositoryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "repository",
		Name:      "query_latency_milliseconds",
		Help:      "Histogram of repository list query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "errors",
		Name:      "by_component_total",
		Help:      "Total number of errors by component and error type",
	}, []string{"component", "error_type"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "errors",
		Name:      "by_endpoint_total",
		Help:      "Total number of errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})
}

// Enabled reports whether m records observations.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// RecordEvaluation counts one evaluation and observes its score.
func (m *Manager) RecordEvaluation(category, purpose string, score float64) {
	if !m.enabled {
		return
	}
	m.evaluations.WithLabelValues(category, purpose).Inc()
	m.evaluationScores.WithLabelValues(category).Observe(score)
}

// RecordEvaluationLatency records evaluation latency in milliseconds.
func (m *Manager) RecordEvaluationLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.evaluationLatency.Observe(latencyMs)
}

// RecordCompatibilityCheck counts one check and each violated rule.
func (m *Manager) RecordCompatibilityCheck(violatedRules ...string) {
	if !m.enabled {
		return
	}
	m.compatibilityChecks.Inc()
	for _, r := range violatedRules {
		m.compatibilityViolations.WithLabelValues(r).Inc()
	}
}

// UpdateCatalogSize sets the component count for category.
func (m *Manager) UpdateCatalogSize(category string, count int) {
	if !m.enabled {
		return
	}
	m.catalogComponents.WithLabelValues(category).Set(float64(count))
}

// UpdateBuildCount sets the number of stored builds.
func (m *Manager) UpdateBuildCount(count int) {
	if !m.enabled {
		return
	}
	m.buildsTotal.Set(float64(count))
}

// RecordBuildMutation counts a build mutation such as "create" or "add".
func (m *Manager) RecordBuildMutation(operation string) {
	if !m.enabled {
		return
	}
	m.buildMutations.WithLabelValues(operation).Inc()
}

// RecordRepositoryQueryLatency records list query latency in milliseconds.
func (m *Manager) RecordRepositoryQueryLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.repositoryQueryLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if !m.enabled {
		return
	}
	m.systemGoroutineCount.Set(float64(count))
}

// Package-level helpers backed by the global manager.

// RecordEvaluation counts one evaluation and observes its score.
func RecordEvaluation(category, purpose string, score float64) {
	globalManager.RecordEvaluation(category, purpose, score)
}

// RecordEvaluationLatency records evaluation latency in milliseconds.
func RecordEvaluationLatency(latencyMs float64) {
	globalManager.RecordEvaluationLatency(latencyMs)
}

// RecordCompatibilityCheck counts one check and each violated rule.
func RecordCompatibilityCheck(violatedRules ...string) {
	globalManager.RecordCompatibilityCheck(violatedRules...)
}

// UpdateCatalogSize sets the component count for category.
func UpdateCatalogSize(category string, count int) {
	globalManager.UpdateCatalogSize(category, count)
}

// UpdateBuildCount sets the number of stored builds.
func UpdateBuildCount(count int) {
	globalManager.UpdateBuildCount(count)
}

// RecordBuildMutation counts a build mutation.
func RecordBuildMutation(operation string) {
	globalManager.RecordBuildMutation(operation)
}

// RecordRepositoryQueryLatency records list query latency in milliseconds.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.RecordRepositoryQueryLatency(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.UpdateSystemMemoryUsage(bytes)
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.UpdateSystemGoroutineCount(count)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

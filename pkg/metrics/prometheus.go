// Package metrics provides Prometheus metrics for the auditplan service.
package metrics

import (
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets spans sub-millisecond estimates to slow reference loads.
var latencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000} //nolint:gochecknoglobals // fixed bucket layout

// hoursBuckets covers engagement estimates from a day's work to a large audit.
var hoursBuckets = []float64{40, 80, 120, 240, 480, 960, 1920, 3840} //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Estimation pipeline
	estimatesTotal    prometheus.Counter
	estimateErrors    *prometheus.CounterVec
	estimateLatency   prometheus.Histogram
	estimatedHours    prometheus.Histogram
	recommendedWeeks  prometheus.Histogram
	negativeEstimates prometheus.Counter

	// Reference snapshot
	referenceEngagements prometheus.Gauge
	referenceStaff       prometheus.Gauge
	referenceIndustries  prometheus.Gauge
	referenceLoadLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
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
		namespace:        "auditplan",
		subsystem:        "estimator",
		histogramBuckets: latencyBuckets,
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

// initializeMetrics creates all the Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.estimatesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "estimates_total",
		Help:        "Total number of successful estimation requests",
		ConstLabels: constLabels,
	})

	m.estimateErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "estimate_errors_total",
			Help:        "Total number of rejected estimation requests by error kind",
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)

	m.estimateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "estimate_latency_milliseconds",
		Help:        "Histogram of end-to-end estimation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.estimatedHours = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "estimated_hours",
		Help:        "Distribution of estimated engagement hours",
		Buckets:     hoursBuckets,
		ConstLabels: constLabels,
	})

	m.recommendedWeeks = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommended_weeks",
		Help:        "Distribution of recommended engagement durations in weeks",
		Buckets:     prometheus.LinearBuckets(1, 2, 10),
		ConstLabels: constLabels,
	})

	m.negativeEstimates = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "negative_estimates_total",
		Help:        "Estimates where the fitted line predicted negative hours",
		ConstLabels: constLabels,
	})

	m.referenceEngagements = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_engagements",
		Help:        "Historical engagements in the loaded reference snapshot",
		ConstLabels: constLabels,
	})

	m.referenceStaff = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_staff",
		Help:        "Staff members in the loaded roster",
		ConstLabels: constLabels,
	})

	m.referenceIndustries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_industries",
		Help:        "Distinct industries known to the feature encoder",
		ConstLabels: constLabels,
	})

	m.referenceLoadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_load_latency_milliseconds",
		Help:        "Time spent loading reference data in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "HTTP errors by endpoint, method and error type",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordEstimate records a successful estimate.
func (m *Manager) RecordEstimate(latencyMs, hours float64, weeks int) {
	if !m.enabled {
		return
	}
	m.estimatesTotal.Inc()
	m.estimateLatency.Observe(latencyMs)
	m.estimatedHours.Observe(hours)
	m.recommendedWeeks.Observe(float64(weeks))
	if hours < 0 {
		m.negativeEstimates.Inc()
	}
}

// RecordEstimateError records a rejected estimate by kind.
func (m *Manager) RecordEstimateError(kind string) {
	if !m.enabled {
		return
	}
	m.estimateErrors.WithLabelValues(kind).Inc()
}

// UpdateReference sets the reference snapshot gauges.
func (m *Manager) UpdateReference(engagements, staff, industries int) {
	if !m.enabled {
		return
	}
	m.referenceEngagements.Set(float64(engagements))
	m.referenceStaff.Set(float64(staff))
	m.referenceIndustries.Set(float64(industries))
}

// RecordReferenceLoad records how long loading reference data took.
func (m *Manager) RecordReferenceLoad(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.referenceLoadLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Package-level helpers operate on the global manager.

// RecordEstimate records a successful estimate on the global manager.
func RecordEstimate(latencyMs, hours float64, weeks int) {
	globalManager.RecordEstimate(latencyMs, hours, weeks)
}

// RecordEstimateError records a rejected estimate on the global manager.
func RecordEstimateError(kind string) {
	globalManager.RecordEstimateError(kind)
}

// UpdateReference sets the reference gauges on the global manager.
func UpdateReference(engagements, staff, industries int) {
	globalManager.UpdateReference(engagements, staff, industries)
}

// RecordReferenceLoad records reference load time on the global manager.
func RecordReferenceLoad(latencyMs float64) {
	globalManager.RecordReferenceLoad(latencyMs)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an HTTP error on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// Configure replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before metrics are recorded or served.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	runtimeOnce = sync.Once{}
	globalManager = NewManager(append(slices.Clip(opts), WithPrometheusRegistry(customRegistry))...)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

var runtimeOnce sync.Once //nolint:gochecknoglobals // guards one-time collector registration

// RegisterRuntimeCollectors adds the Go runtime and process collectors to the
// custom registry. Safe to call more than once.
func RegisterRuntimeCollectors() {
	runtimeOnce.Do(func() {
		customRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// Package metrics provides Prometheus metrics for the matchboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	rowBuckets       []float64
	enabled          bool
	registry         prometheus.Registerer

	// Dataset
	datasetRows         prometheus.Gauge
	datasetCountries    prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	datasetLoadErrors   prometheus.Counter

	// Pipeline
	pipelineRuns     prometheus.Counter
	pipelineLatency  prometheus.Histogram
	pipelineRows     prometheus.Histogram
	emptyResults     prometheus.Counter
	undefinedKPIs    *prometheus.CounterVec
	exportsByFormat  *prometheus.CounterVec
	filterRejections *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
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
		namespace:        "matchboard",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		rowBuckets:       prometheus.ExponentialBuckets(1, 4, 10),
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of matches held in the loaded dataset",
	})

	m.datasetCountries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_countries",
		Help:      "Number of distinct host countries in the loaded dataset",
	})

	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_duration_milliseconds",
		Help:      "Time spent reading and parsing the results file",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
	})

	m.datasetLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_errors_total",
		Help:      "Number of failed dataset loads",
	})

	m.pipelineRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_runs_total",
		Help:      "Number of filter-aggregate pipeline runs",
	})

	m.pipelineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_latency_milliseconds",
		Help:      "Filter-aggregate pipeline latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pipelineRows = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_filtered_rows",
		Help:      "Size of the filtered subset per pipeline run",
		Buckets:   m.rowBuckets,
	})

	m.emptyResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_empty_results_total",
		Help:      "Pipeline runs whose filter selected no matches",
	})

	m.undefinedKPIs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "undefined_kpis_total",
			Help:      "Mean-based KPIs reported as undefined, by KPI name",
		},
		[]string{"kpi"},
	)

	m.exportsByFormat = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "exports_total",
			Help:      "Filtered-row exports by file format",
		},
		[]string{"format"},
	)

	m.filterRejections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "filter_rejections_total",
			Help:      "Filter requests rejected during validation, by reason",
		},
		[]string{"reason"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Errors by HTTP endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Number of live goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Dataset

// RecordDatasetLoad records a successful dataset load.
func RecordDatasetLoad(rows, countries int, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetCountries.Set(float64(countries))
	globalManager.datasetLoadDuration.Observe(durationMs)
}

// RecordDatasetLoadError records a failed dataset load.
func RecordDatasetLoadError() {
	if globalManager.enabled {
		globalManager.datasetLoadErrors.Inc()
	}
}

// Pipeline

// RecordPipelineRun records one pipeline run and the size of its subset.
func RecordPipelineRun(latencyMs float64, filteredRows int) {
	if !globalManager.enabled {
		return
	}
	globalManager.pipelineRuns.Inc()
	globalManager.pipelineLatency.Observe(latencyMs)
	globalManager.pipelineRows.Observe(float64(filteredRows))
}

// RecordEmptyResult counts a pipeline run that selected nothing.
func RecordEmptyResult() {
	if globalManager.enabled {
		globalManager.emptyResults.Inc()
	}
}

// RecordUndefinedKPI counts a KPI reported as undefined.
func RecordUndefinedKPI(kpi string) {
	if globalManager.enabled {
		globalManager.undefinedKPIs.WithLabelValues(kpi).Inc()
	}
}

// RecordExport counts an export in the given format.
func RecordExport(format string) {
	if globalManager.enabled {
		globalManager.exportsByFormat.WithLabelValues(format).Inc()
	}
}

// RecordFilterRejection counts a rejected filter request.
func RecordFilterRejection(reason string) {
	if globalManager.enabled {
		globalManager.filterRejections.WithLabelValues(reason).Inc()
	}
}

// HTTP

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// System

// UpdateSystemMemoryUsage updates the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

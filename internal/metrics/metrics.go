// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - scanimage invocations and scan outcomes
// - File actions (command, s3)
// - Thumbnail cache efficiency
// - The scanner circuit breaker

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	APIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of failed API requests by failure kind",
		},
		[]string{"kind"}, // "structured", "structured_no_message", "text", "other"
	)

	// Scanner Metrics
	ScannerCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanner_command_duration_seconds",
			Help:    "Duration of scanner backend invocations in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"operation"}, // "list", "describe", "scan", "preview"
	)

	ScannerCommandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_command_errors_total",
			Help: "Total number of failed scanner backend invocations",
		},
		[]string{"operation"},
	)

	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scans_total",
			Help: "Total number of scans by kind and result",
		},
		[]string{"kind", "result"}, // kind: "scan", "preview"; result: "success", "failure"
	)

	ScannerDevices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scanner_devices",
			Help: "Number of scanner devices known after the last probe",
		},
	)

	// File Metrics
	FileActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_actions_total",
			Help: "Total number of file actions by type and result",
		},
		[]string{"type", "result"},
	)

	FileOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_operations_total",
			Help: "Total number of file operations",
		},
		[]string{"operation"}, // "download", "rename", "delete", "thumbnail"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "thumbnail", "devices"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAPIError counts a failed request by the shape of its failure.
func RecordAPIError(kind string) {
	APIErrors.WithLabelValues(kind).Inc()
}

// RecordScannerCommand records one scanner backend invocation.
func RecordScannerCommand(operation string, duration time.Duration, err error) {
	ScannerCommandDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		ScannerCommandErrors.WithLabelValues(operation).Inc()
	}
}

// RecordScan records the outcome of a scan or preview.
func RecordScan(kind string, err error) {
	ScansTotal.WithLabelValues(kind, resultLabel(err)).Inc()
}

// RecordFileAction records the outcome of a configured file action.
func RecordFileAction(actionType string, err error) {
	FileActionsTotal.WithLabelValues(actionType, resultLabel(err)).Inc()
}

// RecordFileOperation counts a file operation.
func RecordFileOperation(operation string) {
	FileOperationsTotal.WithLabelValues(operation).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// SetAppInfo publishes the running version and starts the uptime gauge.
// The returned function stops the uptime updater.
func SetAppInfo(version string) (stop func()) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			AppUptime.Set(time.Since(start).Seconds())
			select {
			case <-ticker.C:
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

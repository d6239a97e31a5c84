package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Archive operation metrics
	archiveReadsTotal   *prometheus.CounterVec
	archiveReadDuration *prometheus.HistogramVec
	archiveEntriesTotal prometheus.Gauge

	// Records served, labelled by record type
	recordsServedTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagedec_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pagedec_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pagedec_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		archiveReadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagedec_archive_reads_total",
				Help: "Total number of archive read operations",
			},
			[]string{"operation", "status"},
		),

		archiveReadDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pagedec_archive_read_duration_seconds",
				Help:    "Archive read operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		archiveEntriesTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pagedec_archive_entries_total",
				Help: "Total number of entries in the archive",
			},
		),

		recordsServedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagedec_records_served_total",
				Help: "Total number of decoded records served, by record type",
			},
			[]string{"type"},
		),

		healthChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagedec_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordArchiveRead records an archive read operation
func (m *Metrics) RecordArchiveRead(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.archiveReadsTotal.WithLabelValues(operation, status).Inc()
	m.archiveReadDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordServed records one decoded record served to a client
func (m *Metrics) RecordServed(recordType string) {
	m.recordsServedTotal.WithLabelValues(recordType).Inc()
}

// UpdateArchiveStats updates archive statistics
func (m *Metrics) UpdateArchiveStats(entries int) {
	m.archiveEntriesTotal.Set(float64(entries))
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		duration := time.Since(start)
		m.RecordHTTPRequest(method, endpoint, rw.statusCode, duration)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

package telemetry

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics groups the prometheus collectors for the HTTP surface, the
// account/task operations and the supporting caches.
type AppMetrics struct {
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	accountOperations *prometheus.CounterVec
	taskOperations    *prometheus.CounterVec
	rateLimitHits     *prometheus.CounterVec
	rateLimitAllowed  *prometheus.CounterVec
	tokenCacheHits    prometheus.Counter
	tokenCacheMisses  prometheus.Counter
}

func NewAppMetrics(registry prometheus.Registerer) *AppMetrics {
	metrics := &AppMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		accountOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_operations_total",
				Help: "Account operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		taskOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_operations_total",
				Help: "Task operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		rateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
		rateLimitAllowed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_allowed_total",
				Help: "Requests allowed by the rate limiter",
			},
			[]string{"path"},
		),
		tokenCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "token_cache_hits_total",
				Help: "Token lookups answered from the cache",
			},
		),
		tokenCacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "token_cache_misses_total",
				Help: "Token lookups that fell through to the store",
			},
		),
	}

	registry.MustRegister(
		metrics.requestDuration,
		metrics.requestTotal,
		metrics.accountOperations,
		metrics.taskOperations,
		metrics.rateLimitHits,
		metrics.rateLimitAllowed,
		metrics.tokenCacheHits,
		metrics.tokenCacheMisses,
	)

	return metrics
}

// RequestMiddleware records duration and count per route.
func (m *AppMetrics) RequestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		status := strconv.Itoa(c.Writer.Status())

		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

func (m *AppMetrics) RecordAccountOperation(operation string, err error) {
	if m == nil {
		return
	}

	m.accountOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *AppMetrics) RecordTaskOperation(operation string, err error) {
	if m == nil {
		return
	}

	m.taskOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *AppMetrics) RecordRateLimitHit(path string) {
	if m == nil {
		return
	}

	m.rateLimitHits.WithLabelValues(path).Inc()
}

func (m *AppMetrics) RecordRateLimitAllowed(path string) {
	if m == nil {
		return
	}

	m.rateLimitAllowed.WithLabelValues(path).Inc()
}

func (m *AppMetrics) RecordTokenCacheHit() {
	if m == nil {
		return
	}

	m.tokenCacheHits.Inc()
}

func (m *AppMetrics) RecordTokenCacheMiss() {
	if m == nil {
		return
	}

	m.tokenCacheMisses.Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}

	return "success"
}

package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"

	metricsPath = "/metrics"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	ProjectOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_operations_total",
			Help: "Total number of project store operations",
		},
		[]string{"operation", "status"},
	)

	ProjectOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "project_operation_duration_seconds",
			Help:    "Project store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordProjectOperation counts one store operation and its latency.
func RecordProjectOperation(operation string, err error, duration time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}
	ProjectOperations.WithLabelValues(operation, status).Inc()
	ProjectOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Middleware observes request latency labelled by route template, not raw path.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == metricsPath {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			RecordHTTPRequestDuration(c.Request().Method, path, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}

// RegisterMetricsRoute exposes the default registry at /metrics.
func RegisterMetricsRoute(e *echo.Echo) {
	e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))
}

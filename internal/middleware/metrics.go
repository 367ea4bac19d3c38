package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "villains_api"

// MetricsMiddleware records request counts and latencies on its own
// registry. Labels use the route template (c.Path()), never the raw URL,
// so slugs cannot blow up cardinality.
type MetricsMiddleware struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	rateLimitHits *prometheus.CounterVec
}

func NewMetricsMiddleware() *MetricsMiddleware {
	m := &MetricsMiddleware{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method, route template and status.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route template.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "path"}),
		rateLimitHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter, by route template.",
		}, []string{"path"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.rateLimitHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Middleware observes every request. Error responses are counted with the
// status the error will be rendered with.
func (m *MetricsMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
			}

			m.requests.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsMiddleware) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *MetricsMiddleware) recordRateLimitHit(path string) {
	m.rateLimitHits.WithLabelValues(path).Inc()
}

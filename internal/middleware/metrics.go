package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// The collectors are package-level, so they register with the default
// registry exactly once no matter how many HTTPMetrics are constructed.
var registerCollectors sync.Once

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	serviceName string
}

func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	registerCollectors.Do(func() {
		prometheus.MustRegister(requestCounter, requestDurationHistogram)
	})
	return &HTTPMetrics{serviceName: serviceName}
}

func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// FullPath keeps the route template so path params don't explode
		// label cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		requestCounter.WithLabelValues(m.serviceName, c.Request.Method, path, status).Inc()
		requestDurationHistogram.WithLabelValues(m.serviceName, c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

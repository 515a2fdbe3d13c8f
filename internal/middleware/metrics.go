package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tazkara_http_requests_total",
		Help: "Number of HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tazkara_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	degradedMode = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tazkara_upstream_degraded",
		Help: "1 when the ticketing backend is considered unavailable and sample data is being served.",
	})
)

// SetDegraded mirrors the upstream availability flag into the gauge.
func SetDegraded(on bool) {
	if on {
		degradedMode.Set(1)
	} else {
		degradedMode.Set(0)
	}
}

// Metrics records request counts and latencies per route. The route template
// is used rather than the raw path so /api/events/42 and /api/events/7 land
// in the same series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		requestsTotal.WithLabelValues(method, route, status).Inc()
		requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

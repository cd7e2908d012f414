package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics:
// - blog_handler_invocations_total: handler calls by method, action and status
// - blog_handler_duration_seconds: handler latency by method and action
var (
	Invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "blog_handler_invocations_total", Help: "Handler invocations by method, action and status"},
		[]string{"method", "action", "status"},
	)
	Duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "blog_handler_duration_seconds", Help: "Handler latency in seconds", Buckets: prometheus.DefBuckets},
		[]string{"method", "action"},
	)
)

func init() {
	prometheus.MustRegister(Invocations, Duration)
}

// Observe records one finished invocation
func Observe(method, action string, status int, elapsed time.Duration) {
	Invocations.WithLabelValues(method, action, strconv.Itoa(status)).Inc()
	Duration.WithLabelValues(method, action).Observe(elapsed.Seconds())
}

// Exposer returns the standard Prometheus exposition handler
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }

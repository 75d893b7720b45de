package router

import (
	"errors"
	"strconv"
	"time"

	"github.com/unilorin-sug/election/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	return &httpMetrics{
		requests: registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sug_http_requests_total",
			Help: "http requests by route and status",
		}, []string{"method", "route", "status"})),
		duration: registerCollector(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sug_http_request_duration_seconds",
			Help:    "http request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})),
	}
}

// registerCollector 注册指标，重复注册时复用已存在的 collector
func registerCollector[T prometheus.Collector](reg prometheus.Registerer, collector T) T {
	if reg == nil {
		return collector
	}
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		logger.Warnw("http_metrics_register_failed", "error", err)
	}
	return collector
}

// MetricsMiddleware 记录请求次数与耗时
func MetricsMiddleware(m *httpMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

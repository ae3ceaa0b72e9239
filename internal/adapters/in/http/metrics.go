package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics collects the HTTP and order counters exposed on /metrics.
type ServerMetrics struct {
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	Orders      prometheus.Counter
	Transitions *prometheus.CounterVec
}

// NewServerMetrics registers the server's metrics with the default registry.
func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agrimarket",
		Subsystem: "orders",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "agrimarket",
		Subsystem: "orders",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agrimarket",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total number of orders created.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agrimarket",
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Total number of order status transitions.",
	}, []string{"to"})

	prometheus.MustRegister(requests, latency, orders, transitions)
	return &ServerMetrics{
		Requests:    requests,
		LatencyMS:   latency,
		Orders:      orders,
		Transitions: transitions,
	}
}

// Middleware counts every request and observes its latency, labelled by
// route path and response status.
func (m *ServerMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			m.Requests.WithLabelValues(c.Path(), strconv.Itoa(c.Response().Status)).Inc()
			m.LatencyMS.WithLabelValues(c.Path()).
				Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}

// MetricsHandler serves the prometheus exposition endpoint.
func MetricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation outcomes recorded by the catalog counter.
const (
	OutcomeSuccess   = "success"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

// Metrics holds the catalog collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	CatalogOperations   *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors on a private registry, so several instances can
// coexist in one process (tests build one per app).
func New(prefix string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CatalogOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_catalog_operations_total",
				Help: "Total number of catalog operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	m.registry.MustRegister(
		m.CatalogOperations,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation counts one catalog operation. A nil receiver is a no-op.
func (m *Metrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.CatalogOperations.WithLabelValues(operation, outcome).Inc()
}

// Middleware records count and latency of every request by route template.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		method := c.Method()
		code := strconv.Itoa(status)
		m.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := metrics.New("test")

	m.ObserveOperation("create_product", metrics.OutcomeSuccess)
	m.ObserveOperation("create_product", metrics.OutcomeSuccess)
	m.ObserveOperation("create_product", metrics.OutcomeDuplicate)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogOperations.WithLabelValues("create_product", metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogOperations.WithLabelValues("create_product", metrics.OutcomeDuplicate)))

	var nilMetrics *metrics.Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveOperation("create_product", metrics.OutcomeSuccess) })
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := metrics.New("test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/items/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "204")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "test_http_requests_total"))
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/observability"
)

// MetricsHandler exposes the in-process counter snapshot.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Snapshot GET /debug/metrics.
func (h *MetricsHandler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}

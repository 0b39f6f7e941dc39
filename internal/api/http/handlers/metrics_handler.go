package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/condo-service/internal/observability"
)

// MetricsHandler serves the in-memory request counters.
type MetricsHandler struct {
	metrics *observability.Metrics
}

func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Show handles GET /metrics.
func (h *MetricsHandler) Show(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}

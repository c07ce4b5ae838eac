package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thewhitewolf2411/TaskManager/internal/observability"
)

// MetricsHandler exposes the in-memory counters for debugging.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler constructs the handler.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Get handles GET /metrics.
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	requests, errors, authRejections := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests":        requests,
		"errors":          errors,
		"auth_rejections": authRejections,
	})
}

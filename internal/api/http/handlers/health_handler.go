package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thewhitewolf2411/TaskManager/internal/persistence"
)

const healthProbeTimeout = 2 * time.Second

// HealthHandler responds to liveness and readiness probes. Readiness checks
// the two stores authentication depends on: the credential store holding
// user records and the revocation list backing logout.
type HealthHandler struct {
	serviceName string
	version     string
	credentials *persistence.Postgres
	revocation  *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, credentials *persistence.Postgres, revocation *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		credentials: credentials,
		revocation:  revocation,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports whether login and logout can currently be served. The
// credential store is hard-required; the revocation list degrades to
// best effort at the gate but still counts against readiness so a dead
// Redis is visible to operators.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	deps := fiber.Map{}
	ready := true

	if err := h.credentials.Ping(ctx); err != nil {
		deps["credential_store"] = err.Error()
		ready = false
	} else {
		deps["credential_store"] = "ok"
	}

	if err := h.revocation.Ping(ctx); err != nil {
		deps["revocation_list"] = err.Error()
		ready = false
	} else {
		deps["revocation_list"] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": deps,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": deps,
	})
}

package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Check is a named dependency ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness checks. Dependency errors
// are logged, never echoed to the caller.
type HealthHandler struct {
	serviceName string
	version     string
	logger      *zap.Logger
	storage     *Check
	checks      []Check
	timeout     time.Duration
}

// NewHealthHandler returns a new handler instance. storage backs GET /health
// and may be nil when the service runs on in-memory storage; checks are
// consulted by the readiness check.
func NewHealthHandler(serviceName, version string, logger *zap.Logger, storage *Check, checks ...Check) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if storage != nil {
		checks = append([]Check{*storage}, checks...)
	}
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		logger:      logger.Named("health"),
		storage:     storage,
		checks:      checks,
		timeout:     2 * time.Second,
	}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "API rodando com sucesso!"})
}

// Health handles GET /health by probing the storage backend.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			h.logger.Warn("storage ping failed", zap.String("dependency", h.storage.Name), zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  h.storage.Name + " unavailable",
			})
		}
	}
	return c.JSON(fiber.Map{"status": "healthy", "health": true})
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("dependency ping failed", zap.String("dependency", check.Name), zap.Error(err))
			depStatus[check.Name] = "unavailable"
			ready = false
			continue
		}
		depStatus[check.Name] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"detail":  "one or more dependencies unavailable",
		"code":    "DEPENDENCY_UNAVAILABLE",
		"details": depStatus,
	})
}

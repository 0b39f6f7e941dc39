package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/condo-service/internal/auth"
)

// RequestIDKey is the fiber Locals key holding the request id.
const RequestIDKey = "requestid"

// UnmatchedRoute is the metrics key shared by every request no route claimed.
const UnmatchedRoute = "<unmatched>"

const unmatchedKey = "observability_unmatched"

// MarkUnmatched flags the request as handled by the catch-all route.
func MarkUnmatched(c *fiber.Ctx) {
	c.Locals(unmatchedKey, true)
}

// RouteKey returns the registered route template for the request, never the
// raw path, so metric keys stay bounded by the route table.
func RouteKey(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedKey).(bool); unmatched {
		return UnmatchedRoute
	}
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return UnmatchedRoute
}

// RequestLogger writes one log line per request and feeds the request counters.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		metrics.RecordRequest(RouteKey(c), c.Method(), status, latency)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		if id, ok := c.Locals(RequestIDKey).(string); ok && id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if user, ok := auth.CurrentUser(c); ok {
			fields = append(fields, zap.Int64("user_id", user.ID))
		}

		level := zapcore.InfoLevel
		if status >= fiber.StatusInternalServerError {
			level = zapcore.ErrorLevel
		}
		if ce := logger.Check(level, "http request"); ce != nil {
			ce.Write(fields...)
		}
		return err
	}
}

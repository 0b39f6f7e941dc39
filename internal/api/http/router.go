package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/condo-service/internal/api/http/handlers"
	"github.com/spec-kit/condo-service/internal/auth"
	"github.com/spec-kit/condo-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Condominios *handlers.CondominiosHandler
	Metrics     *handlers.MetricsHandler
	Gate        *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authenticated := cfg.Gate.Authenticate
	admin := auth.RequireAdmin()

	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Health)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", authenticated, cfg.Auth.Logout)
	app.Get("/me", authenticated, cfg.Users.Me)

	users := app.Group("/users")
	users.Post("", cfg.Gate.Optional, cfg.Users.Create)
	users.Get("", authenticated, admin, cfg.Users.List)
	users.Get("/me", authenticated, cfg.Users.Me)
	users.Get("/:id", authenticated, cfg.Users.Get)
	users.Put("/:id", authenticated, cfg.Users.Update)
	users.Delete("/:id", authenticated, admin, cfg.Users.Delete)

	condos := app.Group("/condominios", authenticated)
	condos.Get("", cfg.Condominios.List)
	condos.Get("/:id", cfg.Condominios.Get)
	condos.Post("", admin, cfg.Condominios.Create)
	condos.Put("/:id", admin, cfg.Condominios.Update)
	condos.Delete("/:id", admin, cfg.Condominios.Delete)

	if cfg.Metrics != nil {
		app.Get("/metrics", authenticated, admin, cfg.Metrics.Show)
	}

	// Must stay last: only reached when no route above matched.
	app.Use(func(c *fiber.Ctx) error {
		observability.MarkUnmatched(c)
		return fiber.ErrNotFound
	})
}

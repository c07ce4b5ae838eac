package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thewhitewolf2411/TaskManager/internal/api/http/handlers"
	"github.com/thewhitewolf2411/TaskManager/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authorization gate is mounted
// twice: any valid token for the protected group, admin role for the admin
// group.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Get)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/register", cfg.Auth.Register)
	app.Get("/auth/logout", cfg.Auth.Logout)

	protected := app.Group("", cfg.AuthMiddleware.Handle(false))
	protected.Get("/user", cfg.Users.GetCurrent)

	admin := app.Group("", cfg.AuthMiddleware.Handle(true))
	admin.Get("/users", cfg.Users.List)
}

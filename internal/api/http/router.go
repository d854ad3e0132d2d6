package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-gateway/internal/api/http/handlers"
	"github.com/spec-kit/support-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tools          *handlers.ToolsHandler
	Escalations    *handlers.EscalationsHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth", cfg.AuthMiddleware.Handle, auth.RequireService())
	authGroup.Post("/operator/token", cfg.Auth.OperatorToken)

	v1 := app.Group("/v1", cfg.AuthMiddleware.Handle)
	v1.Get("/validate", cfg.Tools.Validate)
	v1.Post("/supervisor", cfg.Tools.Supervisor)
	v1.Post("/summarize", cfg.Tools.Summarize)
	v1.Get("/escalations", cfg.Escalations.List)
	v1.Post("/escalations/:id/respond", cfg.Escalations.Respond)
}

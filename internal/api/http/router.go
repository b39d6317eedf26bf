package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Feedback       *handlers.FeedbackHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
	Managers       auth.ManagerResolver
}

// RegisterRoutes wires HTTP routes. Static ticket paths are registered before
// the :id routes so they are not captured as ids.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	adminOnly := auth.RequireRole(domain.UserRoleAdmin)

	protected.Get("/users", cfg.Users.List)
	protected.Patch("/users/manager", adminOnly, cfg.Users.SetManager)
	protected.Get("/users/:id", cfg.Users.Get)

	protected.Post("/tickets", auth.RequireRole(domain.UserRoleEmployee), cfg.Tickets.Create)
	protected.Get("/tickets", cfg.Tickets.List)
	protected.Get("/tickets/action",
		auth.RequireRoleOrManager(cfg.Managers, domain.UserRoleHR, domain.UserRoleIT, domain.UserRoleAdmin),
		cfg.Tickets.ListAction)
	protected.Post("/tickets/action/:id", cfg.Tickets.PerformAction)
	protected.Get("/tickets/manager/action", auth.RequireManager(cfg.Managers), cfg.Tickets.ListReports)
	protected.Get("/tickets/department", auth.RequireRole(domain.UserRoleHR, domain.UserRoleIT), cfg.Tickets.ListDepartment)
	protected.Get("/tickets/:id", cfg.Tickets.Get)
	protected.Get("/tickets/:id/activity", cfg.Tickets.Activity)

	protected.Post("/feedback", auth.RequireRole(domain.UserRoleEmployee), cfg.Feedback.Create)
	protected.Get("/feedback", adminOnly, cfg.Feedback.List)

	protected.Get("/activity", adminOnly, cfg.Activity.List)
}

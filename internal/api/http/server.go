package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// Services groups the application services behind the HTTP surface.
type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Tickets    *service.TicketService
	Feedback   *service.FeedbackService
	Activities *service.ActivityService
}

// AppOptions configures NewApp.
type AppOptions struct {
	Name      string
	Version   string
	Timeout   time.Duration
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Services  Services
	Verifier  auth.Verifier
	UserStore auth.UserLoader
	Readiness map[string]handlers.Pinger
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		DisableStartupMessage: true,
		ReadTimeout:           opts.Timeout,
	})
	RegisterMiddlewares(app, opts.Logger, opts.Metrics, opts.Timeout)

	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(opts.Name, opts.Version, opts.Readiness, opts.Metrics),
		Auth:           handlers.NewAuthHandler(opts.Services.Auth),
		Users:          handlers.NewUsersHandler(opts.Services.Users),
		Tickets:        handlers.NewTicketsHandler(opts.Services.Tickets),
		Feedback:       handlers.NewFeedbackHandler(opts.Services.Feedback),
		Activity:       handlers.NewActivityHandler(opts.Services.Activities),
		AuthMiddleware: auth.NewAuthMiddleware(opts.Verifier, opts.UserStore),
		Managers:       opts.Services.Users,
	})
	return app
}

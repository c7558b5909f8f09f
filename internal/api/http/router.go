package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/loan-platform/internal/api/http/handlers"
	"github.com/spec-kit/loan-platform/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Applications   *handlers.ApplicationsHandler
	Tickets        *handlers.TicketsHandler
	Analytics      *handlers.AnalyticsHandler
	Public         *handlers.PublicHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	public := api.Group("/public")
	public.Get("/partners", cfg.Public.Partners)
	public.Get("/reviews", cfg.Public.Reviews)
	public.Get("/faqs", cfg.Public.FAQs)
	public.Get("/stats", cfg.Public.Stats)

	api.Post("/emi/calculate", cfg.Public.CalculateEMI)
	api.Post("/contact", cfg.Public.Contact)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	apps := api.Group("/applications", cfg.AuthMiddleware.Handle)
	apps.Post("", cfg.Applications.Create)
	apps.Get("/my", cfg.Applications.ListMine)
	apps.Get("", auth.RequireAdmin(), cfg.Applications.ListAll)
	apps.Patch("/:id", auth.RequireAdmin(), cfg.Applications.UpdateStatus)
	apps.Post("/:id/additional-documents", cfg.Applications.UploadAdditionalDocument)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("/my", cfg.Tickets.ListMine)
	tickets.Get("", auth.RequireAdmin(), cfg.Tickets.ListAll)
	tickets.Patch("/:id/status", auth.RequireAdmin(), cfg.Tickets.UpdateStatus)

	superAdmin := api.Group("/super-admin", cfg.AuthMiddleware.Handle, auth.RequireSuperAdmin())
	superAdmin.Get("/traffic", cfg.Analytics.Traffic)
}

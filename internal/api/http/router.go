package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Potism/studiomain/internal/api/http/handlers"
	"github.com/Potism/studiomain/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Content    *handlers.ContentHandler
	Portfolio  *handlers.PortfolioHandler
	Contact    *handlers.ContactHandler
	AdminPages *handlers.AdminPagesHandler
	Sessions   *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every mutating route sits behind the
// session gate; the gate runs before any handler body, so no side effect
// can precede a successful authorization.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/contact", cfg.Contact.Submit)
	api.Get("/content", cfg.Content.Get)
	api.Get("/portfolio", cfg.Portfolio.Public)
	api.Put("/content", cfg.Sessions.RequireAdmin, cfg.Content.Update)

	adminAPI := api.Group("/admin")
	adminAPI.Post("/login", cfg.Auth.Login)
	adminAPI.Post("/logout", cfg.Auth.Logout)

	protected := adminAPI.Group("", cfg.Sessions.RequireAdmin)
	protected.Get("/verify", cfg.Auth.Verify)
	protected.Get("/contact", cfg.Contact.List)
	protected.Get("/portfolio", cfg.Portfolio.List)
	protected.Post("/portfolio/upload", cfg.Portfolio.Upload)
	protected.Put("/portfolio", cfg.Portfolio.Update)
	protected.Delete("/portfolio/:id", cfg.Portfolio.Delete)
	protected.Get("/portfolio/import", cfg.Portfolio.ImportList)
	protected.Post("/portfolio/import", cfg.Portfolio.Import)

	// Browser-facing admin shell: login stays open, everything else
	// redirects unauthenticated sessions to it.
	app.Get("/admin/login", cfg.AdminPages.Login)
	pages := app.Group("/admin", cfg.Sessions.GuardPage)
	pages.Get("/", cfg.AdminPages.Dashboard)
	pages.Get("/import-blob", cfg.AdminPages.Dashboard)
}

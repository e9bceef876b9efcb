package handlers

import "github.com/gofiber/fiber/v2"

// AdminPagesHandler serves the minimal admin shell. The dashboard itself is
// a client-side app; these routes exist so the page-level guard has a place
// to send browsers.
type AdminPagesHandler struct{}

// NewAdminPagesHandler constructs handler.
func NewAdminPagesHandler() *AdminPagesHandler {
	return &AdminPagesHandler{}
}

// Login serves the login shell, reachable without a session.
func (h *AdminPagesHandler) Login(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html><title>Admin Login</title><div id="admin-login"></div>`)
}

// Dashboard serves the guarded admin shell.
func (h *AdminPagesHandler) Dashboard(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html><title>Admin</title><div id="admin-root"></div>`)
}

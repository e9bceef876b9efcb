package auth

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "admin-session"

const principalKey = "auth_principal"

// Middleware applies the gate to incoming requests. API routes answer with
// status codes; page routes redirect to the login page.
type Middleware struct {
	gate      *Gate
	loginPath string
}

// NewMiddleware constructs middleware.
func NewMiddleware(gate *Gate, loginPath string) *Middleware {
	return &Middleware{gate: gate, loginPath: loginPath}
}

// RequireAdmin enforces the gate for mutating API routes. Rejections map to
// machine-readable errors: missing, undecodable and expired sessions are
// 401 with distinct codes; a valid session without the admin role is 403.
func (m *Middleware) RequireAdmin(c *fiber.Ctx) error {
	principal, rejection := m.gate.Authorize(c.Cookies(SessionCookieName))
	if rejection != nil {
		return rejectionError(rejection)
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// GuardPage enforces the gate for admin HTML routes, redirecting to the
// login page instead of answering with an error body. A cookie that was
// present but refused gets cleared on the way out.
func (m *Middleware) GuardPage(c *fiber.Ctx) error {
	raw := c.Cookies(SessionCookieName)
	principal, rejection := m.gate.Authorize(raw)
	if rejection != nil {
		if raw != "" {
			ClearSessionCookie(c)
		}
		return c.Redirect(m.loginPath, fiber.StatusFound)
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authorized admin set by the gate.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// SetSessionCookie writes the session token as an http-only cookie scoped
// to the whole site.
func SetSessionCookie(c *fiber.Ctx, token string, maxAge time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie. The server keeps no
// session state, so this is the whole of logout.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func rejectionError(rejection *Rejection) error {
	if rejection.Reason == ReasonForbidden {
		return apperrors.NewForbidden(rejection.Message)
	}
	return apperrors.NewDomainError(string(rejection.Reason), rejection.Message, http.StatusUnauthorized, nil)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Potism/studiomain/internal/api/dto"
	"github.com/Potism/studiomain/internal/auth"
	"github.com/Potism/studiomain/internal/service"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

// AuthHandler exposes login, logout and session verification endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	secure bool
}

// NewAuthHandler constructs handler. secure marks session cookies as
// HTTPS-only, off in development.
func NewAuthHandler(authService *service.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{auth: authService, secure: secure}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	admin, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			return apperrors.NewForbidden("access denied, admin privileges required")
		case errors.Is(err, service.ErrInvalidCredentials):
			return apperrors.NewUnauthorized(err.Error())
		default:
			return err
		}
	}

	auth.SetSessionCookie(c, token, h.auth.SessionTTL(), h.secure)
	return c.JSON(fiber.Map{
		"success": true,
		"user": dto.UserPayload{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  string(admin.Role),
		},
	})
}

// Logout handles POST /api/admin/logout. Sessions live only in the cookie,
// so deleting it is the whole operation.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

// Verify handles GET /api/admin/verify behind the gate; the admin shell
// calls it to learn who is signed in.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewDomainError("UNAUTHENTICATED", "no session", http.StatusUnauthorized, nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user": dto.UserPayload{
			ID:    principal.UserID,
			Email: principal.Email,
			Name:  principal.Name,
			Role:  string(principal.Role),
		},
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Potism/studiomain/internal/api/dto"
	"github.com/Potism/studiomain/internal/auth"
	"github.com/Potism/studiomain/internal/service"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

// ContentHandler exposes site copy endpoints.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{service: contentService}
}

// Get handles GET /api/content (public).
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	content, err := h.service.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "content": content})
}

// Update handles PUT /api/content behind the gate.
func (h *ContentHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	var req dto.ContentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Section == "" || req.Key == "" || req.Value == nil {
		return apperrors.NewValidationError("section, key, value required", nil)
	}

	if err := h.service.Update(c.Context(), principal.Email, req.Section, req.Key, *req.Value); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

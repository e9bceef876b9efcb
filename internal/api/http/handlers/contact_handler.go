package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Potism/studiomain/internal/api/dto"
	"github.com/Potism/studiomain/internal/service"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

// ContactHandler exposes the public contact form and the admin inbox.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{service: contactService}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	submission, err := h.service.Submit(c.Context(), service.ContactInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		Service:       req.Service,
		Budget:        req.Budget,
		Message:       req.Message,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Contact form submitted successfully. You will receive a response within 24 hours.",
		"timestamp": submission.CreatedAt,
	})
}

// List handles GET /api/admin/contact behind the gate.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	submissions, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "submissions": submissions})
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Potism/studiomain/internal/api/dto"
	"github.com/Potism/studiomain/internal/auth"
	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/service"
	apperrors "github.com/Potism/studiomain/pkg/util/errorutil"
)

// PortfolioHandler exposes gallery and portfolio management endpoints.
type PortfolioHandler struct {
	service *service.PortfolioService
}

// NewPortfolioHandler constructs handler.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: portfolioService}
}

// Public handles GET /api/portfolio, the gallery feed.
func (h *PortfolioHandler) Public(c *fiber.Ctx) error {
	items, err := h.service.ListPublic(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "items": items})
}

// List handles GET /api/admin/portfolio.
func (h *PortfolioHandler) List(c *fiber.Ctx) error {
	items, err := h.service.ListAdmin(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "items": toItemResponses(items)})
}

// Upload handles POST /api/admin/portfolio/upload (multipart).
func (h *PortfolioHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	input := service.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		File:        file,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	if thumbHeader, err := c.FormFile("thumbnail"); err == nil && thumbHeader != nil {
		thumb, err := thumbHeader.Open()
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		defer thumb.Close()
		input.Thumbnail = thumb
	}

	item, err := h.service.Upload(c.Context(), principal.Email, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "item": toItemResponse(*item)})
}

// Update handles PUT /api/admin/portfolio.
func (h *PortfolioHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	var req dto.PortfolioUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.Update(c.Context(), principal.Email, service.UpdateInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IsFeatured:  req.IsFeatured,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "item": toItemResponse(*item)})
}

// Delete handles DELETE /api/admin/portfolio/:id.
func (h *PortfolioHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("no item id provided", nil)
	}

	if err := h.service.Delete(c.Context(), principal.Email, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ImportList handles GET /api/admin/portfolio/import, listing stored blobs
// not yet in the portfolio.
func (h *PortfolioHandler) ImportList(c *fiber.Ctx) error {
	files, err := h.service.ListImportable(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "files": files})
}

// Import handles POST /api/admin/portfolio/import.
func (h *PortfolioHandler) Import(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	var req dto.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid files data", nil)
	}

	files := make([]service.ImportFile, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, service.ImportFile{
			Pathname:    f.Pathname,
			URL:         f.URL,
			Size:        f.Size,
			Type:        domain.FileType(f.Type),
			Title:       f.Title,
			Description: f.Description,
			Category:    f.Category,
		})
	}

	items, err := h.service.Import(c.Context(), principal.Email, files)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"imported": len(items),
		"items":    toItemResponses(items),
	})
}

func toItemResponse(item domain.PortfolioItem) dto.PortfolioItemResponse {
	return dto.PortfolioItemResponse{
		ID:           item.ID,
		Title:        item.Title,
		Description:  item.Description,
		Category:     item.Category,
		FileURL:      item.FileURL,
		FileType:     string(item.FileType),
		FileSize:     item.FileSize,
		BlobPathname: item.BlobPathname,
		ThumbnailURL: item.ThumbnailURL,
		IsFeatured:   item.IsFeatured,
		SortOrder:    item.SortOrder,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toItemResponses(items []domain.PortfolioItem) []dto.PortfolioItemResponse {
	responses := make([]dto.PortfolioItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	return responses
}

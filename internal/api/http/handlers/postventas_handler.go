package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/dto"
	"github.com/spec-kit/soporte-service/internal/service"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// PostVentasHandler manages post-sale service request endpoints.
type PostVentasHandler struct {
	service *service.PostVentaService
}

// NewPostVentasHandler constructs handler.
func NewPostVentasHandler(postVentaService *service.PostVentaService) *PostVentasHandler {
	return &PostVentasHandler{service: postVentaService}
}

// CreatePostVenta POST /postventas.
func (h *PostVentasHandler) CreatePostVenta(c *fiber.Ctx) error {
	var req dto.CreatePostVentaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.PostVentaCreateInput{
		ClienteID:       req.ClienteID,
		TipoServicio:    req.TipoServicio,
		Descripcion:     req.Descripcion,
		FechaProgramada: req.FechaProgramada,
	}
	postVenta, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": postVenta})
}

// ListPostVentas GET /postventas.
func (h *PostVentasHandler) ListPostVentas(c *fiber.Ctx) error {
	filter := service.PostVentaFilter{
		Estados:   parseEstados(c),
		ClienteID: c.Query("clienteId"),
	}
	postVentas := h.service.List(c.Context(), filter)
	return c.JSON(fiber.Map{"data": postVentas})
}

// GetPostVenta GET /postventas/:id.
func (h *PostVentasHandler) GetPostVenta(c *fiber.Ctx) error {
	postVenta, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postVenta})
}

// UpdatePostVenta PATCH /postventas/:id.
func (h *PostVentasHandler) UpdatePostVenta(c *fiber.Ctx) error {
	var req dto.UpdatePostVentaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.PostVentaUpdateInput{
		TipoServicio:    req.TipoServicio,
		Descripcion:     req.Descripcion,
		FechaProgramada: req.FechaProgramada,
		Status:          req.Status.ToServiceChange(),
	}
	postVenta, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postVenta})
}

// PostVentaHistory GET /postventas/:id/historial.
func (h *PostVentasHandler) PostVentaHistory(c *fiber.Ctx) error {
	history, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}

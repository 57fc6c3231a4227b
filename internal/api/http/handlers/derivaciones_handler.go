package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/dto"
	"github.com/spec-kit/soporte-service/internal/service"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// DerivacionesHandler manages external-plant work order endpoints.
type DerivacionesHandler struct {
	service *service.DerivacionService
}

// NewDerivacionesHandler constructs handler.
func NewDerivacionesHandler(derivacionService *service.DerivacionService) *DerivacionesHandler {
	return &DerivacionesHandler{service: derivacionService}
}

// CreateDerivacion POST /derivaciones.
func (h *DerivacionesHandler) CreateDerivacion(c *fiber.Ctx) error {
	var req dto.CreateDerivacionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.DerivacionCreateInput{
		TicketID:    req.TicketID,
		ClienteID:   req.ClienteID,
		Zona:        req.Zona,
		Prioridad:   req.Prioridad,
		Descripcion: req.Descripcion,
	}
	derivacion, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": derivacion})
}

// ListDerivaciones GET /derivaciones.
func (h *DerivacionesHandler) ListDerivaciones(c *fiber.Ctx) error {
	filter := service.DerivacionFilter{
		Estados:  parseEstados(c),
		TicketID: c.Query("ticketId"),
		Zona:     c.Query("zona"),
	}
	derivaciones := h.service.List(c.Context(), filter)
	return c.JSON(fiber.Map{"data": derivaciones})
}

// GetDerivacion GET /derivaciones/:id.
func (h *DerivacionesHandler) GetDerivacion(c *fiber.Ctx) error {
	derivacion, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": derivacion})
}

// UpdateDerivacion PATCH /derivaciones/:id. Completing an order linked to a
// ticket triggers the resolve-ticket propagation, whose per-effect outcomes
// are reported alongside the updated order.
func (h *DerivacionesHandler) UpdateDerivacion(c *fiber.Ctx) error {
	var req dto.UpdateDerivacionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.DerivacionUpdateInput{
		Zona:        req.Zona,
		Prioridad:   req.Prioridad,
		Descripcion: req.Descripcion,
		Status:      req.Status.ToServiceChange(),
	}
	derivacion, effects, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PropagatedUpdateResponse{
		Item:        derivacion,
		Propagacion: effects,
	}})
}

// DerivacionHistory GET /derivaciones/:id/historial.
func (h *DerivacionesHandler) DerivacionHistory(c *fiber.Ctx) error {
	history, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}

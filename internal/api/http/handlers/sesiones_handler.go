package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/dto"
	"github.com/spec-kit/soporte-service/internal/service"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// SesionesHandler manages remote support session endpoints.
type SesionesHandler struct {
	service *service.SesionService
}

// NewSesionesHandler constructs handler.
func NewSesionesHandler(sesionService *service.SesionService) *SesionesHandler {
	return &SesionesHandler{service: sesionService}
}

// CreateSesion POST /sesiones-remotas.
func (h *SesionesHandler) CreateSesion(c *fiber.Ctx) error {
	var req dto.CreateSesionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.SesionCreateInput{
		TicketID:     req.TicketID,
		ClienteID:    req.ClienteID,
		TecnicoID:    req.TecnicoID,
		MotivoSesion: req.MotivoSesion,
	}
	sesion, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": sesion})
}

// ListSesiones GET /sesiones-remotas.
func (h *SesionesHandler) ListSesiones(c *fiber.Ctx) error {
	filter := service.SesionFilter{
		Estados:  parseEstados(c),
		TicketID: c.Query("ticketId"),
	}
	sesiones := h.service.List(c.Context(), filter)
	return c.JSON(fiber.Map{"data": sesiones})
}

// GetSesion GET /sesiones-remotas/:id.
func (h *SesionesHandler) GetSesion(c *fiber.Ctx) error {
	sesion, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sesion})
}

// UpdateSesion PATCH /sesiones-remotas/:id. Closing a session as derived to
// a visit or to external plant spawns follow-up items through propagation;
// each effect's outcome is reported alongside the updated session.
func (h *SesionesHandler) UpdateSesion(c *fiber.Ctx) error {
	var req dto.UpdateSesionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.SesionUpdateInput{
		TecnicoID:    req.TecnicoID,
		MotivoSesion: req.MotivoSesion,
		Status:       req.Status.ToServiceChange(),
	}
	sesion, effects, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PropagatedUpdateResponse{
		Item:        sesion,
		Propagacion: effects,
	}})
}

// SesionHistory GET /sesiones-remotas/:id/historial.
func (h *SesionesHandler) SesionHistory(c *fiber.Ctx) error {
	history, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}

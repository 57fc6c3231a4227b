package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/dto"
	"github.com/spec-kit/soporte-service/internal/service"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// VisitasHandler manages field visit endpoints.
type VisitasHandler struct {
	service *service.VisitaService
}

// NewVisitasHandler constructs handler.
func NewVisitasHandler(visitaService *service.VisitaService) *VisitasHandler {
	return &VisitasHandler{service: visitaService}
}

// CreateVisita POST /visitas.
func (h *VisitasHandler) CreateVisita(c *fiber.Ctx) error {
	var req dto.CreateVisitaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.VisitaCreateInput{
		TicketID:        req.TicketID,
		ClienteID:       req.ClienteID,
		TecnicoID:       req.TecnicoID,
		FechaProgramada: req.FechaProgramada,
		Prioridad:       req.Prioridad,
		Descripcion:     req.Descripcion,
	}
	visita, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": visita})
}

// ListVisitas GET /visitas.
func (h *VisitasHandler) ListVisitas(c *fiber.Ctx) error {
	filter := service.VisitaFilter{
		Estados:   parseEstados(c),
		TicketID:  c.Query("ticketId"),
		TecnicoID: c.Query("tecnicoId"),
	}
	visitas := h.service.List(c.Context(), filter)
	return c.JSON(fiber.Map{"data": visitas})
}

// GetVisita GET /visitas/:id.
func (h *VisitasHandler) GetVisita(c *fiber.Ctx) error {
	visita, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visita})
}

// UpdateVisita PATCH /visitas/:id.
func (h *VisitasHandler) UpdateVisita(c *fiber.Ctx) error {
	var req dto.UpdateVisitaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.VisitaUpdateInput{
		TecnicoID:       req.TecnicoID,
		FechaProgramada: req.FechaProgramada,
		Prioridad:       req.Prioridad,
		Descripcion:     req.Descripcion,
		Status:          req.Status.ToServiceChange(),
	}
	visita, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visita})
}

// VisitaHistory GET /visitas/:id/historial.
func (h *VisitasHandler) VisitaHistory(c *fiber.Ctx) error {
	history, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}

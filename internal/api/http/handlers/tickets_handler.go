package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/dto"
	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/service"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.TicketCreateInput{
		ClienteID:   req.ClienteID,
		Asunto:      req.Asunto,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Prioridad:   req.Prioridad,
		SLAObjetivo: req.SLAObjetivo,
	}
	ticket, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := service.TicketFilter{
		Estados:   parseEstados(c),
		ClienteID: c.Query("clienteId"),
		Prioridad: domain.Priority(c.Query("prioridad")),
	}
	tickets := h.service.List(c.Context(), filter)
	return c.JSON(fiber.Map{"data": tickets})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// UpdateTicket PATCH /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.TicketUpdateInput{
		Asunto:      req.Asunto,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Prioridad:   req.Prioridad,
		Status:      req.Status.ToServiceChange(),
	}
	ticket, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// TicketHistory GET /tickets/:id/historial.
func (h *TicketsHandler) TicketHistory(c *fiber.Ctx) error {
	history, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}

// DeleteTicket DELETE /tickets/:id. Deleting a ticket with dependent visits
// or remote sessions requires cascade=true, which removes them too.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	cascade := strings.EqualFold(c.Query("cascade"), "true")
	cascaded, err := h.service.Delete(c.Context(), c.Params("id"), cascade)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteTicketResponse{
		ID:        c.Params("id"),
		Eliminado: true,
		Cascada:   cascaded,
	}})
}

// parseEstados reads the comma-separated estado filter shared by every
// collection listing.
func parseEstados(c *fiber.Ctx) []string {
	raw := c.Query("estado")
	if raw == "" {
		return nil
	}
	var estados []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			estados = append(estados, trimmed)
		}
	}
	return estados
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/dto"
	"github.com/spec-kit/soporte-service/internal/service"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// AveriasHandler manages network outage endpoints.
type AveriasHandler struct {
	service *service.AveriaService
}

// NewAveriasHandler constructs handler.
func NewAveriasHandler(averiaService *service.AveriaService) *AveriasHandler {
	return &AveriasHandler{service: averiaService}
}

// CreateAveria POST /averias.
func (h *AveriasHandler) CreateAveria(c *fiber.Ctx) error {
	var req dto.CreateAveriaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.AveriaCreateInput{
		Nodo:              req.Nodo,
		Zona:              req.Zona,
		Descripcion:       req.Descripcion,
		ClientesAfectados: req.ClientesAfectados,
		Prioridad:         req.Prioridad,
	}
	averia, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": averia})
}

// ListAverias GET /averias.
func (h *AveriasHandler) ListAverias(c *fiber.Ctx) error {
	filter := service.AveriaFilter{
		Estados: parseEstados(c),
		Nodo:    c.Query("nodo"),
	}
	averias := h.service.List(c.Context(), filter)
	return c.JSON(fiber.Map{"data": averias})
}

// GetAveria GET /averias/:id.
func (h *AveriasHandler) GetAveria(c *fiber.Ctx) error {
	averia, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": averia})
}

// UpdateAveria PATCH /averias/:id.
func (h *AveriasHandler) UpdateAveria(c *fiber.Ctx) error {
	var req dto.UpdateAveriaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.AveriaUpdateInput{
		Descripcion:       req.Descripcion,
		ClientesAfectados: req.ClientesAfectados,
		Prioridad:         req.Prioridad,
		Status:            req.Status.ToServiceChange(),
	}
	averia, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": averia})
}

// AveriaHistory GET /averias/:id/historial.
func (h *AveriasHandler) AveriaHistory(c *fiber.Ctx) error {
	history, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/dto"
	"github.com/spec-kit/soporte-service/internal/auth"
	"github.com/spec-kit/soporte-service/internal/service"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// OperatorsHandler manages operator authentication endpoints.
type OperatorsHandler struct {
	service *service.AuthService
}

// NewOperatorsHandler constructs handler.
func NewOperatorsHandler(authService *service.AuthService) *OperatorsHandler {
	return &OperatorsHandler{service: authService}
}

// Login POST /auth/login.
func (h *OperatorsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	token, expiresAt, operador, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Operador:  dto.NewOperatorResponse(operador),
	}})
}

// Me GET /auth/me.
func (h *OperatorsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operador == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	return c.JSON(fiber.Map{"data": dto.NewOperatorResponse(principal.Operador)})
}

// ChangePassword POST /auth/password/change.
func (h *OperatorsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operador == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.ChangePassword(c.Context(), principal.Operador.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

package dto

import (
	"time"

	"github.com/spec-kit/soporte-service/internal/domain"
)

// LoginRequest payload for operator login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Operador  OperatorResponse `json:"operador"`
}

// OperatorResponse public view of an operator.
type OperatorResponse struct {
	ID     string              `json:"id"`
	Nombre string              `json:"nombre"`
	Email  string              `json:"email"`
	Role   domain.OperatorRole `json:"rol"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// NewOperatorResponse maps a domain operator to its public view.
func NewOperatorResponse(op *domain.Operador) OperatorResponse {
	if op == nil {
		return OperatorResponse{}
	}
	return OperatorResponse{ID: op.ID, Nombre: op.Nombre, Email: op.Email, Role: op.Role}
}

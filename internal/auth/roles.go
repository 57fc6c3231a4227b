package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/domain"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// RequireRole ensures the principal has one of the allowed roles. With no
// roles listed, any authenticated operator passes.
func RequireRole(allowed ...domain.OperatorRole) fiber.Handler {
	allowedSet := make(map[domain.OperatorRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Operador == nil {
			return apperrors.NewUnauthorized("operator required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

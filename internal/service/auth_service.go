package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/soporte-service/internal/auth"
	"github.com/spec-kit/soporte-service/internal/config"
	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/repository"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// AuthService authenticates back-office operators.
type AuthService struct {
	operators  repository.OperatorRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, operators repository.OperatorRepository) *AuthService {
	return &AuthService{
		operators:  operators,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for the middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Operador, error) {
	operador, err := s.operators.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	if !operador.Active {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(operador.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	token, expiresAt, err := s.tokens.GenerateToken(operador.ID, operador.Role)
	if err != nil {
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	return token, expiresAt, operador, nil
}

// ChangePassword rotates the operator's password after verifying the current
// one.
func (s *AuthService) ChangePassword(ctx context.Context, operadorID, current, next string) error {
	operador, err := s.operators.GetByID(ctx, operadorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("operador", map[string]any{"id": operadorID})
		}
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(operador.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if len(next) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	hashed, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	return apperrors.MapError(s.operators.UpdatePassword(ctx, operadorID, hashed))
}

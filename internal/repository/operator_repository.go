package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/soporte-service/internal/domain"
)

// OperatorRepository encapsulates back-office account persistence.
type OperatorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Operador, error)
	GetByEmail(ctx context.Context, email string) (*domain.Operador, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type operatorRepository struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository instantiates the repository.
func NewOperatorRepository(pool *pgxpool.Pool) OperatorRepository {
	return &operatorRepository{pool: pool}
}

const operatorColumns = `id, email, nombre, role, password_hash, active, created_at`

func (r *operatorRepository) GetByID(ctx context.Context, id string) (*domain.Operador, error) {
	return r.fetchSingle(ctx, `SELECT `+operatorColumns+` FROM operadores WHERE id=$1`, id)
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Operador, error) {
	return r.fetchSingle(ctx, `SELECT `+operatorColumns+` FROM operadores WHERE email=$1`, email)
}

func (r *operatorRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE operadores SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	return err
}

func (r *operatorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Operador, error) {
	var op domain.Operador
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&op.ID,
		&op.Email,
		&op.Nombre,
		&op.Role,
		&op.PasswordHash,
		&op.Active,
		&op.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &op, nil
}

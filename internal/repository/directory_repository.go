package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/soporte-service/internal/domain"
)

// DirectoryRepository is the read-only client/technician directory. The
// engine only copies display fields out of it; it never writes.
type DirectoryRepository interface {
	GetCliente(ctx context.Context, id string) (*domain.Cliente, error)
	GetTecnico(ctx context.Context, id string) (*domain.Tecnico, error)
}

type directoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository instantiates the repository.
func NewDirectoryRepository(pool *pgxpool.Pool) DirectoryRepository {
	return &directoryRepository{pool: pool}
}

func (r *directoryRepository) GetCliente(ctx context.Context, id string) (*domain.Cliente, error) {
	const query = `
        SELECT id, nombre, direccion, nodo, plan, tecnologia, telefono
        FROM clientes WHERE id=$1`
	var cliente domain.Cliente
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&cliente.ID,
		&cliente.Nombre,
		&cliente.Direccion,
		&cliente.Nodo,
		&cliente.Plan,
		&cliente.Tecnologia,
		&cliente.Telefono,
	); err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (r *directoryRepository) GetTecnico(ctx context.Context, id string) (*domain.Tecnico, error) {
	const query = `
        SELECT id, nombre, zona, telefono
        FROM tecnicos WHERE id=$1`
	var tecnico domain.Tecnico
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tecnico.ID,
		&tecnico.Nombre,
		&tecnico.Zona,
		&tecnico.Telefono,
	); err != nil {
		return nil, err
	}
	return &tecnico, nil
}

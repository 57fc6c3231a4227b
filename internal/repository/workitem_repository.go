package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/soporte-service/internal/domain"
)

// collectionTables maps each work-item collection to its snapshot table.
// Snapshots are stored as full JSONB documents under a fixed key per
// collection; schema changes are additive-only.
var collectionTables = map[domain.Kind]string{
	domain.KindTicket:       "tickets",
	domain.KindAveria:       "averias",
	domain.KindVisita:       "visitas",
	domain.KindDerivacion:   "derivaciones",
	domain.KindSesionRemota: "sesiones_remotas",
	domain.KindPostVenta:    "postventas",
}

// WorkItemRepository persists work-item snapshots per collection.
type WorkItemRepository interface {
	Save(ctx context.Context, collection domain.Kind, id string, doc []byte) error
	Delete(ctx context.Context, collection domain.Kind, id string) error
	LoadAll(ctx context.Context, collection domain.Kind) (map[string][]byte, error)
}

type workItemRepository struct {
	pool *pgxpool.Pool
}

// NewWorkItemRepository instantiates the repository.
func NewWorkItemRepository(pool *pgxpool.Pool) WorkItemRepository {
	return &workItemRepository{pool: pool}
}

func tableFor(collection domain.Kind) (string, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return "", fmt.Errorf("unknown collection %q", collection)
	}
	return table, nil
}

func (r *workItemRepository) Save(ctx context.Context, collection domain.Kind, id string, doc []byte) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        INSERT INTO %s (id, doc, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`, table)
	_, err = r.pool.Exec(ctx, query, id, doc)
	return err
}

func (r *workItemRepository) Delete(ctx context.Context, collection domain.Kind, id string) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, table), id)
	return err
}

func (r *workItemRepository) LoadAll(ctx context.Context, collection domain.Kind) (map[string][]byte, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT id, doc FROM %s`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		result[id] = doc
	}
	return result, rows.Err()
}

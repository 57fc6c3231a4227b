package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/events"
	"github.com/spec-kit/soporte-service/internal/lifecycle"
	"github.com/spec-kit/soporte-service/internal/observability"
	"github.com/spec-kit/soporte-service/internal/store"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// AveriaService coordinates the outage lifecycle.
type AveriaService struct {
	store      *store.Store
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// NewAveriaService constructs the service.
func NewAveriaService(st *store.Store, dispatcher events.Dispatcher, metrics *observability.Metrics) *AveriaService {
	return &AveriaService{store: st, dispatcher: dispatcher, metrics: metrics}
}

// AveriaCreateInput describes outage creation payload.
type AveriaCreateInput struct {
	Nodo              string
	Zona              string
	Descripcion       string
	ClientesAfectados int
	Prioridad         domain.Priority
}

// AveriaUpdateInput carries optional field edits plus an optional status
// change.
type AveriaUpdateInput struct {
	Descripcion       *string
	ClientesAfectados *int
	Prioridad         *domain.Priority
	Status            *StatusChange
}

// AveriaFilter narrows listings.
type AveriaFilter struct {
	Estados []string
	Nodo    string
}

// Create registers a new outage.
func (s *AveriaService) Create(ctx context.Context, input AveriaCreateInput) (*domain.Averia, error) {
	if strings.TrimSpace(input.Descripcion) == "" {
		return nil, apperrors.NewValidationError("descripcion required", nil)
	}
	averia := &domain.Averia{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(s.store.Averias.IDs(), domain.KindAveria.IDPrefix()),
			Estado: lifecycle.InitialStatus(domain.KindAveria),
			Fecha:  time.Now(),
		},
		Nodo:              input.Nodo,
		Zona:              input.Zona,
		Descripcion:       strings.TrimSpace(input.Descripcion),
		ClientesAfectados: input.ClientesAfectados,
		Prioridad:         input.Prioridad,
	}
	s.store.Averias.Put(averia)
	publishCreated(ctx, s.dispatcher, averia, "")
	return averia, nil
}

// Update merges field edits and applies the optional status change.
func (s *AveriaService) Update(ctx context.Context, id string, input AveriaUpdateInput) (*domain.Averia, error) {
	averia, ok := s.store.Averias.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("averia", map[string]any{"id": id})
	}
	previous := averia.Estado
	changed, err := applyStatusChange(averia, input.Status, s.metrics)
	if err != nil {
		return nil, err
	}
	if input.Descripcion != nil {
		averia.Descripcion = *input.Descripcion
	}
	if input.ClientesAfectados != nil {
		averia.ClientesAfectados = *input.ClientesAfectados
	}
	if input.Prioridad != nil {
		averia.Prioridad = *input.Prioridad
	}
	s.store.Averias.Put(averia)
	if changed {
		publishStatusChanged(ctx, s.dispatcher, averia, previous, input.Status.Motivo)
	}
	return averia, nil
}

// Get fetches an outage.
func (s *AveriaService) Get(ctx context.Context, id string) (*domain.Averia, error) {
	averia, ok := s.store.Averias.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("averia", map[string]any{"id": id})
	}
	return averia, nil
}

// List returns outages matching the filter.
func (s *AveriaService) List(ctx context.Context, filter AveriaFilter) []*domain.Averia {
	result := make([]*domain.Averia, 0)
	for _, averia := range s.store.Averias.List() {
		if !matchesEstados(averia.Estado, filter.Estados) {
			continue
		}
		if filter.Nodo != "" && averia.Nodo != filter.Nodo {
			continue
		}
		result = append(result, averia)
	}
	return result
}

// History returns the audit trail, newest first.
func (s *AveriaService) History(ctx context.Context, id string) ([]domain.StateTransition, error) {
	averia, ok := s.store.Averias.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("averia", map[string]any{"id": id})
	}
	return averia.Historial, nil
}

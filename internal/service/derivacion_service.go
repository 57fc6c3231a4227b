package service

import (
	"context"
	"time"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/events"
	"github.com/spec-kit/soporte-service/internal/lifecycle"
	"github.com/spec-kit/soporte-service/internal/observability"
	"github.com/spec-kit/soporte-service/internal/store"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// DerivacionService coordinates the external-plant work-order lifecycle.
// Completing an order linked to a ticket propagates the resolution upward.
type DerivacionService struct {
	store       *store.Store
	directory   *DirectoryService
	propagation *PropagationEngine
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
}

// NewDerivacionService constructs the service.
func NewDerivacionService(st *store.Store, directory *DirectoryService, propagation *PropagationEngine, dispatcher events.Dispatcher, metrics *observability.Metrics) *DerivacionService {
	return &DerivacionService{store: st, directory: directory, propagation: propagation, dispatcher: dispatcher, metrics: metrics}
}

// DerivacionCreateInput describes manual work-order creation; orders can also
// be spawned by propagation from a remote session.
type DerivacionCreateInput struct {
	TicketID    string
	ClienteID   string
	Zona        string
	Prioridad   domain.Priority
	Descripcion string
}

// DerivacionUpdateInput carries optional field edits plus an optional status
// change.
type DerivacionUpdateInput struct {
	Zona        *string
	Prioridad   *domain.Priority
	Descripcion *string
	Status      *StatusChange
}

// DerivacionFilter narrows listings.
type DerivacionFilter struct {
	Estados  []string
	TicketID string
	Zona     string
}

// Create registers a new external-plant order.
func (s *DerivacionService) Create(ctx context.Context, input DerivacionCreateInput) (*domain.Derivacion, error) {
	cliente := s.directory.Cliente(ctx, input.ClienteID)
	zona := input.Zona
	if zona == "" {
		zona = cliente.Nodo
	}
	derivacion := &domain.Derivacion{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(s.store.Derivaciones.IDs(), domain.KindDerivacion.IDPrefix()),
			Estado: lifecycle.InitialStatus(domain.KindDerivacion),
			Fecha:  time.Now(),
		},
		TicketID:      input.TicketID,
		ClienteID:     input.ClienteID,
		ClienteNombre: cliente.Nombre,
		Zona:          zona,
		Prioridad:     input.Prioridad,
		Descripcion:   input.Descripcion,
	}
	if derivacion.Prioridad == "" {
		derivacion.Prioridad = domain.PriorityMedia
	}
	s.store.Derivaciones.Put(derivacion)
	publishCreated(ctx, s.dispatcher, derivacion, derivacion.ClienteID)
	return derivacion, nil
}

// Update merges field edits and applies the optional status change. When the
// order completes and is linked to a ticket, the propagation engine runs
// after the commit; its per-effect outcomes are returned alongside.
func (s *DerivacionService) Update(ctx context.Context, id string, input DerivacionUpdateInput) (*domain.Derivacion, []EffectResult, error) {
	derivacion, ok := s.store.Derivaciones.Get(id)
	if !ok {
		return nil, nil, apperrors.NewNotFound("derivacion", map[string]any{"id": id})
	}
	previous := derivacion.Estado
	changed, err := applyStatusChange(derivacion, input.Status, s.metrics)
	if err != nil {
		return nil, nil, err
	}
	if input.Zona != nil {
		derivacion.Zona = *input.Zona
	}
	if input.Prioridad != nil {
		derivacion.Prioridad = *input.Prioridad
	}
	if input.Descripcion != nil {
		derivacion.Descripcion = *input.Descripcion
	}
	s.store.Derivaciones.Put(derivacion)

	var results []EffectResult
	if changed {
		publishStatusChanged(ctx, s.dispatcher, derivacion, previous, input.Status.Motivo)
		results = s.propagation.Apply(ctx, PendingEffects(derivacion, derivacion.Estado))
	}
	return derivacion, results, nil
}

// Get fetches a work order.
func (s *DerivacionService) Get(ctx context.Context, id string) (*domain.Derivacion, error) {
	derivacion, ok := s.store.Derivaciones.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("derivacion", map[string]any{"id": id})
	}
	return derivacion, nil
}

// List returns work orders matching the filter.
func (s *DerivacionService) List(ctx context.Context, filter DerivacionFilter) []*domain.Derivacion {
	result := make([]*domain.Derivacion, 0)
	for _, derivacion := range s.store.Derivaciones.List() {
		if !matchesEstados(derivacion.Estado, filter.Estados) {
			continue
		}
		if filter.TicketID != "" && derivacion.TicketID != filter.TicketID {
			continue
		}
		if filter.Zona != "" && derivacion.Zona != filter.Zona {
			continue
		}
		result = append(result, derivacion)
	}
	return result
}

// History returns the audit trail, newest first.
func (s *DerivacionService) History(ctx context.Context, id string) ([]domain.StateTransition, error) {
	derivacion, ok := s.store.Derivaciones.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("derivacion", map[string]any{"id": id})
	}
	return derivacion.Historial, nil
}

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

// VisitaService coordinates the field-visit lifecycle.
type VisitaService struct {
	store      *store.Store
	directory  *DirectoryService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// NewVisitaService constructs the service.
func NewVisitaService(st *store.Store, directory *DirectoryService, dispatcher events.Dispatcher, metrics *observability.Metrics) *VisitaService {
	return &VisitaService{store: st, directory: directory, dispatcher: dispatcher, metrics: metrics}
}

// VisitaCreateInput describes manual visit creation; visits can also be
// spawned by propagation from a remote session.
type VisitaCreateInput struct {
	TicketID        string
	ClienteID       string
	TecnicoID       string
	FechaProgramada *time.Time
	Prioridad       domain.Priority
	Descripcion     string
}

// VisitaUpdateInput carries optional field edits plus an optional status
// change.
type VisitaUpdateInput struct {
	TecnicoID       *string
	FechaProgramada *time.Time
	Prioridad       *domain.Priority
	Descripcion     *string
	Status          *StatusChange
}

// VisitaFilter narrows listings.
type VisitaFilter struct {
	Estados   []string
	TicketID  string
	TecnicoID string
}

// Create registers a new field visit.
func (s *VisitaService) Create(ctx context.Context, input VisitaCreateInput) (*domain.Visita, error) {
	cliente := s.directory.Cliente(ctx, input.ClienteID)
	tecnico := s.directory.Tecnico(ctx, input.TecnicoID)
	visita := &domain.Visita{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(s.store.Visitas.IDs(), domain.KindVisita.IDPrefix()),
			Estado: lifecycle.InitialStatus(domain.KindVisita),
			Fecha:  time.Now(),
		},
		TicketID:        input.TicketID,
		ClienteID:       input.ClienteID,
		ClienteNombre:   cliente.Nombre,
		Direccion:       cliente.Direccion,
		Nodo:            cliente.Nodo,
		Tecnologia:      cliente.Tecnologia,
		TecnicoID:       input.TecnicoID,
		TecnicoNombre:   tecnico.Nombre,
		FechaProgramada: input.FechaProgramada,
		Prioridad:       input.Prioridad,
		Descripcion:     input.Descripcion,
	}
	if visita.Prioridad == "" {
		visita.Prioridad = domain.PriorityMedia
	}
	s.store.Visitas.Put(visita)
	publishCreated(ctx, s.dispatcher, visita, visita.ClienteID)
	return visita, nil
}

// Update merges field edits and applies the optional status change.
func (s *VisitaService) Update(ctx context.Context, id string, input VisitaUpdateInput) (*domain.Visita, error) {
	visita, ok := s.store.Visitas.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("visita", map[string]any{"id": id})
	}
	previous := visita.Estado
	changed, err := applyStatusChange(visita, input.Status, s.metrics)
	if err != nil {
		return nil, err
	}
	if input.TecnicoID != nil {
		visita.TecnicoID = *input.TecnicoID
		visita.TecnicoNombre = s.directory.Tecnico(ctx, *input.TecnicoID).Nombre
	}
	if input.FechaProgramada != nil {
		visita.FechaProgramada = input.FechaProgramada
	}
	if input.Prioridad != nil {
		visita.Prioridad = *input.Prioridad
	}
	if input.Descripcion != nil {
		visita.Descripcion = *input.Descripcion
	}
	s.store.Visitas.Put(visita)
	if changed {
		publishStatusChanged(ctx, s.dispatcher, visita, previous, input.Status.Motivo)
	}
	return visita, nil
}

// Get fetches a visit.
func (s *VisitaService) Get(ctx context.Context, id string) (*domain.Visita, error) {
	visita, ok := s.store.Visitas.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("visita", map[string]any{"id": id})
	}
	return visita, nil
}

// List returns visits matching the filter.
func (s *VisitaService) List(ctx context.Context, filter VisitaFilter) []*domain.Visita {
	result := make([]*domain.Visita, 0)
	for _, visita := range s.store.Visitas.List() {
		if !matchesEstados(visita.Estado, filter.Estados) {
			continue
		}
		if filter.TicketID != "" && visita.TicketID != filter.TicketID {
			continue
		}
		if filter.TecnicoID != "" && visita.TecnicoID != filter.TecnicoID {
			continue
		}
		result = append(result, visita)
	}
	return result
}

// History returns the audit trail, newest first.
func (s *VisitaService) History(ctx context.Context, id string) ([]domain.StateTransition, error) {
	visita, ok := s.store.Visitas.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("visita", map[string]any{"id": id})
	}
	return visita.Historial, nil
}

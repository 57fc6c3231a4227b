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

// SesionService coordinates remote-support sessions. Closing a session by
// derivation spawns the linked work item and escalates the parent ticket.
type SesionService struct {
	store       *store.Store
	directory   *DirectoryService
	propagation *PropagationEngine
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
}

// NewSesionService constructs the service.
func NewSesionService(st *store.Store, directory *DirectoryService, propagation *PropagationEngine, dispatcher events.Dispatcher, metrics *observability.Metrics) *SesionService {
	return &SesionService{store: st, directory: directory, propagation: propagation, dispatcher: dispatcher, metrics: metrics}
}

// SesionCreateInput describes session creation payload.
type SesionCreateInput struct {
	TicketID     string
	ClienteID    string
	TecnicoID    string
	MotivoSesion string
}

// SesionUpdateInput carries optional field edits plus an optional status
// change.
type SesionUpdateInput struct {
	TecnicoID    *string
	MotivoSesion *string
	Status       *StatusChange
}

// SesionFilter narrows listings.
type SesionFilter struct {
	Estados  []string
	TicketID string
}

// Create opens a new remote session.
func (s *SesionService) Create(ctx context.Context, input SesionCreateInput) (*domain.SesionRemota, error) {
	cliente := s.directory.Cliente(ctx, input.ClienteID)
	sesion := &domain.SesionRemota{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(s.store.Sesiones.IDs(), domain.KindSesionRemota.IDPrefix()),
			Estado: lifecycle.InitialStatus(domain.KindSesionRemota),
			Fecha:  time.Now(),
		},
		TicketID:      input.TicketID,
		ClienteID:     input.ClienteID,
		ClienteNombre: cliente.Nombre,
		TecnicoID:     input.TecnicoID,
		MotivoSesion:  input.MotivoSesion,
	}
	s.store.Sesiones.Put(sesion)
	publishCreated(ctx, s.dispatcher, sesion, sesion.ClienteID)
	return sesion, nil
}

// Update merges field edits and applies the optional status change. When the
// session closes by derivation, the propagation engine runs after the commit
// and its per-effect outcomes are returned alongside.
func (s *SesionService) Update(ctx context.Context, id string, input SesionUpdateInput) (*domain.SesionRemota, []EffectResult, error) {
	sesion, ok := s.store.Sesiones.Get(id)
	if !ok {
		return nil, nil, apperrors.NewNotFound("sesion remota", map[string]any{"id": id})
	}
	previous := sesion.Estado
	changed, err := applyStatusChange(sesion, input.Status, s.metrics)
	if err != nil {
		return nil, nil, err
	}
	if input.TecnicoID != nil {
		sesion.TecnicoID = *input.TecnicoID
	}
	if input.MotivoSesion != nil {
		sesion.MotivoSesion = *input.MotivoSesion
	}
	s.store.Sesiones.Put(sesion)

	var results []EffectResult
	if changed {
		publishStatusChanged(ctx, s.dispatcher, sesion, previous, input.Status.Motivo)
		results = s.propagation.Apply(ctx, PendingEffects(sesion, sesion.Estado))
	}
	return sesion, results, nil
}

// Get fetches a session.
func (s *SesionService) Get(ctx context.Context, id string) (*domain.SesionRemota, error) {
	sesion, ok := s.store.Sesiones.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("sesion remota", map[string]any{"id": id})
	}
	return sesion, nil
}

// List returns sessions matching the filter.
func (s *SesionService) List(ctx context.Context, filter SesionFilter) []*domain.SesionRemota {
	result := make([]*domain.SesionRemota, 0)
	for _, sesion := range s.store.Sesiones.List() {
		if !matchesEstados(sesion.Estado, filter.Estados) {
			continue
		}
		if filter.TicketID != "" && sesion.TicketID != filter.TicketID {
			continue
		}
		result = append(result, sesion)
	}
	return result
}

// History returns the audit trail, newest first.
func (s *SesionService) History(ctx context.Context, id string) ([]domain.StateTransition, error) {
	sesion, ok := s.store.Sesiones.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("sesion remota", map[string]any{"id": id})
	}
	return sesion.Historial, nil
}

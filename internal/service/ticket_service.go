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

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	store      *store.Store
	directory  *DirectoryService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// NewTicketService constructs the service.
func NewTicketService(st *store.Store, directory *DirectoryService, dispatcher events.Dispatcher, metrics *observability.Metrics) *TicketService {
	return &TicketService{store: st, directory: directory, dispatcher: dispatcher, metrics: metrics}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	ClienteID   string
	Asunto      string
	Descripcion string
	Categoria   string
	Prioridad   domain.Priority
	SLAObjetivo string
}

// TicketUpdateInput carries optional field edits plus an optional status
// change.
type TicketUpdateInput struct {
	Asunto      *string
	Descripcion *string
	Categoria   *string
	Prioridad   *domain.Priority
	Status      *StatusChange
}

// TicketFilter narrows listings.
type TicketFilter struct {
	Estados   []string
	ClienteID string
	Prioridad domain.Priority
}

// Create registers a new ticket with the next sequential id and the initial
// status. Client display fields are copied from the directory at creation.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Asunto) == "" {
		return nil, apperrors.NewValidationError("asunto required", nil)
	}
	cliente := s.directory.Cliente(ctx, input.ClienteID)
	ticket := &domain.Ticket{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(s.store.Tickets.IDs(), domain.KindTicket.IDPrefix()),
			Estado: lifecycle.InitialStatus(domain.KindTicket),
			Fecha:  time.Now(),
		},
		ClienteID:     input.ClienteID,
		ClienteNombre: cliente.Nombre,
		Direccion:     cliente.Direccion,
		Nodo:          cliente.Nodo,
		Asunto:        strings.TrimSpace(input.Asunto),
		Descripcion:   strings.TrimSpace(input.Descripcion),
		Categoria:     input.Categoria,
		Prioridad:     input.Prioridad,
		SLAObjetivo:   input.SLAObjetivo,
	}
	if ticket.Prioridad == "" {
		ticket.Prioridad = domain.PriorityMedia
	}
	s.store.Tickets.Put(ticket)
	publishCreated(ctx, s.dispatcher, ticket, ticket.ClienteID)
	return ticket, nil
}

// Update merges field edits and applies the optional status change. The
// in-memory commit happens only after the full pipeline accepts the change.
func (s *TicketService) Update(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, ok := s.store.Tickets.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	previous := ticket.Estado
	changed, err := applyStatusChange(ticket, input.Status, s.metrics)
	if err != nil {
		return nil, err
	}
	if input.Asunto != nil {
		ticket.Asunto = *input.Asunto
	}
	if input.Descripcion != nil {
		ticket.Descripcion = *input.Descripcion
	}
	if input.Categoria != nil {
		ticket.Categoria = *input.Categoria
	}
	if input.Prioridad != nil {
		ticket.Prioridad = *input.Prioridad
	}
	s.store.Tickets.Put(ticket)
	if changed {
		publishStatusChanged(ctx, s.dispatcher, ticket, previous, input.Status.Motivo)
	}
	return ticket, nil
}

// Get fetches a ticket.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := s.store.Tickets.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// List returns tickets matching the filter, ordered by id.
func (s *TicketService) List(ctx context.Context, filter TicketFilter) []*domain.Ticket {
	result := make([]*domain.Ticket, 0)
	for _, ticket := range s.store.Tickets.List() {
		if !matchesEstados(ticket.Estado, filter.Estados) {
			continue
		}
		if filter.ClienteID != "" && ticket.ClienteID != filter.ClienteID {
			continue
		}
		if filter.Prioridad != "" && ticket.Prioridad != filter.Prioridad {
			continue
		}
		result = append(result, ticket)
	}
	return result
}

// History returns the audit trail, newest first.
func (s *TicketService) History(ctx context.Context, id string) ([]domain.StateTransition, error) {
	ticket, ok := s.store.Tickets.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket.Historial, nil
}

// Delete removes a ticket. With cascade unset, any linked Visita or
// SesionRemota blocks the delete; with cascade set, the linked items are
// removed too as an explicit operator action. Returns the cascaded ids.
func (s *TicketService) Delete(ctx context.Context, id string, cascade bool) ([]string, error) {
	ticket, ok := s.store.Tickets.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}

	var visitas, sesiones []string
	for _, visita := range s.store.Visitas.List() {
		if visita.TicketID == id {
			visitas = append(visitas, visita.ID)
		}
	}
	for _, sesion := range s.store.Sesiones.List() {
		if sesion.TicketID == id {
			sesiones = append(sesiones, sesion.ID)
		}
	}

	if !cascade && (len(visitas) > 0 || len(sesiones) > 0) {
		return nil, apperrors.NewHasDependents(id, map[string]any{
			"visitas":         visitas,
			"sesionesRemotas": sesiones,
		})
	}

	cascaded := make([]string, 0, len(visitas)+len(sesiones))
	for _, visitaID := range visitas {
		if s.store.Visitas.Delete(visitaID) {
			cascaded = append(cascaded, visitaID)
		}
	}
	for _, sesionID := range sesiones {
		if s.store.Sesiones.Delete(sesionID) {
			cascaded = append(cascaded, sesionID)
		}
	}
	s.store.Tickets.Delete(ticket.ID)

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventWorkItemDeleted,
		Collection: domain.KindTicket,
		WorkItemID: ticket.ID,
		Payload:    events.WorkItemDeletedPayload{Cascaded: cascaded},
	})
	return cascaded, nil
}

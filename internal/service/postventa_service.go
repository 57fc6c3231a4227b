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

// PostVentaService coordinates post-sale service requests.
type PostVentaService struct {
	store      *store.Store
	directory  *DirectoryService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// NewPostVentaService constructs the service.
func NewPostVentaService(st *store.Store, directory *DirectoryService, dispatcher events.Dispatcher, metrics *observability.Metrics) *PostVentaService {
	return &PostVentaService{store: st, directory: directory, dispatcher: dispatcher, metrics: metrics}
}

// PostVentaCreateInput describes request creation payload.
type PostVentaCreateInput struct {
	ClienteID       string
	TipoServicio    string
	Descripcion     string
	FechaProgramada *time.Time
}

// PostVentaUpdateInput carries optional field edits plus an optional status
// change.
type PostVentaUpdateInput struct {
	TipoServicio    *string
	Descripcion     *string
	FechaProgramada *time.Time
	Status          *StatusChange
}

// PostVentaFilter narrows listings.
type PostVentaFilter struct {
	Estados   []string
	ClienteID string
}

// Create registers a new post-sale request.
func (s *PostVentaService) Create(ctx context.Context, input PostVentaCreateInput) (*domain.PostVenta, error) {
	cliente := s.directory.Cliente(ctx, input.ClienteID)
	postventa := &domain.PostVenta{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(s.store.PostVentas.IDs(), domain.KindPostVenta.IDPrefix()),
			Estado: lifecycle.InitialStatus(domain.KindPostVenta),
			Fecha:  time.Now(),
		},
		ClienteID:       input.ClienteID,
		ClienteNombre:   cliente.Nombre,
		TipoServicio:    input.TipoServicio,
		Descripcion:     input.Descripcion,
		FechaProgramada: input.FechaProgramada,
	}
	s.store.PostVentas.Put(postventa)
	publishCreated(ctx, s.dispatcher, postventa, postventa.ClienteID)
	return postventa, nil
}

// Update merges field edits and applies the optional status change.
func (s *PostVentaService) Update(ctx context.Context, id string, input PostVentaUpdateInput) (*domain.PostVenta, error) {
	postventa, ok := s.store.PostVentas.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("postventa", map[string]any{"id": id})
	}
	previous := postventa.Estado
	changed, err := applyStatusChange(postventa, input.Status, s.metrics)
	if err != nil {
		return nil, err
	}
	if input.TipoServicio != nil {
		postventa.TipoServicio = *input.TipoServicio
	}
	if input.Descripcion != nil {
		postventa.Descripcion = *input.Descripcion
	}
	if input.FechaProgramada != nil {
		postventa.FechaProgramada = input.FechaProgramada
	}
	s.store.PostVentas.Put(postventa)
	if changed {
		publishStatusChanged(ctx, s.dispatcher, postventa, previous, input.Status.Motivo)
	}
	return postventa, nil
}

// Get fetches a request.
func (s *PostVentaService) Get(ctx context.Context, id string) (*domain.PostVenta, error) {
	postventa, ok := s.store.PostVentas.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("postventa", map[string]any{"id": id})
	}
	return postventa, nil
}

// List returns requests matching the filter.
func (s *PostVentaService) List(ctx context.Context, filter PostVentaFilter) []*domain.PostVenta {
	result := make([]*domain.PostVenta, 0)
	for _, postventa := range s.store.PostVentas.List() {
		if !matchesEstados(postventa.Estado, filter.Estados) {
			continue
		}
		if filter.ClienteID != "" && postventa.ClienteID != filter.ClienteID {
			continue
		}
		result = append(result, postventa)
	}
	return result
}

// History returns the audit trail, newest first.
func (s *PostVentaService) History(ctx context.Context, id string) ([]domain.StateTransition, error) {
	postventa, ok := s.store.PostVentas.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("postventa", map[string]any{"id": id})
	}
	return postventa.Historial, nil
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/events"
	"github.com/spec-kit/soporte-service/internal/observability"
	"github.com/spec-kit/soporte-service/internal/store"
)

// stubDirectoryRepo serves a fixed set of directory records.
type stubDirectoryRepo struct {
	clientes map[string]*domain.Cliente
	tecnicos map[string]*domain.Tecnico
}

func (s *stubDirectoryRepo) GetCliente(ctx context.Context, id string) (*domain.Cliente, error) {
	if cliente, ok := s.clientes[id]; ok {
		return cliente, nil
	}
	return nil, errors.New("cliente not found")
}

func (s *stubDirectoryRepo) GetTecnico(ctx context.Context, id string) (*domain.Tecnico, error) {
	if tecnico, ok := s.tecnicos[id]; ok {
		return tecnico, nil
	}
	return nil, errors.New("tecnico not found")
}

type testEnv struct {
	store        *store.Store
	tickets      *TicketService
	averias      *AveriaService
	visitas      *VisitaService
	derivaciones *DerivacionService
	sesiones     *SesionService
	postventas   *PostVentaService
}

func newTestEnv() *testEnv {
	st := store.New(0)
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	directory := NewDirectoryService(&stubDirectoryRepo{
		clientes: map[string]*domain.Cliente{
			"CL-100": {
				ID:         "CL-100",
				Nombre:     "María Quispe",
				Direccion:  "Av. Los Álamos 412",
				Nodo:       "NODO-07",
				Plan:       "100Mbps",
				Tecnologia: "GPON",
				Telefono:   "999888777",
			},
		},
		tecnicos: map[string]*domain.Tecnico{
			"TE-01": {ID: "TE-01", Nombre: "J. Huamán", Zona: "Norte", Telefono: "988776655"},
		},
	}, nil, 0, logger)
	propagation := NewPropagationEngine(st, directory, dispatcher, metrics, logger)

	return &testEnv{
		store:        st,
		tickets:      NewTicketService(st, directory, dispatcher, metrics),
		averias:      NewAveriaService(st, dispatcher, metrics),
		visitas:      NewVisitaService(st, directory, dispatcher, metrics),
		derivaciones: NewDerivacionService(st, directory, propagation, dispatcher, metrics),
		sesiones:     NewSesionService(st, directory, propagation, dispatcher, metrics),
		postventas:   NewPostVentaService(st, directory, dispatcher, metrics),
	}
}

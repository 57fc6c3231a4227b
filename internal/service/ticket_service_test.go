package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/soporte-service/internal/domain"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

func TestTicketCreateAllocatesSequentialIDs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)
	require.Equal(t, "TK-001", first.ID)
	require.Equal(t, domain.TicketAbierto, first.Estado)
	require.Equal(t, domain.PriorityMedia, first.Prioridad)
	require.Equal(t, "María Quispe", first.ClienteNombre)
	require.Equal(t, "NODO-07", first.Nodo)
	require.Empty(t, first.Historial)

	second, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "intermitencia"})
	require.NoError(t, err)
	require.Equal(t, "TK-002", second.ID)
}

func TestTicketCreateUnknownClienteDegradesToEmptyFields(t *testing.T) {
	env := newTestEnv()

	ticket, err := env.tickets.Create(context.Background(), TicketCreateInput{ClienteID: "CL-404", Asunto: "sin señal"})
	require.NoError(t, err)
	require.Equal(t, "CL-404", ticket.ClienteID)
	require.Empty(t, ticket.ClienteNombre)
	require.Empty(t, ticket.Direccion)
}

func TestTicketCreateRequiresAsunto(t *testing.T) {
	env := newTestEnv()

	_, err := env.tickets.Create(context.Background(), TicketCreateInput{ClienteID: "CL-100"})
	require.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestTicketUpdateStatusGateLeavesTicketUntouched(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)
	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange(domain.TicketEnProceso, "")})
	require.NoError(t, err)

	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange(domain.TicketResuelto, "")})
	require.True(t, apperrors.HasCode(err, apperrors.CodeMissingResolution))

	current, _ := env.store.Tickets.Get(ticket.ID)
	require.Equal(t, domain.TicketEnProceso, current.Estado)
	require.Len(t, current.Historial, 1)

	// Retrying with the report attached succeeds.
	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: &StatusChange{
		Estado:     domain.TicketResuelto,
		Resolucion: &domain.ResolutionReport{Solucion: "Cambio de ONU"},
	}})
	require.NoError(t, err)
	current, _ = env.store.Tickets.Get(ticket.ID)
	require.Equal(t, domain.TicketResuelto, current.Estado)
	require.Equal(t, "Cambio de ONU", current.Solucion)
}

func TestTicketUpdateRejectsUnknownEstado(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)

	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange("Archivado", "")})
	require.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	current, _ := env.store.Tickets.Get(ticket.ID)
	require.Equal(t, domain.TicketAbierto, current.Estado)
	require.Empty(t, current.Historial)
}

func TestTicketListFilters(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticketA, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "a"})
	require.NoError(t, err)
	_, err = env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-200", Asunto: "b", Prioridad: domain.PriorityAlta})
	require.NoError(t, err)
	_, err = env.tickets.Update(ctx, ticketA.ID, TicketUpdateInput{Status: statusChange(domain.TicketEnProceso, "")})
	require.NoError(t, err)

	byEstado := env.tickets.List(ctx, TicketFilter{Estados: []string{domain.TicketEnProceso}})
	require.Len(t, byEstado, 1)
	require.Equal(t, ticketA.ID, byEstado[0].ID)

	byCliente := env.tickets.List(ctx, TicketFilter{ClienteID: "CL-200"})
	require.Len(t, byCliente, 1)

	byPrioridad := env.tickets.List(ctx, TicketFilter{Prioridad: domain.PriorityAlta})
	require.Len(t, byPrioridad, 1)

	all := env.tickets.List(ctx, TicketFilter{})
	require.Len(t, all, 2)
}

func TestTicketDeleteBlockedByDependents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)
	visita, err := env.visitas.Create(ctx, VisitaCreateInput{TicketID: ticket.ID, ClienteID: "CL-100"})
	require.NoError(t, err)
	sesion, err := env.sesiones.Create(ctx, SesionCreateInput{TicketID: ticket.ID, ClienteID: "CL-100"})
	require.NoError(t, err)

	_, err = env.tickets.Delete(ctx, ticket.ID, false)
	require.True(t, apperrors.HasCode(err, apperrors.CodeHasDependents))

	domainErr := apperrors.ToDomainError(err)
	require.ElementsMatch(t, []string{visita.ID}, domainErr.Details["visitas"])
	require.ElementsMatch(t, []string{sesion.ID}, domainErr.Details["sesionesRemotas"])

	_, ok := env.store.Tickets.Get(ticket.ID)
	require.True(t, ok)
	_, ok = env.store.Visitas.Get(visita.ID)
	require.True(t, ok)
}

func TestTicketDeleteCascadeRemovesDependents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)
	visita, err := env.visitas.Create(ctx, VisitaCreateInput{TicketID: ticket.ID, ClienteID: "CL-100"})
	require.NoError(t, err)
	sesion, err := env.sesiones.Create(ctx, SesionCreateInput{TicketID: ticket.ID, ClienteID: "CL-100"})
	require.NoError(t, err)

	cascaded, err := env.tickets.Delete(ctx, ticket.ID, true)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{visita.ID, sesion.ID}, cascaded)

	_, ok := env.store.Tickets.Get(ticket.ID)
	require.False(t, ok)
	_, ok = env.store.Visitas.Get(visita.ID)
	require.False(t, ok)
	_, ok = env.store.Sesiones.Get(sesion.ID)
	require.False(t, ok)
}

func TestTicketDeleteWithoutDependentsNeedsNoCascade(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)

	cascaded, err := env.tickets.Delete(ctx, ticket.ID, false)
	require.NoError(t, err)
	require.Empty(t, cascaded)
}

func TestTicketHistoryNewestFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)
	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange(domain.TicketEnProceso, "asignado")})
	require.NoError(t, err)
	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange(domain.TicketEscalado, "sin avance")})
	require.NoError(t, err)

	history, err := env.tickets.History(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, domain.TicketEscalado, history[0].EstadoNuevo)
	require.Equal(t, domain.TicketEnProceso, history[1].EstadoNuevo)
}

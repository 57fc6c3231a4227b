package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/soporte-service/internal/domain"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

func statusChange(estado, motivo string) *StatusChange {
	return &StatusChange{Estado: estado, Motivo: motivo}
}

func (e *testEnv) newLinkedSesion(t *testing.T, ticketEstado string) (*domain.Ticket, *domain.SesionRemota) {
	t.Helper()
	ctx := context.Background()

	ticket, err := e.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "sin señal"})
	require.NoError(t, err)
	if ticketEstado != domain.TicketAbierto {
		_, err = e.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange(ticketEstado, "")})
		require.NoError(t, err)
	}

	sesion, err := e.sesiones.Create(ctx, SesionCreateInput{
		TicketID:     ticket.ID,
		ClienteID:    "CL-100",
		TecnicoID:    "TE-01",
		MotivoSesion: "revisión de ONU",
	})
	require.NoError(t, err)
	return ticket, sesion
}

func TestSesionDerivadaVisitaSpawnsVisitaAndEscalatesTicket(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ticket, sesion := env.newLinkedSesion(t, domain.TicketEnProceso)

	updated, results, err := env.sesiones.Update(ctx, sesion.ID, SesionUpdateInput{
		Status: statusChange(domain.SesionDerivadaVisita, "no se pudo resolver en remoto"),
	})
	require.NoError(t, err)
	require.Equal(t, domain.SesionDerivadaVisita, updated.Estado)

	require.Len(t, results, 2)
	require.Empty(t, results[0].Error)
	require.Equal(t, EffectCreateVisita, results[0].Effect)
	require.Empty(t, results[1].Error)
	require.Equal(t, EffectEscalateTicket, results[1].Effect)

	visita, ok := env.store.Visitas.Get(results[0].TargetID)
	require.True(t, ok)
	require.Equal(t, sesion.ID, visita.SesionOrigenID)
	require.Equal(t, ticket.ID, visita.TicketID)
	require.Equal(t, domain.VisitaProgramada, visita.Estado)
	require.Equal(t, domain.PriorityAlta, visita.Prioridad)
	require.Equal(t, "María Quispe", visita.ClienteNombre)
	require.Equal(t, "Av. Los Álamos 412", visita.Direccion)
	require.Equal(t, "NODO-07", visita.Nodo)

	escalated, ok := env.store.Tickets.Get(ticket.ID)
	require.True(t, ok)
	require.Equal(t, domain.TicketEscalado, escalated.Estado)
	require.NotNil(t, escalated.Historial[0].Motivo)
	require.Contains(t, *escalated.Historial[0].Motivo, sesion.ID)
}

func TestSesionDerivadaPlantaExternaSpawnsDerivacion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ticket, sesion := env.newLinkedSesion(t, domain.TicketEnProceso)

	_, results, err := env.sesiones.Update(ctx, sesion.ID, SesionUpdateInput{
		Status: statusChange(domain.SesionDerivadaPlantaExterna, "corte de fibra en planta"),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, EffectCreateDerivacion, results[0].Effect)
	require.Empty(t, results[0].Error)

	derivacion, ok := env.store.Derivaciones.Get(results[0].TargetID)
	require.True(t, ok)
	require.Equal(t, sesion.ID, derivacion.SesionOrigenID)
	require.Equal(t, domain.DerivacionPendiente, derivacion.Estado)
	require.Equal(t, "NODO-07", derivacion.Zona)

	escalated, _ := env.store.Tickets.Get(ticket.ID)
	require.Equal(t, domain.TicketEscalado, escalated.Estado)
}

func TestSesionWithoutTicketSpawnsOnlyVisita(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sesion, err := env.sesiones.Create(ctx, SesionCreateInput{ClienteID: "CL-100"})
	require.NoError(t, err)

	_, results, err := env.sesiones.Update(ctx, sesion.ID, SesionUpdateInput{
		Status: statusChange(domain.SesionDerivadaVisita, ""),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, EffectCreateVisita, results[0].Effect)
}

func TestPropagationPartialFailureKeepsSessionCommit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sesion, err := env.sesiones.Create(ctx, SesionCreateInput{
		TicketID:  "TK-999",
		ClienteID: "CL-100",
	})
	require.NoError(t, err)

	updated, results, err := env.sesiones.Update(ctx, sesion.ID, SesionUpdateInput{
		Status: statusChange(domain.SesionDerivadaVisita, ""),
	})
	require.NoError(t, err)
	require.Equal(t, domain.SesionDerivadaVisita, updated.Estado)

	require.Len(t, results, 2)
	require.Empty(t, results[0].Error)
	require.NotEmpty(t, results[1].Error)
	require.Contains(t, results[1].Error, "TK-999")

	_, ok := env.store.Visitas.Get(results[0].TargetID)
	require.True(t, ok)
}

func TestPropagationReportsIllegalTicketEscalation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ticket, sesion := env.newLinkedSesion(t, domain.TicketAbierto)

	updated, results, err := env.sesiones.Update(ctx, sesion.ID, SesionUpdateInput{
		Status: statusChange(domain.SesionDerivadaVisita, ""),
	})
	require.NoError(t, err)
	require.Equal(t, domain.SesionDerivadaVisita, updated.Estado)

	require.Len(t, results, 2)
	require.Empty(t, results[0].Error)
	require.NotEmpty(t, results[1].Error)

	untouched, _ := env.store.Tickets.Get(ticket.ID)
	require.Equal(t, domain.TicketAbierto, untouched.Estado)
}

func TestDerivacionCompletadaResolvesLinkedTicket(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "baja de velocidad"})
	require.NoError(t, err)
	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange(domain.TicketEnProceso, "")})
	require.NoError(t, err)

	derivacion, err := env.derivaciones.Create(ctx, DerivacionCreateInput{
		TicketID:  ticket.ID,
		ClienteID: "CL-100",
	})
	require.NoError(t, err)

	_, _, err = env.derivaciones.Update(ctx, derivacion.ID, DerivacionUpdateInput{
		Status: statusChange(domain.DerivacionEnProgreso, ""),
	})
	require.NoError(t, err)

	_, results, err := env.derivaciones.Update(ctx, derivacion.ID, DerivacionUpdateInput{
		Status: &StatusChange{
			Estado:     domain.DerivacionCompletada,
			Resolucion: &domain.ResolutionReport{Solucion: "Cambio de acometida"},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, EffectResolveTicket, results[0].Effect)
	require.Empty(t, results[0].Error)

	resolved, _ := env.store.Tickets.Get(ticket.ID)
	require.Equal(t, domain.TicketResuelto, resolved.Estado)
	require.Equal(t, "Cambio de acometida", resolved.Solucion)
}

func TestResolvedTicketDoesNotShareReportDataWithDerivacion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, TicketCreateInput{ClienteID: "CL-100", Asunto: "corte total"})
	require.NoError(t, err)
	_, err = env.tickets.Update(ctx, ticket.ID, TicketUpdateInput{Status: statusChange(domain.TicketEnProceso, "")})
	require.NoError(t, err)

	derivacion, err := env.derivaciones.Create(ctx, DerivacionCreateInput{TicketID: ticket.ID, ClienteID: "CL-100"})
	require.NoError(t, err)
	_, _, err = env.derivaciones.Update(ctx, derivacion.ID, DerivacionUpdateInput{
		Status: statusChange(domain.DerivacionEnProgreso, ""),
	})
	require.NoError(t, err)

	ping := 8.2
	_, _, err = env.derivaciones.Update(ctx, derivacion.ID, DerivacionUpdateInput{
		Status: &StatusChange{
			Estado: domain.DerivacionCompletada,
			Resolucion: &domain.ResolutionReport{
				Solucion:            "Empalme de fibra troncal",
				AdjuntosResolucion:  []domain.Attachment{{Name: "otdr.pdf", MimeType: "application/pdf", SizeBytes: 4096}},
				DiagnosticosFinales: &domain.Diagnostics{PingMs: &ping},
			},
		},
	})
	require.NoError(t, err)

	resolved, _ := env.store.Tickets.Get(ticket.ID)
	completed, _ := env.store.Derivaciones.Get(derivacion.ID)
	require.Len(t, resolved.AdjuntosResolucion, 1)
	require.NotSame(t, completed.DiagnosticosFinales, resolved.DiagnosticosFinales)

	// editing one entity's report must not reach the other
	completed.AdjuntosResolucion[0].Name = "otro.pdf"
	require.Equal(t, "otdr.pdf", resolved.AdjuntosResolucion[0].Name)
}

func TestDerivacionCompletadaWithoutReportRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	derivacion, err := env.derivaciones.Create(ctx, DerivacionCreateInput{ClienteID: "CL-100"})
	require.NoError(t, err)
	_, _, err = env.derivaciones.Update(ctx, derivacion.ID, DerivacionUpdateInput{
		Status: statusChange(domain.DerivacionEnProgreso, ""),
	})
	require.NoError(t, err)

	_, _, err = env.derivaciones.Update(ctx, derivacion.ID, DerivacionUpdateInput{
		Status: statusChange(domain.DerivacionCompletada, ""),
	})
	require.True(t, apperrors.HasCode(err, apperrors.CodeMissingResolution))

	unchanged, _ := env.store.Derivaciones.Get(derivacion.ID)
	require.Equal(t, domain.DerivacionEnProgreso, unchanged.Estado)
}

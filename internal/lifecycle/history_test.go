package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/soporte-service/internal/domain"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

func newTicket(id string) *domain.Ticket {
	return &domain.Ticket{
		WorkItemCore: domain.WorkItemCore{
			ID:     id,
			Estado: domain.TicketAbierto,
			Fecha:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Asunto: "sin señal",
	}
}

func TestApplyStatusChangeHappyPath(t *testing.T) {
	ticket := newTicket("TK-001")
	now := time.Now()

	changed, err := ApplyStatusChange(ticket, domain.TicketEnProceso, "asignado a NOC", nil, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, domain.TicketEnProceso, ticket.Estado)
	require.Len(t, ticket.Historial, 1)
	require.Equal(t, domain.TicketAbierto, ticket.Historial[0].EstadoAnterior)
	require.Equal(t, domain.TicketEnProceso, ticket.Historial[0].EstadoNuevo)
	require.NotNil(t, ticket.Historial[0].Motivo)
	require.Equal(t, "asignado a NOC", *ticket.Historial[0].Motivo)
}

func TestApplyStatusChangeSelfTransitionIsNoOp(t *testing.T) {
	ticket := newTicket("TK-001")

	changed, err := ApplyStatusChange(ticket, domain.TicketAbierto, "repetido", nil, time.Now())
	require.NoError(t, err)
	require.False(t, changed)
	require.Empty(t, ticket.Historial)

	changed, err = ApplyStatusChange(ticket, "", "", nil, time.Now())
	require.NoError(t, err)
	require.False(t, changed)
	require.Empty(t, ticket.Historial)
}

func TestApplyStatusChangeRejectsIllegalPairWithoutMutation(t *testing.T) {
	ticket := newTicket("TK-001")

	_, err := ApplyStatusChange(ticket, domain.TicketEscalado, "", nil, time.Now())
	require.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))
	require.Equal(t, domain.TicketAbierto, ticket.Estado)
	require.Empty(t, ticket.Historial)
}

func TestApplyStatusChangeGateAnswersBeforeValidation(t *testing.T) {
	ticket := newTicket("TK-001")

	// Cerrado is both gated and unreachable from Abierto; the gate refuses
	// first, so the caller learns about the missing report
	_, err := ApplyStatusChange(ticket, domain.TicketCerrado, "", nil, time.Now())
	require.True(t, apperrors.HasCode(err, apperrors.CodeMissingResolution))
	require.Equal(t, domain.TicketAbierto, ticket.Estado)
	require.Empty(t, ticket.Historial)
}

// Mirrors the resolve-without-report then retry-with-report flow.
func TestApplyStatusChangeResolutionGate(t *testing.T) {
	ticket := newTicket("TK-001")
	now := time.Now()

	changed, err := ApplyStatusChange(ticket, domain.TicketEnProceso, "", nil, now)
	require.NoError(t, err)
	require.True(t, changed)

	// no report: gate refuses, estado and historial untouched
	_, err = ApplyStatusChange(ticket, domain.TicketResuelto, "", nil, now)
	require.True(t, apperrors.HasCode(err, apperrors.CodeMissingResolution))
	require.Equal(t, domain.TicketEnProceso, ticket.Estado)
	require.Len(t, ticket.Historial, 1)

	// blank solution is still no solution
	_, err = ApplyStatusChange(ticket, domain.TicketResuelto, "", &domain.ResolutionReport{Solucion: "   "}, now)
	require.True(t, apperrors.HasCode(err, apperrors.CodeMissingResolution))

	// retry with the report succeeds and appends exactly one entry
	ping := 12.5
	report := &domain.ResolutionReport{
		Solucion:            "Cambio de ONU",
		AccionesRealizadas:  "Reemplazo de equipo en sitio",
		AdjuntosResolucion:  []domain.Attachment{{Name: "foto.jpg", MimeType: "image/jpeg", SizeBytes: 2048}},
		DiagnosticosFinales: &domain.Diagnostics{PingMs: &ping},
	}
	changed, err = ApplyStatusChange(ticket, domain.TicketResuelto, "", report, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, ticket.Historial, 2)
	require.Equal(t, domain.TicketResuelto, ticket.Historial[0].EstadoNuevo)
	require.Equal(t, "Cambio de ONU", ticket.Solucion)
	require.Len(t, ticket.AdjuntosResolucion, 1)
	require.NotNil(t, ticket.DiagnosticosFinales)

	// closing later passes the gate on the report captured at resolution
	changed, err = ApplyStatusChange(ticket, domain.TicketCerrado, "conforme el cliente", nil, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, domain.TicketCerrado, ticket.Estado)
}

func TestHistorialIsNewestFirstAndTracksEstado(t *testing.T) {
	visita := &domain.Visita{
		WorkItemCore: domain.WorkItemCore{ID: "VT-001", Estado: domain.VisitaProgramada},
	}
	now := time.Now()
	steps := []string{domain.VisitaEnRuta, domain.VisitaEnSitio, domain.VisitaEnRuta, domain.VisitaEnSitio}
	for _, next := range steps {
		changed, err := ApplyStatusChange(visita, next, "", nil, now)
		require.NoError(t, err)
		require.True(t, changed)
	}

	require.Len(t, visita.Historial, len(steps))
	require.Equal(t, visita.Estado, visita.Historial[0].EstadoNuevo)

	// oldest to newest must replay as a legal path
	for i := len(visita.Historial) - 1; i >= 0; i-- {
		entry := visita.Historial[i]
		require.True(t, CanTransition(domain.KindVisita, entry.EstadoAnterior, entry.EstadoNuevo),
			"historial holds illegal pair %q -> %q", entry.EstadoAnterior, entry.EstadoNuevo)
	}
}

func TestRecordTransitionBlankMotivoStaysNil(t *testing.T) {
	core := &domain.WorkItemCore{ID: "AV-001", Estado: domain.AveriaActiva}
	entry := RecordTransition(core, domain.AveriaEnReparacion, "   ", time.Now())
	require.Nil(t, entry.Motivo)
}

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/soporte-service/internal/domain"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		kind domain.Kind
		from string
		to   string
		want bool
	}{
		{"ticket open to in progress", domain.KindTicket, domain.TicketAbierto, domain.TicketEnProceso, true},
		{"ticket open to resolved skips work", domain.KindTicket, domain.TicketAbierto, domain.TicketResuelto, false},
		{"ticket escalated back to in progress", domain.KindTicket, domain.TicketEscalado, domain.TicketEnProceso, true},
		{"ticket resolved to closed", domain.KindTicket, domain.TicketResuelto, domain.TicketCerrado, true},
		{"ticket closed is terminal", domain.KindTicket, domain.TicketCerrado, domain.TicketAbierto, false},
		{"ticket escalated cannot cancel", domain.KindTicket, domain.TicketEscalado, domain.TicketCancelado, false},
		{"averia reopen after resolution", domain.KindAveria, domain.AveriaResuelta, domain.AveriaActiva, true},
		{"averia cannot resolve from active", domain.KindAveria, domain.AveriaActiva, domain.AveriaResuelta, false},
		{"visita reprogram from site", domain.KindVisita, domain.VisitaEnSitio, domain.VisitaProgramada, true},
		{"visita cancel en route", domain.KindVisita, domain.VisitaEnRuta, domain.VisitaCancelada, true},
		{"visita complete from route", domain.KindVisita, domain.VisitaEnRuta, domain.VisitaCompletada, false},
		{"derivacion cannot skip progress", domain.KindDerivacion, domain.DerivacionPendiente, domain.DerivacionCompletada, false},
		{"derivacion resume after reprogram", domain.KindDerivacion, domain.DerivacionReprogramada, domain.DerivacionEnProgreso, true},
		{"sesion derives to visit", domain.KindSesionRemota, domain.SesionEnCurso, domain.SesionDerivadaVisita, true},
		{"sesion terminal states stay put", domain.KindSesionRemota, domain.SesionFallida, domain.SesionEnCurso, false},
		{"postventa reject from pending", domain.KindPostVenta, domain.PostVentaPendiente, domain.PostVentaRechazada, true},
		{"postventa execute needs execution", domain.KindPostVenta, domain.PostVentaReprogramada, domain.PostVentaEjecutada, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanTransition(tt.kind, tt.from, tt.to))
		})
	}
}

func TestValidateTransitionNamesThePair(t *testing.T) {
	err := ValidateTransition(domain.KindDerivacion, domain.DerivacionPendiente, domain.DerivacionCompletada)
	require.Error(t, err)
	require.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, domain.DerivacionPendiente, domainErr.Details["estadoAnterior"])
	require.Equal(t, domain.DerivacionCompletada, domainErr.Details["estadoNuevo"])
}

func TestInitialStatus(t *testing.T) {
	require.Equal(t, domain.TicketAbierto, InitialStatus(domain.KindTicket))
	require.Equal(t, domain.AveriaActiva, InitialStatus(domain.KindAveria))
	require.Equal(t, domain.VisitaProgramada, InitialStatus(domain.KindVisita))
	require.Equal(t, domain.DerivacionPendiente, InitialStatus(domain.KindDerivacion))
	require.Equal(t, domain.SesionEnCurso, InitialStatus(domain.KindSesionRemota))
	require.Equal(t, domain.PostVentaPendiente, InitialStatus(domain.KindPostVenta))
}

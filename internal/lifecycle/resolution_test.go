package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/soporte-service/internal/domain"
)

func TestRequiresResolution(t *testing.T) {
	tests := []struct {
		kind domain.Kind
		to   string
		want bool
	}{
		{domain.KindTicket, domain.TicketResuelto, true},
		{domain.KindTicket, domain.TicketCerrado, true},
		{domain.KindTicket, domain.TicketEscalado, false},
		{domain.KindAveria, domain.AveriaResuelta, true},
		{domain.KindVisita, domain.VisitaCompletada, true},
		{domain.KindVisita, domain.VisitaCancelada, false},
		{domain.KindDerivacion, domain.DerivacionCompletada, true},
		{domain.KindSesionRemota, domain.SesionCompletada, true},
		{domain.KindSesionRemota, domain.SesionDerivadaVisita, false},
		{domain.KindPostVenta, domain.PostVentaEjecutada, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, RequiresResolution(tt.kind, tt.to), "%s -> %s", tt.kind, tt.to)
	}
}

func TestCheckResolution(t *testing.T) {
	empty := &domain.ResolutionReport{}
	filled := &domain.ResolutionReport{Solucion: "reinicio de OLT"}

	require.Error(t, CheckResolution(domain.KindAveria, domain.AveriaResuelta, empty, nil))
	require.Error(t, CheckResolution(domain.KindAveria, domain.AveriaResuelta, empty, &domain.ResolutionReport{Solucion: " \t"}))
	require.NoError(t, CheckResolution(domain.KindAveria, domain.AveriaResuelta, empty, filled))
	require.NoError(t, CheckResolution(domain.KindAveria, domain.AveriaResuelta, filled, nil))
	require.NoError(t, CheckResolution(domain.KindAveria, domain.AveriaEnReparacion, empty, nil))
}

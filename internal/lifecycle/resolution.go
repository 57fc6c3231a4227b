package lifecycle

import (
	"github.com/spec-kit/soporte-service/internal/domain"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// gatedTransitions lists the target statuses that require a structured
// completion report before the transition may proceed.
var gatedTransitions = map[domain.Kind]map[string]struct{}{
	domain.KindTicket: {
		domain.TicketResuelto: {},
		domain.TicketCerrado:  {},
	},
	domain.KindAveria: {
		domain.AveriaResuelta: {},
	},
	domain.KindVisita: {
		domain.VisitaCompletada: {},
	},
	domain.KindDerivacion: {
		domain.DerivacionCompletada: {},
	},
	domain.KindSesionRemota: {
		domain.SesionCompletada: {},
	},
	domain.KindPostVenta: {
		domain.PostVentaEjecutada: {},
	},
}

// RequiresResolution reports whether moving the kind to the given status is
// resolution-gated.
func RequiresResolution(kind domain.Kind, to string) bool {
	_, ok := gatedTransitions[kind][to]
	return ok
}

// CheckResolution enforces the gate: a gated transition needs a non-empty
// solution, either submitted with the change or already carried by the entity
// (a ticket closed after being resolved keeps the report captured earlier).
// The gate is a pure precondition; it computes nothing.
func CheckResolution(kind domain.Kind, to string, current, submitted *domain.ResolutionReport) error {
	if !RequiresResolution(kind, to) {
		return nil
	}
	if submitted.HasSolucion() || current.HasSolucion() {
		return nil
	}
	return apperrors.NewMissingResolution(string(kind), to)
}

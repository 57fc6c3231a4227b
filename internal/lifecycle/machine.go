package lifecycle

import (
	"github.com/spec-kit/soporte-service/internal/domain"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// transitionTables defines the legal status pairs per work-item kind. Adding
// a new variant means adding a table here, not new code paths.
var transitionTables = map[domain.Kind]map[string][]string{
	domain.KindTicket: {
		domain.TicketAbierto:   {domain.TicketEnProceso, domain.TicketCancelado},
		domain.TicketEnProceso: {domain.TicketEscalado, domain.TicketResuelto, domain.TicketCancelado},
		domain.TicketEscalado:  {domain.TicketEnProceso, domain.TicketResuelto},
		domain.TicketResuelto:  {domain.TicketCerrado},
		domain.TicketCerrado:   {},
		domain.TicketCancelado: {},
	},
	domain.KindAveria: {
		domain.AveriaActiva:       {domain.AveriaEnReparacion},
		domain.AveriaEnReparacion: {domain.AveriaCoordinando, domain.AveriaResuelta},
		domain.AveriaCoordinando:  {domain.AveriaEnReparacion, domain.AveriaResuelta},
		// a resolved outage may be reopened
		domain.AveriaResuelta: {domain.AveriaActiva},
	},
	domain.KindVisita: {
		domain.VisitaProgramada: {domain.VisitaEnRuta, domain.VisitaCancelada},
		domain.VisitaEnRuta:     {domain.VisitaEnSitio, domain.VisitaCancelada},
		domain.VisitaEnSitio:    {domain.VisitaEnRuta, domain.VisitaCompletada, domain.VisitaProgramada, domain.VisitaCancelada},
		domain.VisitaCompletada: {},
		domain.VisitaCancelada:  {},
	},
	domain.KindDerivacion: {
		domain.DerivacionPendiente:    {domain.DerivacionEnProgreso, domain.DerivacionCancelada},
		domain.DerivacionEnProgreso:   {domain.DerivacionCompletada, domain.DerivacionReprogramada, domain.DerivacionCancelada},
		domain.DerivacionReprogramada: {domain.DerivacionEnProgreso, domain.DerivacionCancelada},
		domain.DerivacionCompletada:   {},
		domain.DerivacionCancelada:    {},
	},
	domain.KindSesionRemota: {
		domain.SesionEnCurso: {
			domain.SesionCompletada,
			domain.SesionFallida,
			domain.SesionDerivadaVisita,
			domain.SesionDerivadaPlantaExterna,
		},
		domain.SesionCompletada:            {},
		domain.SesionFallida:               {},
		domain.SesionDerivadaVisita:        {},
		domain.SesionDerivadaPlantaExterna: {},
	},
	domain.KindPostVenta: {
		domain.PostVentaPendiente:    {domain.PostVentaAprobada, domain.PostVentaRechazada},
		domain.PostVentaAprobada:     {domain.PostVentaEnEjecucion},
		domain.PostVentaEnEjecucion:  {domain.PostVentaReprogramada, domain.PostVentaEjecutada},
		domain.PostVentaReprogramada: {domain.PostVentaEnEjecucion},
		domain.PostVentaEjecutada:    {},
		domain.PostVentaRechazada:    {},
	},
}

// initialStatuses maps each kind to the status assigned at creation.
var initialStatuses = map[domain.Kind]string{
	domain.KindTicket:       domain.TicketAbierto,
	domain.KindAveria:       domain.AveriaActiva,
	domain.KindVisita:       domain.VisitaProgramada,
	domain.KindDerivacion:   domain.DerivacionPendiente,
	domain.KindSesionRemota: domain.SesionEnCurso,
	domain.KindPostVenta:    domain.PostVentaPendiente,
}

// InitialStatus returns the creation status for a kind.
func InitialStatus(kind domain.Kind) string {
	return initialStatuses[kind]
}

// KnownStatus reports whether the status belongs to the kind's vocabulary.
func KnownStatus(kind domain.Kind, status string) bool {
	_, ok := transitionTables[kind][status]
	return ok
}

// CanTransition reports whether the pair appears in the kind's table.
func CanTransition(kind domain.Kind, from, to string) bool {
	for _, candidate := range transitionTables[kind][from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ValidateTransition rejects pairs outside the kind's table.
func ValidateTransition(kind domain.Kind, from, to string) error {
	if !CanTransition(kind, from, to) {
		return apperrors.NewInvalidTransition(string(kind), from, to)
	}
	return nil
}

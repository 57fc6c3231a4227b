package lifecycle

import (
	"strings"
	"time"

	"github.com/spec-kit/soporte-service/internal/domain"
)

// RecordTransition prepends an immutable StateTransition and moves the item
// to the new status. The reason travels as an argument, never as an entity
// field, so it cannot leak into persisted state. Callers must have validated
// the transition first.
func RecordTransition(core *domain.WorkItemCore, nuevo, motivo string, now time.Time) domain.StateTransition {
	var reason *string
	if trimmed := strings.TrimSpace(motivo); trimmed != "" {
		reason = &trimmed
	}
	entry := domain.StateTransition{
		Fecha:          now,
		EstadoAnterior: core.Estado,
		EstadoNuevo:    nuevo,
		Motivo:         reason,
	}
	core.Historial = append([]domain.StateTransition{entry}, core.Historial...)
	core.Estado = nuevo
	return entry
}

// ApplyStatusChange runs the full pipeline for one proposed status change:
// resolution gate, state-machine validation, then the history append. A
// self-transition is a no-op that records nothing. On any error the item is
// left untouched. The returned flag reports whether a transition happened.
func ApplyStatusChange(item domain.WorkItem, nuevo, motivo string, report *domain.ResolutionReport, now time.Time) (bool, error) {
	core := item.Core()
	if nuevo == "" || nuevo == core.Estado {
		return false, nil
	}
	kind := item.ItemKind()
	if err := CheckResolution(kind, nuevo, item.Resolution(), report); err != nil {
		return false, err
	}
	if err := ValidateTransition(kind, core.Estado, nuevo); err != nil {
		return false, err
	}
	if RequiresResolution(kind, nuevo) {
		item.Resolution().Merge(report)
	}
	RecordTransition(core, nuevo, motivo, now)
	return true, nil
}

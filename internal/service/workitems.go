package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/events"
	"github.com/spec-kit/soporte-service/internal/lifecycle"
	"github.com/spec-kit/soporte-service/internal/observability"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// StatusChange is the optional status-change part of an update. The reason
// and the resolution report travel beside the field edits, never inside them.
type StatusChange struct {
	Estado     string
	Motivo     string
	Resolucion *domain.ResolutionReport
}

// applyStatusChange runs the lifecycle pipeline and counts the committed
// transition. Returns whether a transition happened. A target outside the
// variant's vocabulary is a request defect, not an illegal pair.
func applyStatusChange(item domain.WorkItem, change *StatusChange, metrics *observability.Metrics) (bool, error) {
	if change == nil {
		return false, nil
	}
	if change.Estado != "" && !lifecycle.KnownStatus(item.ItemKind(), change.Estado) {
		return false, apperrors.NewValidationError("unknown estado",
			map[string]any{"collection": string(item.ItemKind()), "estado": change.Estado})
	}
	previous := item.Core().Estado
	changed, err := lifecycle.ApplyStatusChange(item, change.Estado, change.Motivo, change.Resolucion, time.Now())
	if err != nil {
		return false, err
	}
	if changed {
		metrics.RecordTransition(string(item.ItemKind()), previous, change.Estado)
	}
	return changed, nil
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func publishCreated(ctx context.Context, dispatcher events.Dispatcher, item domain.WorkItem, clienteID string) {
	publishEvent(ctx, dispatcher, events.Event{
		Type:       events.EventWorkItemCreated,
		Collection: item.ItemKind(),
		WorkItemID: item.Core().ID,
		Payload: events.WorkItemCreatedPayload{
			Estado:    item.Core().Estado,
			ClienteID: clienteID,
		},
	})
}

func publishStatusChanged(ctx context.Context, dispatcher events.Dispatcher, item domain.WorkItem, previous, motivo string) {
	publishEvent(ctx, dispatcher, events.Event{
		Type:       events.EventWorkItemStatusChanged,
		Collection: item.ItemKind(),
		WorkItemID: item.Core().ID,
		Payload: events.StatusChangedPayload{
			EstadoAnterior: previous,
			EstadoNuevo:    item.Core().Estado,
			Motivo:         motivo,
		},
	})
}

// matchesEstados reports whether the status passes the optional filter.
func matchesEstados(estado string, estados []string) bool {
	if len(estados) == 0 {
		return true
	}
	for _, candidate := range estados {
		if candidate == estado {
			return true
		}
	}
	return false
}

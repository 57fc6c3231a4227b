package events

import (
	"time"

	"github.com/spec-kit/soporte-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWorkItemCreated       EventType = "work_item_created"
	EventWorkItemStatusChanged EventType = "work_item_status_changed"
	EventWorkItemDeleted       EventType = "work_item_deleted"
	EventPropagationApplied    EventType = "propagation_applied"
	EventPropagationFailed     EventType = "propagation_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Collection domain.Kind `json:"collection"`
	WorkItemID string      `json:"work_item_id"`
	OperatorID string      `json:"operator_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// WorkItemCreatedPayload payload.
type WorkItemCreatedPayload struct {
	Estado    string `json:"estado"`
	ClienteID string `json:"cliente_id,omitempty"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	EstadoAnterior string `json:"estado_anterior"`
	EstadoNuevo    string `json:"estado_nuevo"`
	Motivo         string `json:"motivo,omitempty"`
}

// WorkItemDeletedPayload payload.
type WorkItemDeletedPayload struct {
	Cascaded []string `json:"cascaded,omitempty"`
}

// PropagationAppliedPayload payload.
type PropagationAppliedPayload struct {
	Effect           string      `json:"effect"`
	TargetCollection domain.Kind `json:"target_collection"`
	TargetID         string      `json:"target_id"`
}

// PropagationFailedPayload payload.
type PropagationFailedPayload struct {
	Effect string `json:"effect"`
	Reason string `json:"reason"`
}

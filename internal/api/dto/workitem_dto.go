package dto

import (
	"time"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/service"
)

// StatusChangeRequest is the optional status-change part of an update
// payload. The resolution report rides beside the target status so gated
// transitions can be satisfied in the same request.
type StatusChangeRequest struct {
	Estado     string                   `json:"estado"`
	Motivo     string                   `json:"motivo,omitempty"`
	Resolucion *domain.ResolutionReport `json:"resolucion,omitempty"`
}

func (r *StatusChangeRequest) ToServiceChange() *service.StatusChange {
	if r == nil {
		return nil
	}
	return &service.StatusChange{Estado: r.Estado, Motivo: r.Motivo, Resolucion: r.Resolucion}
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	ClienteID   string          `json:"clienteId"`
	Asunto      string          `json:"asunto"`
	Descripcion string          `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Prioridad   domain.Priority `json:"prioridad"`
	SLAObjetivo string          `json:"slaObjetivo"`
}

// UpdateTicketRequest payload. Absent fields are left untouched.
type UpdateTicketRequest struct {
	Asunto      *string              `json:"asunto"`
	Descripcion *string              `json:"descripcion"`
	Categoria   *string              `json:"categoria"`
	Prioridad   *domain.Priority     `json:"prioridad"`
	Status      *StatusChangeRequest `json:"cambioEstado"`
}

// CreateAveriaRequest payload.
type CreateAveriaRequest struct {
	Nodo              string          `json:"nodo"`
	Zona              string          `json:"zona"`
	Descripcion       string          `json:"descripcion"`
	ClientesAfectados int             `json:"clientesAfectados"`
	Prioridad         domain.Priority `json:"prioridad"`
}

// UpdateAveriaRequest payload.
type UpdateAveriaRequest struct {
	Descripcion       *string              `json:"descripcion"`
	ClientesAfectados *int                 `json:"clientesAfectados"`
	Prioridad         *domain.Priority     `json:"prioridad"`
	Status            *StatusChangeRequest `json:"cambioEstado"`
}

// CreateVisitaRequest payload.
type CreateVisitaRequest struct {
	TicketID        string          `json:"ticketId"`
	ClienteID       string          `json:"clienteId"`
	TecnicoID       string          `json:"tecnicoId"`
	FechaProgramada *time.Time      `json:"fechaProgramada"`
	Prioridad       domain.Priority `json:"prioridad"`
	Descripcion     string          `json:"descripcion"`
}

// UpdateVisitaRequest payload.
type UpdateVisitaRequest struct {
	TecnicoID       *string              `json:"tecnicoId"`
	FechaProgramada *time.Time           `json:"fechaProgramada"`
	Prioridad       *domain.Priority     `json:"prioridad"`
	Descripcion     *string              `json:"descripcion"`
	Status          *StatusChangeRequest `json:"cambioEstado"`
}

// CreateDerivacionRequest payload.
type CreateDerivacionRequest struct {
	TicketID    string          `json:"ticketId"`
	ClienteID   string          `json:"clienteId"`
	Zona        string          `json:"zona"`
	Prioridad   domain.Priority `json:"prioridad"`
	Descripcion string          `json:"descripcion"`
}

// UpdateDerivacionRequest payload.
type UpdateDerivacionRequest struct {
	Zona        *string              `json:"zona"`
	Prioridad   *domain.Priority     `json:"prioridad"`
	Descripcion *string              `json:"descripcion"`
	Status      *StatusChangeRequest `json:"cambioEstado"`
}

// CreateSesionRequest payload.
type CreateSesionRequest struct {
	TicketID     string `json:"ticketId"`
	ClienteID    string `json:"clienteId"`
	TecnicoID    string `json:"tecnicoId"`
	MotivoSesion string `json:"motivoSesion"`
}

// UpdateSesionRequest payload.
type UpdateSesionRequest struct {
	TecnicoID    *string              `json:"tecnicoId"`
	MotivoSesion *string              `json:"motivoSesion"`
	Status       *StatusChangeRequest `json:"cambioEstado"`
}

// CreatePostVentaRequest payload.
type CreatePostVentaRequest struct {
	ClienteID       string     `json:"clienteId"`
	TipoServicio    string     `json:"tipoServicio"`
	Descripcion     string     `json:"descripcion"`
	FechaProgramada *time.Time `json:"fechaProgramada"`
}

// UpdatePostVentaRequest payload.
type UpdatePostVentaRequest struct {
	TipoServicio    *string              `json:"tipoServicio"`
	Descripcion     *string              `json:"descripcion"`
	FechaProgramada *time.Time           `json:"fechaProgramada"`
	Status          *StatusChangeRequest `json:"cambioEstado"`
}

// PropagatedUpdateResponse wraps an updated item together with the outcome
// of each propagation effect the transition triggered.
type PropagatedUpdateResponse struct {
	Item        any                    `json:"item"`
	Propagacion []service.EffectResult `json:"propagacion,omitempty"`
}

// DeleteTicketResponse reports which dependents were cascade-deleted.
type DeleteTicketResponse struct {
	ID        string   `json:"id"`
	Eliminado bool     `json:"eliminado"`
	Cascada   []string `json:"cascada,omitempty"`
}

package domain

import "time"

// Visita statuses. Completada and Cancelada are terminal.
const (
	VisitaProgramada = "Programada"
	VisitaEnRuta     = "En Ruta"
	VisitaEnSitio    = "En Sitio"
	VisitaCompletada = "Completada"
	VisitaCancelada  = "Cancelada"
)

// Visita is a scheduled field visit. TicketID and SesionOrigenID are weak
// references; either may point at an entity that no longer exists.
type Visita struct {
	WorkItemCore
	ResolutionReport

	TicketID        string     `json:"ticketId,omitempty"`
	SesionOrigenID  string     `json:"sesionOrigenId,omitempty"`
	ClienteID       string     `json:"clienteId,omitempty"`
	ClienteNombre   string     `json:"clienteNombre,omitempty"`
	Direccion       string     `json:"direccion,omitempty"`
	Nodo            string     `json:"nodo,omitempty"`
	Tecnologia      string     `json:"tecnologia,omitempty"`
	TecnicoID       string     `json:"tecnicoId,omitempty"`
	TecnicoNombre   string     `json:"tecnicoNombre,omitempty"`
	FechaProgramada *time.Time `json:"fechaProgramada,omitempty"`
	Prioridad       Priority   `json:"prioridad,omitempty"`
	Descripcion     string     `json:"descripcion,omitempty"`
}

func (v *Visita) Core() *WorkItemCore { return &v.WorkItemCore }
func (v *Visita) Resolution() *ResolutionReport { return &v.ResolutionReport }
func (v *Visita) ItemKind() Kind { return KindVisita }

package domain

import "time"

// PostVenta statuses. Ejecutada and Rechazada are terminal.
const (
	PostVentaPendiente    = "Pendiente"
	PostVentaAprobada     = "Aprobada"
	PostVentaEnEjecucion  = "En Ejecución"
	PostVentaReprogramada = "Reprogramada"
	PostVentaEjecutada    = "Ejecutada"
	PostVentaRechazada    = "Rechazada"
)

// PostVenta is a post-sale add-on request (plan change, relocation, extras).
type PostVenta struct {
	WorkItemCore
	ResolutionReport

	ClienteID       string     `json:"clienteId,omitempty"`
	ClienteNombre   string     `json:"clienteNombre,omitempty"`
	TipoServicio    string     `json:"tipoServicio,omitempty"`
	Descripcion     string     `json:"descripcion,omitempty"`
	FechaProgramada *time.Time `json:"fechaProgramada,omitempty"`
}

func (p *PostVenta) Core() *WorkItemCore { return &p.WorkItemCore }
func (p *PostVenta) Resolution() *ResolutionReport { return &p.ResolutionReport }
func (p *PostVenta) ItemKind() Kind { return KindPostVenta }

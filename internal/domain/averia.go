package domain

// Averia statuses. Resuelta is terminal, though a resolved outage may be
// reopened to Activa.
const (
	AveriaActiva       = "Activa"
	AveriaEnReparacion = "En reparación"
	AveriaCoordinando  = "Coordinando"
	AveriaResuelta     = "Resuelta"
)

// Averia is a network outage affecting a node or zone.
type Averia struct {
	WorkItemCore
	ResolutionReport

	Nodo              string   `json:"nodo,omitempty"`
	Zona              string   `json:"zona,omitempty"`
	Descripcion       string   `json:"descripcion"`
	ClientesAfectados int      `json:"clientesAfectados,omitempty"`
	Prioridad         Priority `json:"prioridad,omitempty"`
}

func (a *Averia) Core() *WorkItemCore { return &a.WorkItemCore }
func (a *Averia) Resolution() *ResolutionReport { return &a.ResolutionReport }
func (a *Averia) ItemKind() Kind { return KindAveria }

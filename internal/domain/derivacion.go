package domain

// Derivacion statuses. Completada and Cancelada are terminal.
const (
	DerivacionPendiente    = "Pendiente"
	DerivacionEnProgreso   = "En progreso"
	DerivacionReprogramada = "Reprogramada"
	DerivacionCompletada   = "Completada"
	DerivacionCancelada    = "Cancelada"
)

// Derivacion is an external-plant work order handed to the outside crew.
type Derivacion struct {
	WorkItemCore
	ResolutionReport

	TicketID       string   `json:"ticketId,omitempty"`
	SesionOrigenID string   `json:"sesionOrigenId,omitempty"`
	ClienteID      string   `json:"clienteId,omitempty"`
	ClienteNombre  string   `json:"clienteNombre,omitempty"`
	Zona           string   `json:"zona,omitempty"`
	Prioridad      Priority `json:"prioridad,omitempty"`
	Descripcion    string   `json:"descripcion,omitempty"`
}

func (d *Derivacion) Core() *WorkItemCore { return &d.WorkItemCore }
func (d *Derivacion) Resolution() *ResolutionReport { return &d.ResolutionReport }
func (d *Derivacion) ItemKind() Kind { return KindDerivacion }

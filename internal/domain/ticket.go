package domain

// Ticket statuses. Cerrado and Cancelado are terminal.
const (
	TicketAbierto   = "Abierto"
	TicketEnProceso = "En Proceso"
	TicketEscalado  = "Escalado"
	TicketResuelto  = "Resuelto"
	TicketCerrado   = "Cerrado"
	TicketCancelado = "Cancelado"
)

// Ticket is the aggregate for support requests. Display fields are copied
// from the client directory at creation time; ClienteID stays the weak
// reference.
type Ticket struct {
	WorkItemCore
	ResolutionReport

	ClienteID     string   `json:"clienteId,omitempty"`
	ClienteNombre string   `json:"clienteNombre,omitempty"`
	Direccion     string   `json:"direccion,omitempty"`
	Nodo          string   `json:"nodo,omitempty"`
	Asunto        string   `json:"asunto"`
	Descripcion   string   `json:"descripcion,omitempty"`
	Categoria     string   `json:"categoria,omitempty"`
	Prioridad     Priority `json:"prioridad,omitempty"`

	// SLAObjetivo records the SLA target assigned at creation. It is never
	// enforced here; breach computation lives elsewhere.
	SLAObjetivo string `json:"slaObjetivo,omitempty"`
}

func (t *Ticket) Core() *WorkItemCore { return &t.WorkItemCore }
func (t *Ticket) Resolution() *ResolutionReport { return &t.ResolutionReport }
func (t *Ticket) ItemKind() Kind { return KindTicket }

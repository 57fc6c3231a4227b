package domain

import "time"

// Kind identifies a work-item collection.
type Kind string

const (
	KindTicket       Kind = "tickets"
	KindAveria       Kind = "averias"
	KindVisita       Kind = "visitas"
	KindDerivacion   Kind = "derivaciones"
	KindSesionRemota Kind = "sesionesRemotas"
	KindPostVenta    Kind = "postventas"
)

// IDPrefix returns the identifier prefix used by the kind's collection.
func (k Kind) IDPrefix() string {
	switch k {
	case KindTicket:
		return "TK"
	case KindAveria:
		return "AV"
	case KindVisita:
		return "VT"
	case KindDerivacion:
		return "DPE"
	case KindSesionRemota:
		return "SR"
	case KindPostVenta:
		return "PV"
	}
	return ""
}

// Priority enumerates urgency for field work.
type Priority string

const (
	PriorityAlta  Priority = "Alta"
	PriorityMedia Priority = "Media"
	PriorityBaja  Priority = "Baja"
)

// StateTransition is an immutable audit entry. Entries are never edited or
// removed once appended to a historial.
type StateTransition struct {
	Fecha          time.Time `json:"fecha"`
	EstadoAnterior string    `json:"estadoAnterior"`
	EstadoNuevo    string    `json:"estadoNuevo"`
	Motivo         *string   `json:"motivo"`
}

// WorkItemCore holds the fields every work item carries. Historial is kept
// newest first.
type WorkItemCore struct {
	ID        string            `json:"id"`
	Estado    string            `json:"estado"`
	Fecha     time.Time         `json:"fecha"`
	Historial []StateTransition `json:"historial"`
}

// WorkItemID returns the collection-scoped identifier.
func (c *WorkItemCore) WorkItemID() string {
	return c.ID
}

// CurrentStatus returns the current status value.
func (c *WorkItemCore) CurrentStatus() string {
	return c.Estado
}

// WorkItem is implemented by every variant struct.
type WorkItem interface {
	Core() *WorkItemCore
	Resolution() *ResolutionReport
	ItemKind() Kind
}

// Attachment is an opaque record captured by the attachment collaborator;
// the engine stores it verbatim and never inspects contents.
type Attachment struct {
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	DataURL   string `json:"dataUrl"`
}

// Diagnostics is the optional technical-metrics snapshot attached to a
// completion report.
type Diagnostics struct {
	PingMs         *float64 `json:"ping,omitempty"`
	ThroughputMbps *float64 `json:"throughput,omitempty"`
	PacketLossPct  *float64 `json:"packetLoss,omitempty"`
	JitterMs       *float64 `json:"jitter,omitempty"`
}

// ResolutionReport is the structured completion report required by gated
// transitions. Solucion must be non-empty for the gate to pass.
type ResolutionReport struct {
	Solucion            string       `json:"solucion,omitempty"`
	AccionesRealizadas  string       `json:"accionesRealizadas,omitempty"`
	AdjuntosResolucion  []Attachment `json:"adjuntosResolucion,omitempty"`
	DiagnosticosFinales *Diagnostics `json:"diagnosticosFinales,omitempty"`
}

// HasSolucion reports whether a usable solution text is present.
func (r *ResolutionReport) HasSolucion() bool {
	if r == nil {
		return false
	}
	for _, ch := range r.Solucion {
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			return true
		}
	}
	return false
}

// Merge copies the non-empty parts of other onto the report. Attachments and
// diagnostics are cloned, never aliased: a merged report propagated onto a
// second entity must not share backing data with its source.
func (r *ResolutionReport) Merge(other *ResolutionReport) {
	if other == nil {
		return
	}
	if other.Solucion != "" {
		r.Solucion = other.Solucion
	}
	if other.AccionesRealizadas != "" {
		r.AccionesRealizadas = other.AccionesRealizadas
	}
	if other.AdjuntosResolucion != nil {
		r.AdjuntosResolucion = append([]Attachment(nil), other.AdjuntosResolucion...)
	}
	if other.DiagnosticosFinales != nil {
		diagnostics := *other.DiagnosticosFinales
		r.DiagnosticosFinales = &diagnostics
	}
}

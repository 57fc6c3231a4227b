package domain

// SesionRemota statuses. Every status other than En curso is terminal.
const (
	SesionEnCurso               = "En curso"
	SesionCompletada            = "Completada"
	SesionFallida               = "Fallida"
	SesionDerivadaVisita        = "Derivado a Visita"
	SesionDerivadaPlantaExterna = "Derivado a Planta Externa"
)

// SesionRemota is a remote-support session run against a client connection.
type SesionRemota struct {
	WorkItemCore
	ResolutionReport

	TicketID      string `json:"ticketId,omitempty"`
	ClienteID     string `json:"clienteId,omitempty"`
	ClienteNombre string `json:"clienteNombre,omitempty"`
	TecnicoID     string `json:"tecnicoId,omitempty"`
	MotivoSesion  string `json:"motivoSesion,omitempty"`
}

func (s *SesionRemota) Core() *WorkItemCore { return &s.WorkItemCore }
func (s *SesionRemota) Resolution() *ResolutionReport { return &s.ResolutionReport }
func (s *SesionRemota) ItemKind() Kind { return KindSesionRemota }

package domain

// Cliente is a read-only directory record. The engine only copies display
// fields from it when propagation spawns a linked work item.
type Cliente struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	Direccion  string `json:"direccion"`
	Nodo       string `json:"nodo"`
	Plan       string `json:"plan"`
	Tecnologia string `json:"tecnologia"`
	Telefono   string `json:"telefono"`
}

// Tecnico is a read-only directory record for field technicians.
type Tecnico struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Zona     string `json:"zona"`
	Telefono string `json:"telefono"`
}

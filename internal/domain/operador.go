package domain

import "time"

// OperatorRole enumerates back-office access levels.
type OperatorRole string

const (
	RoleAdmin      OperatorRole = "ADMIN"
	RoleSupervisor OperatorRole = "SUPERVISOR"
	RoleOperador   OperatorRole = "OPERADOR"
)

// Operador is a back-office account that drives the engine.
type Operador struct {
	ID           string
	Email        string
	Nombre       string
	Role         OperatorRole
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
}

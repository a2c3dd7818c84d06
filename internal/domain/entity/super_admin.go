package entity

import "time"

// SuperAdmin es el dueño del sistema: espacio de credenciales separado del de
// los usuarios de tenant y sin CompanyID. No lleva contador de bloqueo (el
// rate limit por IP cubre la fuerza bruta en este espacio).
type SuperAdmin struct {
	ID           string
	Name         string
	Email        string // único en el espacio de super admins
	PasswordHash string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

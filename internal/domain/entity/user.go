package entity

import "time"

// Roles válidos para el sistema. SUPER_ADMIN vive en su propia colección de
// credenciales (sin tenant); los demás pertenecen siempre a una Company.
const (
	RoleSuperAdmin   = "SUPER_ADMIN"
	RoleCompanyAdmin = "COMPANY_ADMIN"
	RoleManager      = "MANAGER"
	RoleUser         = "USER"
)

// User representa un usuario de un tenant (COMPANY_ADMIN, MANAGER o USER).
// FailedLoginAttempts y LockUntil implementan el bloqueo temporal tras
// intentos fallidos; se resetean en cada login exitoso.
type User struct {
	ID                  string
	CompanyID           string
	Name                string
	Email               string // único en el espacio de usuarios de tenant
	Phone               string
	PasswordHash        string // bcrypt, nunca plano en dominio después de persistir
	Role                string // COMPANY_ADMIN, MANAGER, USER
	Avatar              string
	IsActive            bool
	IsDeleted           bool
	FailedLoginAttempts int
	LockUntil           *time.Time // nil = sin bloqueo
	LastLogin           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked indica si la cuenta está bloqueada en el instante dado.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

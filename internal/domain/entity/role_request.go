package entity

import "time"

// Estados de una solicitud de ascenso de rol.
const (
	RoleRequestStatusPending  = "PENDING"
	RoleRequestStatusApproved = "APPROVED"
	RoleRequestStatusRejected = "REJECTED"
)

// RoleUpgradeRequest solicitud de un USER para ascender a MANAGER dentro de
// su empresa. La revisa un COMPANY_ADMIN; la aprobación cambia el rol del
// usuario, el rechazo solo cierra la solicitud. Un usuario solo puede tener
// una solicitud PENDING a la vez.
type RoleUpgradeRequest struct {
	ID            string
	CompanyID     string
	UserID        string
	CurrentRole   string
	RequestedRole string // siempre MANAGER
	Status        string
	Reason        string
	ReviewedBy    string // vacío mientras esté PENDING
	ReviewedAt    *time.Time
	ReviewNotes   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPending indica si la solicitud sigue abierta.
func (r *RoleUpgradeRequest) IsPending() bool {
	return r.Status == RoleRequestStatusPending
}

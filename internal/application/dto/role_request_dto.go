package dto

import "time"

// CreateRoleRequestRequest solicitud de ascenso a MANAGER del propio usuario.
type CreateRoleRequestRequest struct {
	Reason string `json:"reason"`
}

// ReviewRoleRequestRequest notas opcionales del admin al aprobar o rechazar.
type ReviewRoleRequestRequest struct {
	ReviewNotes string `json:"review_notes"`
}

// RoleRequestResponse solicitud de ascenso serializada.
type RoleRequestResponse struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"company_id"`
	UserID        string     `json:"user_id"`
	CurrentRole   string     `json:"current_role"`
	RequestedRole string     `json:"requested_role"`
	Status        string     `json:"status"`
	Reason        string     `json:"reason,omitempty"`
	ReviewedBy    string     `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes   string     `json:"review_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RoleRequestListRequest filtros del listado de solicitudes.
type RoleRequestListRequest struct {
	Status string `query:"status"` // PENDING, APPROVED, REJECTED
	UserID string `query:"user_id"`
	PageRequest
}

// RoleRequestListResponse listado paginado de solicitudes.
type RoleRequestListResponse struct {
	Items []RoleRequestResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

package dto

import "time"

// ActivityLogResponse evento del audit trail.
type ActivityLogResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id,omitempty"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityLogListRequest filtros de consulta del audit trail.
type ActivityLogListRequest struct {
	UserID   string `query:"user_id"`
	Resource string `query:"resource"`
	PageRequest
}

// ActivityLogListResponse listado paginado del audit trail.
type ActivityLogListResponse struct {
	Items []ActivityLogResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

package entity

import "time"

// ActivityLog evento de auditoría. Se escribe de forma asíncrona y nunca
// bloquea ni hace fallar la operación de negocio que lo originó.
type ActivityLog struct {
	ID         string
	CompanyID  string // vacío para acciones del super admin
	UserID     string
	Action     string // CREATE_PRODUCT, STOCK_OUT, REFUND_INVOICE, ...
	Resource   string
	ResourceID string
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name    string     `json:"name"`
	Email   string     `json:"email,omitempty"`
	Phone   string     `json:"phone"`
	Address AddressDTO `json:"address"`
	Notes   string     `json:"notes,omitempty"`
}

// UpdateCustomerRequest cambios sobre un cliente. Los agregados de compra
// no se tocan por aquí: solo el motor de ventas los muta.
type UpdateCustomerRequest struct {
	Name    string      `json:"name,omitempty"`
	Email   string      `json:"email,omitempty"`
	Phone   string      `json:"phone,omitempty"`
	Address *AddressDTO `json:"address,omitempty"`
	Notes   string      `json:"notes,omitempty"`
}

// CustomerResponse representación pública del cliente.
type CustomerResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Name             string          `json:"name"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone"`
	Address          AddressDTO      `json:"address"`
	TotalPurchases   int64           `json:"total_purchases"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CustomerListRequest filtros del listado de clientes.
type CustomerListRequest struct {
	Search string `query:"search"`
	PageRequest
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	BasePrice decimal.Decimal `json:"base_price"`
	Unit      string          `json:"unit"`
}

// UpdateProductRequest cambios sobre un producto.
type UpdateProductRequest struct {
	Name      string           `json:"name,omitempty"`
	BasePrice *decimal.Decimal `json:"base_price,omitempty"`
	Unit      string           `json:"unit,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

// ProductResponse representación pública del producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	BasePrice decimal.Decimal `json:"base_price"`
	Unit      string          `json:"unit"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListRequest filtros del listado de productos.
type ProductListRequest struct {
	Search string `query:"search"`
	PageRequest
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

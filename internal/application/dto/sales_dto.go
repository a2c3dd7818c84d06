package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de la venta.
type InvoiceItemRequest struct {
	ProductID    string          `json:"product_id"`
	VariationSKU string          `json:"variation_sku,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	Tax          decimal.Decimal `json:"tax"`
}

// CreateInvoiceRequest creación de factura/venta.
type CreateInvoiceRequest struct {
	CustomerID    string               `json:"customer_id,omitempty"`
	Items         []InvoiceItemRequest `json:"items"`
	Discount      decimal.Decimal      `json:"discount"`
	PaymentMethod string               `json:"payment_method"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	VariationSKU string          `json:"variation_sku,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// InvoiceResponse factura completa.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    string                `json:"customer_id,omitempty"`
	CustomerName  string                `json:"customer_name,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Discount      decimal.Decimal       `json:"discount"`
	Tax           decimal.Decimal       `json:"tax"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	DueAmount     decimal.Decimal       `json:"due_amount"`
	PaymentMethod string                `json:"payment_method"`
	PaymentStatus string                `json:"payment_status"`
	Status        string                `json:"status"`
	CreatedBy     string                `json:"created_by"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceListRequest filtros del listado de facturas.
type InvoiceListRequest struct {
	Status        string `query:"status"`
	PaymentStatus string `query:"payment_status"`
	CustomerID    string `query:"customer_id"`
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
	PageRequest
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

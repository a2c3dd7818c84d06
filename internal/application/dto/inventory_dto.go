package dto

import "time"

// StockInRequest entrada de stock (compra/reposición).
type StockInRequest struct {
	ProductID    string `json:"product_id"`
	VariationSKU string `json:"variation_sku,omitempty"`
	Quantity     int64  `json:"quantity"`
	Reason       string `json:"reason,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// StockOutRequest salida de stock (venta u otra salida manual).
type StockOutRequest struct {
	ProductID    string `json:"product_id"`
	VariationSKU string `json:"variation_sku,omitempty"`
	Quantity     int64  `json:"quantity"`
	ReferenceID  string `json:"reference_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// AdjustStockRequest ajuste manual: add suma, remove resta, set fija el valor.
type AdjustStockRequest struct {
	ProductID    string `json:"product_id"`
	VariationSKU string `json:"variation_sku,omitempty"`
	Quantity     int64  `json:"quantity"`
	Type         string `json:"type"` // add | remove | set
	Reason       string `json:"reason"`
	Notes        string `json:"notes,omitempty"`
}

// InventoryResponse fila de inventario.
type InventoryResponse struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	VariationSKU  string     `json:"variation_sku,omitempty"`
	CurrentStock  int64      `json:"current_stock"`
	MinStockLevel int64      `json:"min_stock_level"`
	LowStock      bool       `json:"low_stock"`
	LastRestock   *time.Time `json:"last_restock_date,omitempty"`
	LastStockOut  *time.Time `json:"last_stock_out_date,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// InventoryListRequest filtros del listado de inventario.
type InventoryListRequest struct {
	ProductID string `query:"product_id"`
	LowStock  bool   `query:"low_stock"`
	PageRequest
}

// InventoryListResponse listado paginado de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	VariationSKU  string    `json:"variation_sku,omitempty"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	PreviousStock int64     `json:"previous_stock"`
	NewStock      int64     `json:"new_stock"`
	Reason        string    `json:"reason,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	PerformedBy   string    `json:"performed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementListRequest filtros del historial de movimientos.
type MovementListRequest struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	PageRequest
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

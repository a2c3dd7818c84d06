package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada (compra, reembolso)
	MovementTypeOUT        = "OUT"        // salida (venta)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
)

// Modos del ajuste manual de stock.
const (
	AdjustAdd    = "add"
	AdjustRemove = "remove"
	AdjustSet    = "set"
)

// DefaultMinStockLevel nivel mínimo asignado al crear filas de inventario perezosamente.
const DefaultMinStockLevel = 10

// Inventory representa el stock actual de un producto (o variación) en una
// empresa. Única por (CompanyID, ProductID, VariationSKU). CurrentStock nunca
// baja de cero; solo muta aplicando un StockMovement.
type Inventory struct {
	ID               string
	CompanyID        string
	ProductID        string
	VariationSKU     string // vacío si el producto no tiene variaciones
	CurrentStock     int64
	MinStockLevel    int64
	LastRestockDate  *time.Time
	LastStockOutDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLowStock indica si el stock está por debajo del nivel mínimo.
func (i *Inventory) IsLowStock() bool {
	return i.CurrentStock < i.MinStockLevel
}

// StockMovement registro inmutable del libro de inventario. Append-only:
// NewStock - PreviousStock debe coincidir con el delta firmado que implica
// Type y Quantity, de modo que el stock actual sea siempre reconstruible
// sumando movimientos.
type StockMovement struct {
	ID            string
	CompanyID     string
	ProductID     string
	VariationSKU  string
	Type          string // IN, OUT, ADJUSTMENT
	Quantity      int64  // siempre positiva; el signo lo da Type
	PreviousStock int64
	NewStock      int64
	Reason        string
	ReferenceID   string // factura u orden que originó el movimiento
	Notes         string
	PerformedBy   string // UserID
	CreatedAt     time.Time
}

// Delta devuelve el cambio firmado que el movimiento aplicó al stock.
func (m *StockMovement) Delta() int64 {
	return m.NewStock - m.PreviousStock
}

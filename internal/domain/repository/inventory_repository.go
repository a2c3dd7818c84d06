package repository

import (
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// InventoryFilter filtros del listado de inventario.
type InventoryFilter struct {
	ProductID string
	LowStock  bool // solo filas con CurrentStock < MinStockLevel
	Limit     int
	Offset    int
}

// InventoryRepository puerto para las filas de inventario. GetForUpdate se
// usa dentro de transacciones (SELECT FOR UPDATE) para serializar los
// movimientos concurrentes sobre la misma fila.
type InventoryRepository interface {
	Create(inv *entity.Inventory) error
	// Get devuelve nil si la fila no existe (creación perezosa la resuelve el caso de uso).
	Get(companyID, productID, variationSKU string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update; nil si no existe.
	GetForUpdate(companyID, productID, variationSKU string) (*entity.Inventory, error)
	UpdateStock(inv *entity.Inventory) error
	List(scope access.Scope, f InventoryFilter) ([]*entity.Inventory, int, error)
	// ListProductIDs productos que ya tienen fila de inventario en la empresa.
	ListProductIDs(companyID string) ([]string, error)
}

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	StartDate string // ISO 8601, inclusive
	EndDate   string
	Limit     int
	Offset    int
}

// StockMovementRepository puerto del libro de movimientos (append-only:
// solo Create y lecturas; no hay Update ni Delete).
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	List(scope access.Scope, f MovementFilter) ([]*entity.StockMovement, int, error)
}

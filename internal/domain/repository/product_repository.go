package repository

import (
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // sobre nombre y SKU
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(scope access.Scope, id string) (*entity.Product, error)
	GetBySKU(companyID, sku string) (*entity.Product, error)
	List(scope access.Scope, f ProductFilter) ([]*entity.Product, int, error)
	Update(product *entity.Product) error
	// ListActiveIDs ids de productos activos de la empresa (sincronización
	// perezosa de filas de inventario).
	ListActiveIDs(companyID string) ([]string, error)
}

package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// CustomerFilter filtros del listado de clientes.
type CustomerFilter struct {
	Search string // sobre nombre, email y teléfono
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
// Los agregados de compra solo mutan vía ApplyPurchase/ReversePurchase,
// llamados por el motor de ventas dentro de su transacción.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(scope access.Scope, id string) (*entity.Customer, error)
	List(scope access.Scope, f CustomerFilter) ([]*entity.Customer, int, error)
	Update(customer *entity.Customer) error
	// ApplyPurchase incrementa TotalPurchases, suma amount a TotalSpent y fija LastPurchaseDate.
	ApplyPurchase(id string, amount decimal.Decimal, at time.Time) error
	// ReversePurchase decrementa TotalPurchases y resta amount de TotalSpent (reembolso).
	ReversePurchase(id string, amount decimal.Decimal) error
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la empresa. TotalPurchases y TotalSpent
// son agregados mantenidos por el motor de ventas (venta suma, reembolso resta).
type Customer struct {
	ID               string
	CompanyID        string
	Name             string
	Email            string
	Phone            string
	Address          Address
	TotalPurchases   int64
	TotalSpent       decimal.Decimal
	LastPurchaseDate *time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

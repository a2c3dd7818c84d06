package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible de una empresa.
type Product struct {
	ID        string
	CompanyID string
	Name      string
	SKU       string // único por empresa
	BasePrice decimal.Decimal
	Unit      string
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

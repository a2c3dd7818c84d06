package repository

import (
	"time"

	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas.
type InvoiceFilter struct {
	Status        string
	PaymentStatus string
	CustomerID    string
	StartDate     string // ISO 8601, inclusive
	EndDate       string
	Limit         int
	Offset        int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas. Dentro de la transacción de venta,
	// junto con las salidas de stock.
	Create(invoice *entity.Invoice) error
	GetByID(scope access.Scope, id string) (*entity.Invoice, error)
	List(scope access.Scope, f InvoiceFilter) ([]*entity.Invoice, int, error)
	UpdateStatus(id, status string, at time.Time) error
	// CountForMonth facturas de la empresa creadas en el mes dado; base del
	// consecutivo INV-YYYYMM-NNNN (reinicia cada mes).
	CountForMonth(companyID string, year int, month time.Month) (int, error)
}

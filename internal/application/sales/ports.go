package sales

import (
	"context"

	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos que
// necesita una venta: consecutivo y factura, salidas de stock y agregados
// del cliente se escriben todos o ninguno.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// StockMover es la porción del motor de inventario que la venta usa dentro
// de su transacción.
type StockMover interface {
	StockOutInTx(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		companyID, userID, productID, variationSKU string,
		quantity int64,
		referenceID string,
	) error
	StockInInTx(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		companyID, userID, productID, variationSKU string,
		quantity int64,
		referenceID string,
	) error
}

package inventory

import (
	"context"

	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: fila de stock y movimiento se escriben juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

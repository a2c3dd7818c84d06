package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// UseCase es el motor de inventario: entradas, salidas y ajustes de stock,
// siempre dentro de una transacción con bloqueo de fila (SELECT FOR UPDATE)
// y con su movimiento correspondiente en el libro append-only.
type UseCase struct {
	txRunner  TxRunner
	products  repository.ProductRepository
	levels    repository.InventoryRepository
	movements repository.StockMovementRepository
	log       *logger.Logger
}

// NewUseCase construye el motor de inventario.
func NewUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	levels repository.InventoryRepository,
	movements repository.StockMovementRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		products:  products,
		levels:    levels,
		movements: movements,
		log:       log,
	}
}

// StockIn registra una entrada de stock (compra o reposición).
func (uc *UseCase) StockIn(ctx context.Context, p access.Principal, in dto.StockInRequest) (*dto.InventoryResponse, error) {
	if err := uc.validateProduct(p, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}

	var result *entity.Inventory
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		inv, err := uc.applyDelta(invRepo, movRepo, stockChange{
			companyID:    p.CompanyID,
			productID:    in.ProductID,
			variationSKU: in.VariationSKU,
			movementType: entity.MovementTypeIN,
			quantity:     in.Quantity,
			delta:        in.Quantity,
			reason:       in.Reason,
			notes:        in.Notes,
			performedBy:  p.UserID,
		})
		result = inv
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := inventoryToResponse(result)
	return &resp, nil
}

// StockOut registra una salida manual de stock.
func (uc *UseCase) StockOut(ctx context.Context, p access.Principal, in dto.StockOutRequest) (*dto.InventoryResponse, error) {
	if err := uc.validateProduct(p, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}

	var result *entity.Inventory
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		inv, err := uc.applyDelta(invRepo, movRepo, stockChange{
			companyID:    p.CompanyID,
			productID:    in.ProductID,
			variationSKU: in.VariationSKU,
			movementType: entity.MovementTypeOUT,
			quantity:     in.Quantity,
			delta:        -in.Quantity,
			referenceID:  in.ReferenceID,
			notes:        in.Notes,
			performedBy:  p.UserID,
		})
		result = inv
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := inventoryToResponse(result)
	return &resp, nil
}

// Adjust aplica un ajuste manual: add suma, remove resta, set fija el valor.
// Reason es obligatorio en los ajustes.
func (uc *UseCase) Adjust(ctx context.Context, p access.Principal, in dto.AdjustStockRequest) (*dto.InventoryResponse, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: reason es requerido en ajustes", domain.ErrInvalidInput)
	}
	switch in.Type {
	case entity.AdjustAdd, entity.AdjustRemove, entity.AdjustSet:
	default:
		return nil, fmt.Errorf("%w: tipo de ajuste inválido %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Type == entity.AdjustSet {
		if in.Quantity < 0 {
			return nil, domain.ErrNegativeStock
		}
		// set a cero es válido: vaciar la estantería.
		if err := uc.validateProduct(p, in.ProductID, 1); err != nil {
			return nil, err
		}
	} else if err := uc.validateProduct(p, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}

	var result *entity.Inventory
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		inv, err := uc.lockOrCreate(invRepo, p.CompanyID, in.ProductID, in.VariationSKU)
		if err != nil {
			return err
		}

		var delta int64
		switch in.Type {
		case entity.AdjustAdd:
			delta = in.Quantity
		case entity.AdjustRemove:
			delta = -in.Quantity
		case entity.AdjustSet:
			delta = in.Quantity - inv.CurrentStock
		}

		inv, err = uc.applyDeltaLocked(invRepo, movRepo, inv, stockChange{
			companyID:    p.CompanyID,
			productID:    in.ProductID,
			variationSKU: in.VariationSKU,
			movementType: entity.MovementTypeADJUSTMENT,
			quantity:     abs(delta),
			delta:        delta,
			reason:       in.Reason,
			notes:        in.Notes,
			performedBy:  p.UserID,
		})
		result = inv
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := inventoryToResponse(result)
	return &resp, nil
}

// StockOutInTx descuenta stock dentro de una transacción ajena (la venta).
// El caller ya posee los repos atados a la tx.
func (uc *UseCase) StockOutInTx(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	companyID, userID, productID, variationSKU string,
	quantity int64,
	referenceID string,
) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	inv, err := uc.lockOrCreate(invRepo, companyID, productID, variationSKU)
	if err != nil {
		return err
	}
	_, err = uc.applyDeltaLocked(invRepo, movRepo, inv, stockChange{
		companyID:    companyID,
		productID:    productID,
		variationSKU: variationSKU,
		movementType: entity.MovementTypeOUT,
		quantity:     quantity,
		delta:        -quantity,
		reason:       "venta",
		referenceID:  referenceID,
		performedBy:  userID,
	})
	return err
}

// StockInInTx repone stock dentro de una transacción ajena (el reembolso).
func (uc *UseCase) StockInInTx(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	companyID, userID, productID, variationSKU string,
	quantity int64,
	referenceID string,
) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	inv, err := uc.lockOrCreate(invRepo, companyID, productID, variationSKU)
	if err != nil {
		return err
	}
	_, err = uc.applyDeltaLocked(invRepo, movRepo, inv, stockChange{
		companyID:    companyID,
		productID:    productID,
		variationSKU: variationSKU,
		movementType: entity.MovementTypeIN,
		quantity:     quantity,
		delta:        quantity,
		reason:       "reembolso",
		referenceID:  referenceID,
		performedBy:  userID,
	})
	return err
}

// List devuelve el inventario de la empresa, creando antes las filas que
// falten para productos activos (stock 0, mínimo por defecto).
func (uc *UseCase) List(p access.Principal, in dto.InventoryListRequest) (*dto.InventoryListResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	if !scope.All() {
		if err := uc.syncMissingRows(scope.CompanyID()); err != nil {
			return nil, err
		}
	}
	in.DefaultPage()

	levels, total, err := uc.levels.List(scope, repository.InventoryFilter{
		ProductID: in.ProductID,
		LowStock:  in.LowStock,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.InventoryResponse, 0, len(levels))
	for _, inv := range levels {
		items = append(items, inventoryToResponse(inv))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Movements devuelve el historial de movimientos con filtros.
func (uc *UseCase) Movements(p access.Principal, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	movs, total, err := uc.movements.List(scope, repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			VariationSKU:  m.VariationSKU,
			Type:          m.Type,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			Reason:        m.Reason,
			ReferenceID:   m.ReferenceID,
			PerformedBy:   m.PerformedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ─── internos ────────────────────────────────────────────────────────────────

// stockChange describe una mutación de stock pendiente de aplicar.
type stockChange struct {
	companyID    string
	productID    string
	variationSKU string
	movementType string
	quantity     int64 // siempre positiva
	delta        int64 // cambio firmado
	reason       string
	referenceID  string
	notes        string
	performedBy  string
}

func (uc *UseCase) validateProduct(p access.Principal, productID string, quantity int64) error {
	if productID == "" {
		return fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if p.CompanyID == "" {
		return domain.ErrForbidden
	}
	scope, err := access.ScopeFor(p)
	if err != nil {
		return err
	}
	if _, err := uc.products.GetByID(scope, productID); err != nil {
		return err
	}
	return nil
}

// lockOrCreate bloquea la fila de inventario o la crea perezosamente con
// stock cero y el nivel mínimo por defecto.
func (uc *UseCase) lockOrCreate(invRepo repository.InventoryRepository, companyID, productID, variationSKU string) (*entity.Inventory, error) {
	inv, err := invRepo.GetForUpdate(companyID, productID, variationSKU)
	if err != nil {
		return nil, err
	}
	if inv != nil {
		return inv, nil
	}

	now := time.Now()
	inv = &entity.Inventory{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		ProductID:     productID,
		VariationSKU:  variationSKU,
		CurrentStock:  0,
		MinStockLevel: entity.DefaultMinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := invRepo.Create(inv); err != nil {
		return nil, err
	}
	// Re-lock: la fila recién insertada queda bloqueada por esta misma tx.
	return inv, nil
}

func (uc *UseCase) applyDelta(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository, ch stockChange) (*entity.Inventory, error) {
	inv, err := uc.lockOrCreate(invRepo, ch.companyID, ch.productID, ch.variationSKU)
	if err != nil {
		return nil, err
	}
	return uc.applyDeltaLocked(invRepo, movRepo, inv, ch)
}

// applyDeltaLocked muta la fila ya bloqueada y escribe el movimiento.
// Si el delta dejaría el stock negativo, falla sin tocar nada.
func (uc *UseCase) applyDeltaLocked(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository, inv *entity.Inventory, ch stockChange) (*entity.Inventory, error) {
	previous := inv.CurrentStock
	next := previous + ch.delta
	if next < 0 {
		if ch.movementType == entity.MovementTypeOUT {
			return nil, fmt.Errorf("%w: stock %d, solicitado %d", domain.ErrInsufficientStock, previous, ch.quantity)
		}
		return nil, domain.ErrNegativeStock
	}

	now := time.Now()
	inv.CurrentStock = next
	inv.UpdatedAt = now
	switch {
	case ch.delta > 0:
		inv.LastRestockDate = &now
	case ch.delta < 0:
		inv.LastStockOutDate = &now
	}
	if err := invRepo.UpdateStock(inv); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.NewString(),
		CompanyID:     ch.companyID,
		ProductID:     ch.productID,
		VariationSKU:  ch.variationSKU,
		Type:          ch.movementType,
		Quantity:      ch.quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reason:        ch.reason,
		ReferenceID:   ch.referenceID,
		Notes:         ch.notes,
		PerformedBy:   ch.performedBy,
		CreatedAt:     now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	if inv.IsLowStock() {
		uc.log.Warn().
			Str("company_id", inv.CompanyID).
			Str("product_id", inv.ProductID).
			Int64("current_stock", inv.CurrentStock).
			Int64("min_stock_level", inv.MinStockLevel).
			Msg("stock por debajo del mínimo")
	}
	return inv, nil
}

// syncMissingRows crea filas de inventario para productos activos que aún no
// tienen una, de modo que el listado siempre refleje el catálogo completo.
func (uc *UseCase) syncMissingRows(companyID string) error {
	productIDs, err := uc.products.ListActiveIDs(companyID)
	if err != nil {
		return err
	}
	existing, err := uc.levels.ListProductIDs(companyID)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}

	now := time.Now()
	for _, id := range productIDs {
		if seen[id] {
			continue
		}
		inv := &entity.Inventory{
			ID:            uuid.NewString(),
			CompanyID:     companyID,
			ProductID:     id,
			CurrentStock:  0,
			MinStockLevel: entity.DefaultMinStockLevel,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.levels.Create(inv); err != nil {
			return err
		}
	}
	return nil
}

func inventoryToResponse(inv *entity.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:            inv.ID,
		ProductID:     inv.ProductID,
		VariationSKU:  inv.VariationSKU,
		CurrentStock:  inv.CurrentStock,
		MinStockLevel: inv.MinStockLevel,
		LowStock:      inv.IsLowStock(),
		LastRestock:   inv.LastRestockDate,
		LastStockOut:  inv.LastStockOutDate,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/application/inventory"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes. El runner simula la transacción con snapshot/restore: si fn falla,
// el estado vuelve al inicio, igual que un Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type invKey struct{ companyID, productID, sku string }

type invRepoFake struct {
	rows map[invKey]*entity.Inventory
}

func newInvRepoFake() *invRepoFake {
	return &invRepoFake{rows: map[invKey]*entity.Inventory{}}
}

func (r *invRepoFake) Create(inv *entity.Inventory) error {
	r.rows[invKey{inv.CompanyID, inv.ProductID, inv.VariationSKU}] = inv
	return nil
}

func (r *invRepoFake) Get(companyID, productID, variationSKU string) (*entity.Inventory, error) {
	return r.rows[invKey{companyID, productID, variationSKU}], nil
}

func (r *invRepoFake) GetForUpdate(companyID, productID, variationSKU string) (*entity.Inventory, error) {
	return r.rows[invKey{companyID, productID, variationSKU}], nil
}

func (r *invRepoFake) UpdateStock(inv *entity.Inventory) error {
	r.rows[invKey{inv.CompanyID, inv.ProductID, inv.VariationSKU}] = inv
	return nil
}

func (r *invRepoFake) List(scope access.Scope, f repository.InventoryFilter) ([]*entity.Inventory, int, error) {
	var out []*entity.Inventory
	for _, inv := range r.rows {
		if !scope.Allows(inv.CompanyID) {
			continue
		}
		if f.LowStock && !inv.IsLowStock() {
			continue
		}
		out = append(out, inv)
	}
	return out, len(out), nil
}

func (r *invRepoFake) ListProductIDs(companyID string) ([]string, error) {
	var out []string
	for k := range r.rows {
		if k.companyID == companyID {
			out = append(out, k.productID)
		}
	}
	return out, nil
}

func (r *invRepoFake) snapshot() map[invKey]entity.Inventory {
	s := make(map[invKey]entity.Inventory, len(r.rows))
	for k, v := range r.rows {
		s[k] = *v
	}
	return s
}

func (r *invRepoFake) restore(s map[invKey]entity.Inventory) {
	r.rows = make(map[invKey]*entity.Inventory, len(s))
	for k, v := range s {
		row := v
		r.rows[k] = &row
	}
}

type movRepoFake struct {
	movements []*entity.StockMovement
}

func (r *movRepoFake) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *movRepoFake) List(scope access.Scope, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if scope.Allows(m.CompanyID) && (f.Type == "" || m.Type == f.Type) {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

type txRunnerFake struct {
	inv *invRepoFake
	mov *movRepoFake
}

func (t *txRunnerFake) Run(_ context.Context, fn func(repository.InventoryRepository, repository.StockMovementRepository) error) error {
	invSnap := t.inv.snapshot()
	movSnap := len(t.mov.movements)
	if err := fn(t.inv, t.mov); err != nil {
		t.inv.restore(invSnap)
		t.mov.movements = t.mov.movements[:movSnap]
		return err
	}
	return nil
}

type productRepoFake struct {
	byID map[string]*entity.Product
}

func newProductRepoFake(ps ...*entity.Product) *productRepoFake {
	r := &productRepoFake{byID: map[string]*entity.Product{}}
	for _, p := range ps {
		r.byID[p.ID] = p
	}
	return r
}

func (r *productRepoFake) Create(p *entity.Product) error { r.byID[p.ID] = p; return nil }

func (r *productRepoFake) GetByID(scope access.Scope, id string) (*entity.Product, error) {
	if p, ok := r.byID[id]; ok && scope.Allows(p.CompanyID) {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *productRepoFake) GetBySKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *productRepoFake) List(scope access.Scope, f repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *productRepoFake) Update(p *entity.Product) error { return nil }

func (r *productRepoFake) ListActiveIDs(companyID string) ([]string, error) {
	var out []string
	for _, p := range r.byID {
		if p.CompanyID == companyID && p.IsActive {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc  *inventory.UseCase
	inv *invRepoFake
	mov *movRepoFake
	p   access.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	inv := newInvRepoFake()
	mov := &movRepoFake{}
	products := newProductRepoFake(&entity.Product{
		ID:        "prod-1",
		CompanyID: "comp-1",
		Name:      "Camiseta",
		SKU:       "CAM-001",
		IsActive:  true,
	})
	runner := &txRunnerFake{inv: inv, mov: mov}
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	return &fixture{
		uc:  inventory.NewUseCase(runner, products, inv, mov, log),
		inv: inv,
		mov: mov,
		p:   access.Principal{UserID: "user-1", Role: entity.RoleManager, CompanyID: "comp-1"},
	}
}

func (f *fixture) stock(t *testing.T, productID string) int64 {
	t.Helper()
	inv, err := f.inv.Get("comp-1", productID, "")
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv.CurrentStock
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas, salidas y creación perezosa
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_CreaFilaPerezosamente(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.StockIn(context.Background(), f.p, dto.StockInRequest{
		ProductID: "prod-1",
		Quantity:  25,
		Reason:    "compra",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), res.CurrentStock)
	assert.Equal(t, int64(entity.DefaultMinStockLevel), res.MinStockLevel)
	assert.False(t, res.LowStock)
	assert.NotNil(t, res.LastRestock)

	require.Len(t, f.mov.movements, 1)
	m := f.mov.movements[0]
	assert.Equal(t, entity.MovementTypeIN, m.Type)
	assert.Equal(t, int64(0), m.PreviousStock)
	assert.Equal(t, int64(25), m.NewStock)
	assert.Equal(t, "user-1", m.PerformedBy)
}

func TestStockOut_DescuentaYRegistraMovimiento(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.StockIn(context.Background(), f.p, dto.StockInRequest{ProductID: "prod-1", Quantity: 30})
	require.NoError(t, err)

	res, err := f.uc.StockOut(context.Background(), f.p, dto.StockOutRequest{
		ProductID:   "prod-1",
		Quantity:    12,
		ReferenceID: "inv-77",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(18), res.CurrentStock)
	require.Len(t, f.mov.movements, 2)
	m := f.mov.movements[1]
	assert.Equal(t, entity.MovementTypeOUT, m.Type)
	assert.Equal(t, "inv-77", m.ReferenceID)
}

func TestStockOut_InsuficienteNoTocaNada(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.StockIn(context.Background(), f.p, dto.StockInRequest{ProductID: "prod-1", Quantity: 5})
	require.NoError(t, err)

	_, err = f.uc.StockOut(context.Background(), f.p, dto.StockOutRequest{ProductID: "prod-1", Quantity: 8})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), f.stock(t, "prod-1"), "la salida fallida no altera el stock")
	assert.Len(t, f.mov.movements, 1, "la salida fallida no deja movimiento")
}

func TestStock_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.StockIn(context.Background(), f.p, dto.StockInRequest{ProductID: "prod-1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.StockOut(context.Background(), f.p, dto.StockOutRequest{ProductID: "prod-1", Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockIn_ProductoDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	ajeno := access.Principal{UserID: "user-9", Role: entity.RoleManager, CompanyID: "comp-2"}

	_, err := f.uc.StockIn(context.Background(), ajeno, dto.StockInRequest{ProductID: "prod-1", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto ajeno es invisible, no prohibido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_AddRemoveSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Adjust(ctx, f.p, dto.AdjustStockRequest{
		ProductID: "prod-1", Quantity: 20, Type: entity.AdjustAdd, Reason: "conteo inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), f.stock(t, "prod-1"))

	_, err = f.uc.Adjust(ctx, f.p, dto.AdjustStockRequest{
		ProductID: "prod-1", Quantity: 6, Type: entity.AdjustRemove, Reason: "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(14), f.stock(t, "prod-1"))

	res, err := f.uc.Adjust(ctx, f.p, dto.AdjustStockRequest{
		ProductID: "prod-1", Quantity: 3, Type: entity.AdjustSet, Reason: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.CurrentStock)
	assert.True(t, res.LowStock)

	// set registra el delta real en el movimiento: 14 -> 3.
	last := f.mov.movements[len(f.mov.movements)-1]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, last.Type)
	assert.Equal(t, int64(14), last.PreviousStock)
	assert.Equal(t, int64(3), last.NewStock)
	assert.Equal(t, int64(11), last.Quantity)
}

func TestAdjust_RequiereReason(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Adjust(context.Background(), f.p, dto.AdjustStockRequest{
		ProductID: "prod-1", Quantity: 5, Type: entity.AdjustAdd,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_RemoveNoPuedeDejarNegativo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Adjust(context.Background(), f.p, dto.AdjustStockRequest{
		ProductID: "prod-1", Quantity: 4, Type: entity.AdjustAdd, Reason: "conteo",
	})
	require.NoError(t, err)

	_, err = f.uc.Adjust(context.Background(), f.p, dto.AdjustStockRequest{
		ProductID: "prod-1", Quantity: 9, Type: entity.AdjustRemove, Reason: "merma",
	})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, int64(4), f.stock(t, "prod-1"))
}

func TestAdjust_SetNegativoRechazado(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Adjust(context.Background(), f.p, dto.AdjustStockRequest{
		ProductID: "prod-1", Quantity: -2, Type: entity.AdjustSet, Reason: "conteo",
	})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del libro: el stock es reconstruible sumando deltas
// ──────────────────────────────────────────────────────────────────────────────

func TestLibro_StockReconstruibleDesdeMovimientos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, f.p, dto.StockInRequest{ProductID: "prod-1", Quantity: 40})
	require.NoError(t, err)
	_, err = f.uc.StockOut(ctx, f.p, dto.StockOutRequest{ProductID: "prod-1", Quantity: 15})
	require.NoError(t, err)
	_, err = f.uc.Adjust(ctx, f.p, dto.AdjustStockRequest{ProductID: "prod-1", Quantity: 30, Type: entity.AdjustSet, Reason: "conteo"})
	require.NoError(t, err)
	_, err = f.uc.StockOut(ctx, f.p, dto.StockOutRequest{ProductID: "prod-1", Quantity: 100})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var rebuilt int64
	for _, m := range f.mov.movements {
		assert.Equal(t, m.PreviousStock, rebuilt, "cada movimiento parte del stock que dejó el anterior")
		rebuilt += m.Delta()
	}
	assert.Equal(t, f.stock(t, "prod-1"), rebuilt, "la suma de deltas reproduce el stock actual")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado con sincronización perezosa
// ──────────────────────────────────────────────────────────────────────────────

func TestList_SincronizaProductosSinFila(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.List(f.p, dto.InventoryListRequest{})
	require.NoError(t, err)

	require.Len(t, res.Items, 1, "el producto activo sin fila aparece con stock cero")
	assert.Equal(t, "prod-1", res.Items[0].ProductID)
	assert.Equal(t, int64(0), res.Items[0].CurrentStock)
	assert.True(t, res.Items[0].LowStock)
}

func TestList_FiltroLowStock(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.StockIn(context.Background(), f.p, dto.StockInRequest{ProductID: "prod-1", Quantity: 50})
	require.NoError(t, err)

	res, err := f.uc.List(f.p, dto.InventoryListRequest{LowStock: true})
	require.NoError(t, err)
	assert.Empty(t, res.Items, "con 50 unidades no hay bajo stock")
}

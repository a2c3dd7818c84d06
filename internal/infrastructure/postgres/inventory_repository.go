package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, company_id, product_id, variation_sku, current_stock,
	min_stock_level, last_restock_date, last_stock_out_date, created_at, updated_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
// Con un pgx.Tx como Querier, GetForUpdate serializa los movimientos
// concurrentes sobre la misma fila (company_id, product_id, variation_sku).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta una fila de inventario (creación perezosa desde el caso de uso).
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.ProductID, inv.VariationSKU, inv.CurrentStock,
		inv.MinStockLevel, inv.LastRestockDate, inv.LastStockOutDate, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Get devuelve la fila o nil si no existe.
func (r *InventoryRepo) Get(companyID, productID, variationSKU string) (*entity.Inventory, error) {
	return r.get(companyID, productID, variationSKU, "")
}

// GetForUpdate bloquea la fila con SELECT FOR UPDATE; nil si no existe.
func (r *InventoryRepo) GetForUpdate(companyID, productID, variationSKU string) (*entity.Inventory, error) {
	return r.get(companyID, productID, variationSKU, " FOR UPDATE")
}

func (r *InventoryRepo) get(companyID, productID, variationSKU, suffix string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory
		WHERE company_id = $1 AND product_id = $2 AND variation_sku = $3` + suffix
	inv, err := scanInventory(r.q.QueryRow(context.Background(), query, companyID, productID, variationSKU))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// UpdateStock persiste el nuevo stock de una fila existente.
func (r *InventoryRepo) UpdateStock(inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET
			current_stock = $2, min_stock_level = $3,
			last_restock_date = $4, last_stock_out_date = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CurrentStock, inv.MinStockLevel,
		inv.LastRestockDate, inv.LastStockOutDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory: fila %s no existe", inv.ID)
	}
	return nil
}

// List filas de inventario visibles para el scope.
func (r *InventoryRepo) List(scope access.Scope, f repository.InventoryFilter) ([]*entity.Inventory, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !scope.All() {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, scope.CompanyID())
	}
	if f.ProductID != "" {
		n++
		where += fmt.Sprintf(` AND product_id = $%d`, n)
		args = append(args, f.ProductID)
	}
	if f.LowStock {
		where += ` AND current_stock < min_stock_level`
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM inventory`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory` + where +
		fmt.Sprintf(` ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var items []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, rows.Err()
}

// ListProductIDs productos con fila de inventario en la empresa.
func (r *InventoryRepo) ListProductIDs(companyID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT product_id FROM inventory WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list inventory product ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.VariationSKU, &inv.CurrentStock,
		&inv.MinStockLevel, &inv.LastRestockDate, &inv.LastStockOutDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan inventory: %w", err)
	}
	return &inv, nil
}

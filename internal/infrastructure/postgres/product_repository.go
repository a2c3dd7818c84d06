package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, name, sku, base_price, unit, is_active, is_deleted, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU único por empresa.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Name, product.SKU, product.BasePrice,
		product.Unit, product.IsActive, product.IsDeleted, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU ya registrado en la empresa", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto visible para el scope.
func (r *ProductRepo) GetByID(scope access.Scope, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND is_deleted = false`
	args := []any{id}
	if !scope.All() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID())
	}
	return r.scanOne(query, args...)
}

// GetBySKU obtiene un producto por SKU dentro de una empresa.
func (r *ProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND sku = $2 AND is_deleted = false`
	return r.scanOne(query, companyID, sku)
}

// List productos visibles para el scope.
func (r *ProductRepo) List(scope access.Scope, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ` WHERE is_deleted = false`
	args := []any{}
	n := 0
	if !scope.All() {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, scope.CompanyID())
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(` AND (name ILIKE $%d OR sku ILIKE $%d)`, n, n)
		args = append(args, "%"+f.Search+"%")
	}
	if f.OnlyActive {
		where += ` AND is_active = true`
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// Update persiste los cambios de un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, sku = $3, base_price = $4, unit = $5,
			is_active = $6, is_deleted = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, product.BasePrice, product.Unit,
		product.IsActive, product.IsDeleted, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU ya registrado en la empresa", domain.ErrDuplicate)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveIDs ids de productos activos de la empresa.
func (r *ProductRepo) ListActiveIDs(companyID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM products WHERE company_id = $1 AND is_active = true AND is_deleted = false`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list active product ids: %w", err)
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

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.SKU, &p.BasePrice,
		&p.Unit, &p.IsActive, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

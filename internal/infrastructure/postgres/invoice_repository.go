package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, company_id, invoice_number, customer_id, customer_name,
	subtotal, discount, tax, grand_total, paid_amount, due_amount,
	payment_method, payment_status, status, created_by, created_at, updated_at`

const invoiceItemColumns = `invoice_id, position, product_id, product_name, variation_sku,
	quantity, unit_price, discount, tax, total`

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
// Cabecera en invoices, líneas en invoice_items; Create inserta ambas
// sobre el mismo Querier, que en el flujo de venta es la tx compartida
// con las salidas de stock.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	ctx := context.Background()
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.InvoiceNumber,
		nullIfEmpty(invoice.CustomerID), nullIfEmpty(invoice.CustomerName),
		invoice.Subtotal, invoice.Discount, invoice.Tax, invoice.GrandTotal,
		invoice.PaidAmount, invoice.DueAmount,
		invoice.PaymentMethod, invoice.PaymentStatus, invoice.Status,
		invoice.CreatedBy, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura duplicado", domain.ErrConflict)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, item := range invoice.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			invoice.ID, i, item.ProductID, item.ProductName, item.VariationSKU,
			item.Quantity, item.UnitPrice, item.Discount, item.Tax, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene una factura con sus líneas, visible para el scope.
func (r *InvoiceRepo) GetByID(scope access.Scope, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	args := []any{id}
	if !scope.All() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID())
	}
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// List facturas visibles para el scope, más recientes primero. Las líneas
// no se cargan en el listado.
func (r *InvoiceRepo) List(scope access.Scope, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !scope.All() {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, scope.CompanyID())
	}
	if f.Status != "" {
		n++
		where += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, f.Status)
	}
	if f.PaymentStatus != "" {
		n++
		where += fmt.Sprintf(` AND payment_status = $%d`, n)
		args = append(args, f.PaymentStatus)
	}
	if f.CustomerID != "" {
		n++
		where += fmt.Sprintf(` AND customer_id = $%d`, n)
		args = append(args, f.CustomerID)
	}
	if f.StartDate != "" {
		n++
		where += fmt.Sprintf(` AND created_at >= $%d::timestamptz`, n)
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		n++
		where += fmt.Sprintf(` AND created_at <= $%d::timestamptz`, n)
		args = append(args, f.EndDate)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, rows.Err()
}

// UpdateStatus cambia el estado de la factura (cancelación, reembolso).
func (r *InvoiceRepo) UpdateStatus(id, status string, at time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountForMonth facturas de la empresa creadas en el mes dado.
func (r *InvoiceRepo) CountForMonth(companyID string, year int, month time.Month) (int, error) {
	query := `
		SELECT count(*) FROM invoices
		WHERE company_id = $1
		  AND EXTRACT(YEAR FROM created_at) = $2
		  AND EXTRACT(MONTH FROM created_at) = $3`
	var count int
	if err := r.q.QueryRow(context.Background(), query, companyID, year, int(month)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count invoices for month: %w", err)
	}
	return count, nil
}

func (r *InvoiceRepo) loadItems(inv *entity.Invoice) error {
	query := `SELECT product_id, product_name, variation_sku, quantity, unit_price, discount, tax, total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, inv.ID)
	if err != nil {
		return fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.InvoiceItem
		err := rows.Scan(
			&item.ProductID, &item.ProductName, &item.VariationSKU,
			&item.Quantity, &item.UnitPrice, &item.Discount, &item.Tax, &item.Total,
		)
		if err != nil {
			return fmt.Errorf("scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	return rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerID, customerName *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.InvoiceNumber, &customerID, &customerName,
		&inv.Subtotal, &inv.Discount, &inv.Tax, &inv.GrandTotal, &inv.PaidAmount, &inv.DueAmount,
		&inv.PaymentMethod, &inv.PaymentStatus, &inv.Status, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	if customerID != nil {
		inv.CustomerID = *customerID
	}
	if customerName != nil {
		inv.CustomerName = *customerName
	}
	return &inv, nil
}

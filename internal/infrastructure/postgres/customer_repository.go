package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company_id, name, email, phone,
	address_street, address_city, address_state, address_zip, address_country,
	total_purchases, total_spent, last_purchase_date, notes, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.CompanyID, customer.Name, nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone),
		nullIfEmpty(customer.Address.Street), nullIfEmpty(customer.Address.City),
		nullIfEmpty(customer.Address.State), nullIfEmpty(customer.Address.Zip),
		nullIfEmpty(customer.Address.Country),
		customer.TotalPurchases, customer.TotalSpent, customer.LastPurchaseDate,
		nullIfEmpty(customer.Notes), customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente visible para el scope.
func (r *CustomerRepo) GetByID(scope access.Scope, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	args := []any{id}
	if !scope.All() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID())
	}
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List clientes visibles para el scope.
func (r *CustomerRepo) List(scope access.Scope, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !scope.All() {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, scope.CompanyID())
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)`, n, n, n)
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

// Update persiste los cambios de un cliente existente. No toca los agregados
// de compra; esos mutan solo vía ApplyPurchase/ReversePurchase.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET
			name = $2, email = $3, phone = $4,
			address_street = $5, address_city = $6, address_state = $7, address_zip = $8, address_country = $9,
			notes = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone),
		nullIfEmpty(customer.Address.Street), nullIfEmpty(customer.Address.City),
		nullIfEmpty(customer.Address.State), nullIfEmpty(customer.Address.Zip),
		nullIfEmpty(customer.Address.Country),
		nullIfEmpty(customer.Notes), customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyPurchase incrementa los agregados de compra del cliente.
func (r *CustomerRepo) ApplyPurchase(id string, amount decimal.Decimal, at time.Time) error {
	query := `
		UPDATE customers SET
			total_purchases = total_purchases + 1,
			total_spent = total_spent + $2,
			last_purchase_date = $3,
			updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, amount, at)
	if err != nil {
		return fmt.Errorf("apply purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReversePurchase revierte los agregados de compra tras un reembolso.
func (r *CustomerRepo) ReversePurchase(id string, amount decimal.Decimal) error {
	query := `
		UPDATE customers SET
			total_purchases = total_purchases - 1,
			total_spent = total_spent - $2,
			updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, amount)
	if err != nil {
		return fmt.Errorf("reverse purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var email, phone, street, city, state, zip, country, notes *string
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &email, &phone,
		&street, &city, &state, &zip, &country,
		&c.TotalPurchases, &c.TotalSpent, &c.LastPurchaseDate, &notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	setIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&c.Email, email)
	setIf(&c.Phone, phone)
	setIf(&c.Address.Street, street)
	setIf(&c.Address.City, city)
	setIf(&c.Address.State, state)
	setIf(&c.Address.Zip, zip)
	setIf(&c.Address.Country, country)
	setIf(&c.Notes, notes)
	return &c, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, email, phone,
	address_street, address_city, address_state, address_zip, address_country,
	logo, status, plan, subscription_start, subscription_end, features,
	currency, timezone, tax_rate, created_by, is_active, is_deleted, created_at, updated_at`

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Email, nullIfEmpty(company.Phone),
		nullIfEmpty(company.Address.Street), nullIfEmpty(company.Address.City),
		nullIfEmpty(company.Address.State), nullIfEmpty(company.Address.Zip),
		nullIfEmpty(company.Address.Country),
		nullIfEmpty(company.Logo), company.Status,
		company.Subscription.Plan, company.Subscription.StartDate, company.Subscription.EndDate,
		company.Subscription.Features,
		company.Settings.Currency, company.Settings.Timezone, company.Settings.TaxRate,
		nullIfEmpty(company.CreatedBy), company.IsActive, company.IsDeleted,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email de empresa duplicado", domain.ErrConflict)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.scanOne(`SELECT `+companyColumns+` FROM companies WHERE id = $1 AND is_deleted = false`, id)
}

// GetByEmail obtiene una empresa por email.
func (r *CompanyRepo) GetByEmail(email string) (*entity.Company, error) {
	return r.scanOne(`SELECT `+companyColumns+` FROM companies WHERE email = $1 AND is_deleted = false`, email)
}

// List empresas con filtros de estado y búsqueda.
func (r *CompanyRepo) List(f repository.CompanyFilter) ([]*entity.Company, int, error) {
	where := ` WHERE is_deleted = false`
	args := []any{}
	n := 0
	if f.Status != "" {
		n++
		where += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, f.Status)
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d)`, n, n)
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM companies`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	query := `SELECT ` + companyColumns + ` FROM companies` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

// Update persiste los cambios de una empresa existente.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET
			name = $2, phone = $3,
			address_street = $4, address_city = $5, address_state = $6, address_zip = $7, address_country = $8,
			logo = $9, status = $10, plan = $11, subscription_start = $12, subscription_end = $13,
			features = $14, currency = $15, timezone = $16, tax_rate = $17,
			created_by = $18, is_active = $19, is_deleted = $20, updated_at = $21
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, nullIfEmpty(company.Phone),
		nullIfEmpty(company.Address.Street), nullIfEmpty(company.Address.City),
		nullIfEmpty(company.Address.State), nullIfEmpty(company.Address.Zip),
		nullIfEmpty(company.Address.Country),
		nullIfEmpty(company.Logo), company.Status,
		company.Subscription.Plan, company.Subscription.StartDate, company.Subscription.EndDate,
		company.Subscription.Features,
		company.Settings.Currency, company.Settings.Timezone, company.Settings.TaxRate,
		nullIfEmpty(company.CreatedBy), company.IsActive, company.IsDeleted, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) scanOne(query string, args ...any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	var phone, street, city, state, zip, country, logo, createdBy *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &phone,
		&street, &city, &state, &zip, &country,
		&logo, &c.Status,
		&c.Subscription.Plan, &c.Subscription.StartDate, &c.Subscription.EndDate, &c.Subscription.Features,
		&c.Settings.Currency, &c.Settings.Timezone, &c.Settings.TaxRate,
		&createdBy, &c.IsActive, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	setIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&c.Phone, phone)
	setIf(&c.Address.Street, street)
	setIf(&c.Address.City, city)
	setIf(&c.Address.State, state)
	setIf(&c.Address.Zip, zip)
	setIf(&c.Address.Country, country)
	setIf(&c.Logo, logo)
	setIf(&c.CreatedBy, createdBy)
	return &c, nil
}

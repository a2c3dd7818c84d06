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

var _ repository.SuperAdminRepository = (*SuperAdminRepo)(nil)

// SuperAdminRepo implementación de SuperAdminRepository sobre PostgreSQL.
// Tabla separada de users: espacio de credenciales propio, sin tenant.
type SuperAdminRepo struct {
	q Querier
}

// NewSuperAdminRepository construye el adaptador.
func NewSuperAdminRepository(q Querier) *SuperAdminRepo {
	return &SuperAdminRepo{q: q}
}

// Create persiste un super administrador.
func (r *SuperAdminRepo) Create(admin *entity.SuperAdmin) error {
	query := `
		INSERT INTO super_admins (id, name, email, password_hash, is_active, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		admin.ID, admin.Name, admin.Email, admin.PasswordHash,
		admin.IsActive, admin.LastLogin, admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert super admin: %w", err)
	}
	return nil
}

// GetByID obtiene un super admin por ID.
func (r *SuperAdminRepo) GetByID(id string) (*entity.SuperAdmin, error) {
	return r.scanOne(`SELECT id, name, email, password_hash, is_active, last_login, created_at, updated_at
		FROM super_admins WHERE id = $1`, id)
}

// FindByEmail busca un super admin por email.
func (r *SuperAdminRepo) FindByEmail(email string) (*entity.SuperAdmin, error) {
	return r.scanOne(`SELECT id, name, email, password_hash, is_active, last_login, created_at, updated_at
		FROM super_admins WHERE email = $1`, email)
}

// Update persiste los cambios de un super admin.
func (r *SuperAdminRepo) Update(admin *entity.SuperAdmin) error {
	query := `
		UPDATE super_admins SET
			name = $2, password_hash = $3, is_active = $4, last_login = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		admin.ID, admin.Name, admin.PasswordHash, admin.IsActive, admin.LastLogin, admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update super admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *SuperAdminRepo) scanOne(query string, args ...any) (*entity.SuperAdmin, error) {
	var a entity.SuperAdmin
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.IsActive, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan super admin: %w", err)
	}
	return &a, nil
}

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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, company_id, name, email, phone, password_hash, role, avatar,
	is_active, is_deleted, failed_login_attempts, lock_until, last_login, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, name, email, phone, password_hash, role, avatar,
			is_active, is_deleted, failed_login_attempts, lock_until, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.CompanyID, user.Name, user.Email, nullIfEmpty(user.Phone),
		user.PasswordHash, user.Role, nullIfEmpty(user.Avatar),
		user.IsActive, user.IsDeleted, user.FailedLoginAttempts, user.LockUntil, user.LastLogin,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID dentro del alcance dado.
func (r *UserRepo) GetByID(scope access.Scope, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = false`
	args := []any{id}
	if !scope.All() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID())
	}
	return r.scanOne(query, args...)
}

// FindByEmail busca por email en todo el espacio de usuarios de tenant.
// Solo para el login, antes de que exista un principal.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_deleted = false`
	return r.scanOne(query, email)
}

// List usuarios bajo el alcance, con filtros opcionales.
func (r *UserRepo) List(scope access.Scope, f repository.UserFilter) ([]*entity.User, int, error) {
	where := ` WHERE is_deleted = false`
	args := []any{}
	n := 0
	if !scope.All() {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, scope.CompanyID())
	}
	if f.Email != "" {
		n++
		where += fmt.Sprintf(` AND email ILIKE $%d`, n)
		args = append(args, "%"+f.Email+"%")
	}
	if f.Role != "" {
		n++
		where += fmt.Sprintf(` AND role = $%d`, n)
		args = append(args, f.Role)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Update persiste los cambios de un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET
			name = $2, phone = $3, password_hash = $4, role = $5, avatar = $6,
			is_active = $7, is_deleted = $8, failed_login_attempts = $9,
			lock_until = $10, last_login = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, nullIfEmpty(user.Phone), user.PasswordHash, user.Role,
		nullIfEmpty(user.Avatar), user.IsActive, user.IsDeleted,
		user.FailedLoginAttempts, user.LockUntil, user.LastLogin, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetActiveByCompany activa/desactiva usuarios de una empresa en bloque.
// role vacío afecta a todos los roles.
func (r *UserRepo) SetActiveByCompany(companyID, role string, active bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = now() WHERE company_id = $1 AND is_deleted = false`
	args := []any{companyID, active}
	if role != "" {
		query += ` AND role = $3`
		args = append(args, role)
	}
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("set active by company: %w", err)
	}
	return nil
}

// SoftDeleteByCompany marca borrados y desactiva todos los usuarios de la empresa.
func (r *UserRepo) SoftDeleteByCompany(companyID string) error {
	query := `UPDATE users SET is_deleted = true, is_active = false, updated_at = now() WHERE company_id = $1`
	if _, err := r.q.Exec(context.Background(), query, companyID); err != nil {
		return fmt.Errorf("soft delete by company: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(query string, args ...any) (*entity.User, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var phone, avatar *string
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.Role, &avatar,
		&u.IsActive, &u.IsDeleted, &u.FailedLoginAttempts, &u.LockUntil, &u.LastLogin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if phone != nil {
		u.Phone = *phone
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	return &u, nil
}

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

var _ repository.RoleRequestRepository = (*RoleRequestRepo)(nil)

const roleRequestColumns = `id, company_id, user_id, current_role, requested_role, status,
	reason, reviewed_by, reviewed_at, review_notes, created_at, updated_at`

// RoleRequestRepo implementación de RoleRequestRepository sobre PostgreSQL.
type RoleRequestRepo struct {
	q Querier
}

// NewRoleRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRequestRepository(q Querier) *RoleRequestRepo {
	return &RoleRequestRepo{q: q}
}

// Create persiste una nueva solicitud de ascenso.
func (r *RoleRequestRepo) Create(req *entity.RoleUpgradeRequest) error {
	query := `
		INSERT INTO role_requests (` + roleRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.CompanyID, req.UserID, req.CurrentRole, req.RequestedRole, req.Status,
		nullIfEmpty(req.Reason), nullIfEmpty(req.ReviewedBy), req.ReviewedAt,
		nullIfEmpty(req.ReviewNotes), req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert role request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID dentro del alcance dado.
func (r *RoleRequestRepo) GetByID(scope access.Scope, id string) (*entity.RoleUpgradeRequest, error) {
	query := `SELECT ` + roleRequestColumns + ` FROM role_requests WHERE id = $1`
	args := []any{id}
	if !scope.All() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID())
	}
	row := r.q.QueryRow(context.Background(), query, args...)
	req, err := scanRoleRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get role request: %w", err)
	}
	return req, nil
}

// List solicitudes bajo el alcance, más recientes primero.
func (r *RoleRequestRepo) List(scope access.Scope, f repository.RoleRequestFilter) ([]*entity.RoleUpgradeRequest, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !scope.All() {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, scope.CompanyID())
	}
	if f.UserID != "" {
		n++
		where += fmt.Sprintf(` AND user_id = $%d`, n)
		args = append(args, f.UserID)
	}
	if f.Status != "" {
		n++
		where += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, f.Status)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM role_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count role requests: %w", err)
	}

	query := `SELECT ` + roleRequestColumns + ` FROM role_requests` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list role requests: %w", err)
	}
	defer rows.Close()

	var reqs []*entity.RoleUpgradeRequest
	for rows.Next() {
		req, err := scanRoleRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan role request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, total, rows.Err()
}

// Update persiste la revisión de una solicitud.
func (r *RoleRequestRepo) Update(req *entity.RoleUpgradeRequest) error {
	query := `
		UPDATE role_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_notes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, nullIfEmpty(req.ReviewedBy), req.ReviewedAt,
		nullIfEmpty(req.ReviewNotes), req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update role request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasPendingForUser indica si el usuario ya tiene una solicitud PENDING.
func (r *RoleRequestRepo) HasPendingForUser(userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM role_requests WHERE user_id = $1 AND status = $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, userID, entity.RoleRequestStatusPending).Scan(&exists); err != nil {
		return false, fmt.Errorf("pending role request lookup: %w", err)
	}
	return exists, nil
}

func scanRoleRequest(row pgx.Row) (*entity.RoleUpgradeRequest, error) {
	var req entity.RoleUpgradeRequest
	var reason, reviewedBy, reviewNotes *string
	err := row.Scan(
		&req.ID, &req.CompanyID, &req.UserID, &req.CurrentRole, &req.RequestedRole, &req.Status,
		&reason, &reviewedBy, &req.ReviewedAt, &reviewNotes, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	setIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&req.Reason, reason)
	setIf(&req.ReviewedBy, reviewedBy)
	setIf(&req.ReviewNotes, reviewNotes)
	return &req, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

const activityLogColumns = `id, company_id, user_id, action, resource, resource_id, ip_address, user_agent, created_at`

// ActivityLogRepo implementación de ActivityLogRepository sobre PostgreSQL.
// Append-only.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create registra un evento de auditoría.
func (r *ActivityLogRepo) Create(log *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (` + activityLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, nullIfEmpty(log.CompanyID), log.UserID, log.Action, log.Resource,
		nullIfEmpty(log.ResourceID), nullIfEmpty(log.IPAddress), nullIfEmpty(log.UserAgent), log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List eventos visibles para el scope, más recientes primero.
func (r *ActivityLogRepo) List(scope access.Scope, f repository.ActivityLogFilter) ([]*entity.ActivityLog, int, error) {
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
	if f.Resource != "" {
		n++
		where += fmt.Sprintf(` AND resource = $%d`, n)
		args = append(args, f.Resource)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}

	query := `SELECT ` + activityLogColumns + ` FROM activity_logs` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		var companyID, resourceID, ipAddress, userAgent *string
		err := rows.Scan(
			&l.ID, &companyID, &l.UserID, &l.Action, &l.Resource,
			&resourceID, &ipAddress, &userAgent, &l.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan activity log: %w", err)
		}
		setIf := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		setIf(&l.CompanyID, companyID)
		setIf(&l.ResourceID, resourceID)
		setIf(&l.IPAddress, ipAddress)
		setIf(&l.UserAgent, userAgent)
		logs = append(logs, &l)
	}
	return logs, total, rows.Err()
}

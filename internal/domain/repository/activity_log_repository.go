package repository

import (
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// ActivityLogFilter filtros de consulta del audit trail.
type ActivityLogFilter struct {
	UserID   string
	Resource string
	Limit    int
	Offset   int
}

// ActivityLogRepository puerto del audit trail. Append-only.
type ActivityLogRepository interface {
	Create(log *entity.ActivityLog) error
	List(scope access.Scope, f ActivityLogFilter) ([]*entity.ActivityLog, int, error)
}

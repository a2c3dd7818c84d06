package repository

import (
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// RoleRequestFilter filtros del listado de solicitudes de ascenso.
type RoleRequestFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

// RoleRequestRepository puerto de persistencia para RoleUpgradeRequest.
type RoleRequestRepository interface {
	Create(req *entity.RoleUpgradeRequest) error
	GetByID(scope access.Scope, id string) (*entity.RoleUpgradeRequest, error)
	List(scope access.Scope, f RoleRequestFilter) ([]*entity.RoleUpgradeRequest, int, error)
	Update(req *entity.RoleUpgradeRequest) error
	// HasPendingForUser indica si el usuario ya tiene una solicitud abierta.
	HasPendingForUser(userID string) (bool, error)
}

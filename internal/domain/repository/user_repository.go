package repository

import (
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// UserFilter filtros del listado de usuarios de una empresa.
type UserFilter struct {
	Email  string // coincidencia parcial, case-insensitive
	Role   string
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas de datos de tenant reciben el Scope para que el filtro de
// empresa se aplique en la consulta, no después.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(scope access.Scope, id string) (*entity.User, error)
	// FindByEmail busca en todo el espacio de usuarios de tenant; solo para
	// el login, antes de que exista un principal.
	FindByEmail(email string) (*entity.User, error)
	List(scope access.Scope, f UserFilter) ([]*entity.User, int, error)
	Update(user *entity.User) error
	// SetActiveByCompany activa/desactiva usuarios de una empresa en bloque.
	// role vacío afecta a todos los roles (suspensión en cascada).
	SetActiveByCompany(companyID, role string, active bool) error
	// SoftDeleteByCompany marca borrados y desactiva todos los usuarios de la
	// empresa (cascada del borrado lógico de la empresa).
	SoftDeleteByCompany(companyID string) error
}

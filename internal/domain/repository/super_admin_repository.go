package repository

import "github.com/tu-usuario/erp-multitenant/internal/domain/entity"

// SuperAdminRepository puerto de persistencia del espacio de credenciales
// del super administrador (sin tenant).
type SuperAdminRepository interface {
	Create(admin *entity.SuperAdmin) error
	GetByID(id string) (*entity.SuperAdmin, error)
	FindByEmail(email string) (*entity.SuperAdmin, error)
	Update(admin *entity.SuperAdmin) error
}

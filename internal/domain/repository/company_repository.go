package repository

import "github.com/tu-usuario/erp-multitenant/internal/domain/entity"

// CompanyFilter filtros del listado de empresas (super admin).
type CompanyFilter struct {
	Status string
	Search string // sobre nombre y email
	Limit  int
	Offset int
}

// CompanyRepository define el puerto de persistencia para Company.
// Company es el tenant mismo: el control de acceso por empresa lo hacen los
// casos de uso con Scope.Allows sobre el registro leído.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByEmail(email string) (*entity.Company, error)
	List(f CompanyFilter) ([]*entity.Company, int, error)
	Update(company *entity.Company) error
}

// Package access contiene el núcleo de autorización: la identidad autenticada
// (Principal), la matriz rol→recurso→acciones y el filtro de tenant que toda
// consulta sobre datos de empresa debe llevar.
package access

import "github.com/tu-usuario/erp-multitenant/internal/domain/entity"

// Principal es la identidad derivada de un token verificado. No se persiste;
// se reconstruye en cada request. CompanyID está vacío solo para SUPER_ADMIN.
type Principal struct {
	UserID    string
	Email     string
	Role      string
	CompanyID string
}

// IsSuperAdmin indica si el principal es el dueño del sistema.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == entity.RoleSuperAdmin
}

// HasRole indica si el rol del principal está dentro de los permitidos.
// Se usa donde no hace falta granularidad de acción por recurso.
func (p Principal) HasRole(allowed ...string) bool {
	for _, r := range allowed {
		if p.Role == r {
			return true
		}
	}
	return false
}

package access

import "github.com/tu-usuario/erp-multitenant/internal/domain"

// Scope es el filtro de tenant obligatorio para todo acceso a datos de
// empresa. Sus campos no son exportados: solo ScopeFor y ScopeAll pueden
// construirlo, de modo que ninguna entrada del caller puede ampliarlo.
type Scope struct {
	companyID string
	all       bool
}

// ScopeFor deriva el filtro del principal autenticado. SUPER_ADMIN obtiene
// alcance global; cualquier otro rol queda limitado a su CompanyID y falla
// con ErrForbidden si no tiene empresa asociada.
func ScopeFor(p Principal) (Scope, error) {
	if p.IsSuperAdmin() {
		return Scope{all: true}, nil
	}
	if p.CompanyID == "" {
		return Scope{}, domain.ErrForbidden
	}
	return Scope{companyID: p.CompanyID}, nil
}

// ScopeAll devuelve el alcance global sin restricción de empresa. Reservado
// para procesos internos (seed, jobs); las requests lo obtienen vía ScopeFor.
func ScopeAll() Scope {
	return Scope{all: true}
}

// All indica si el alcance no restringe por empresa.
func (s Scope) All() bool {
	return s.all
}

// CompanyID devuelve la empresa del filtro; vacío si el alcance es global.
func (s Scope) CompanyID() string {
	return s.companyID
}

// Allows indica si un registro con el companyID dado es visible bajo el alcance.
func (s Scope) Allows(companyID string) bool {
	return s.all || (s.companyID != "" && s.companyID == companyID)
}

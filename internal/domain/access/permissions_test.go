package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
)

// ─────────────────────────────────────────────
// IsAllowed: matriz rol, recurso y acción
// ─────────────────────────────────────────────

func TestIsAllowed_Matriz(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"super admin comodín sobre empresas", entity.RoleSuperAdmin, ResourceCompany, ActionDelete, true},
		{"super admin comodín sobre ventas", entity.RoleSuperAdmin, ResourceSales, ActionRefund, true},
		{"admin gestiona usuarios", entity.RoleCompanyAdmin, ResourceUser, ActionCreate, true},
		{"admin reembolsa ventas", entity.RoleCompanyAdmin, ResourceSales, ActionRefund, true},
		{"admin lee su empresa", entity.RoleCompanyAdmin, ResourceCompany, ActionRead, true},
		{"admin no aprueba empresas", entity.RoleCompanyAdmin, ResourceCompany, ActionApprove, false},
		{"manager ajusta inventario", entity.RoleManager, ResourceInventory, ActionAdjust, true},
		{"manager no borra productos", entity.RoleManager, ResourceProduct, ActionDelete, false},
		{"manager no reembolsa", entity.RoleManager, ResourceSales, ActionRefund, false},
		{"manager solo lee usuarios", entity.RoleManager, ResourceUser, ActionUpdate, false},
		{"user gestiona su perfil", entity.RoleUser, ResourceProfile, ActionUpdate, true},
		{"user no ve productos", entity.RoleUser, ResourceProduct, ActionRead, false},
		{"user no ve ventas", entity.RoleUser, ResourceSales, ActionRead, false},
		{"rol desconocido niega", "INTRUDER", ResourceProduct, ActionRead, false},
		{"recurso desconocido niega", entity.RoleCompanyAdmin, "alien", ActionRead, false},
		{"acción ausente niega", entity.RoleCompanyAdmin, ResourceLogs, ActionDelete, false},
		{"rol vacío niega", "", ResourceProduct, ActionRead, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAllowed(tc.role, tc.resource, tc.action))
		})
	}
}

func TestHasRole(t *testing.T) {
	p := Principal{UserID: "u1", Role: entity.RoleManager, CompanyID: "c1"}

	assert.True(t, p.HasRole(entity.RoleCompanyAdmin, entity.RoleManager))
	assert.False(t, p.HasRole(entity.RoleCompanyAdmin))
	assert.False(t, p.HasRole())
}

// ─────────────────────────────────────────────
// Scope: filtro de tenant
// ─────────────────────────────────────────────

func TestScopeFor_SuperAdminObtieneAlcanceGlobal(t *testing.T) {
	p := Principal{UserID: "sa", Role: entity.RoleSuperAdmin}

	scope, err := ScopeFor(p)
	require.NoError(t, err)

	assert.True(t, scope.All())
	assert.Empty(t, scope.CompanyID())
	assert.True(t, scope.Allows("cualquier-empresa"))
}

func TestScopeFor_TenantQuedaLimitadoASuEmpresa(t *testing.T) {
	p := Principal{UserID: "u1", Role: entity.RoleCompanyAdmin, CompanyID: "comp-1"}

	scope, err := ScopeFor(p)
	require.NoError(t, err)

	assert.False(t, scope.All())
	assert.Equal(t, "comp-1", scope.CompanyID())
	assert.True(t, scope.Allows("comp-1"))
	assert.False(t, scope.Allows("comp-2"))
}

func TestScopeFor_SinEmpresaFalla(t *testing.T) {
	p := Principal{UserID: "u1", Role: entity.RoleManager}

	_, err := ScopeFor(p)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"un rol de tenant sin CompanyID no puede obtener alcance")
}

func TestScope_ZeroValueNoPermiteNada(t *testing.T) {
	var scope Scope

	assert.False(t, scope.All())
	assert.False(t, scope.Allows("comp-1"))
	assert.False(t, scope.Allows(""))
}

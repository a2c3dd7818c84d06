package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/application/usecase"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del repo de solicitudes. Los fakes de usuarios y empresas
// se comparten con company_usecase_test.go.
// ──────────────────────────────────────────────────────────────────────────────

type roleRequestRepoFake struct {
	byID map[string]*entity.RoleUpgradeRequest
}

func newRoleRequestRepoFake(rs ...*entity.RoleUpgradeRequest) *roleRequestRepoFake {
	r := &roleRequestRepoFake{byID: map[string]*entity.RoleUpgradeRequest{}}
	for _, req := range rs {
		r.byID[req.ID] = req
	}
	return r
}

func (r *roleRequestRepoFake) Create(req *entity.RoleUpgradeRequest) error {
	r.byID[req.ID] = req
	return nil
}

func (r *roleRequestRepoFake) GetByID(scope access.Scope, id string) (*entity.RoleUpgradeRequest, error) {
	if req, ok := r.byID[id]; ok && scope.Allows(req.CompanyID) {
		return req, nil
	}
	return nil, domain.ErrNotFound
}

func (r *roleRequestRepoFake) List(scope access.Scope, f repository.RoleRequestFilter) ([]*entity.RoleUpgradeRequest, int, error) {
	var out []*entity.RoleUpgradeRequest
	for _, req := range r.byID {
		if !scope.Allows(req.CompanyID) {
			continue
		}
		if f.UserID != "" && req.UserID != f.UserID {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		out = append(out, req)
	}
	return out, len(out), nil
}

func (r *roleRequestRepoFake) Update(req *entity.RoleUpgradeRequest) error {
	if _, ok := r.byID[req.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[req.ID] = req
	return nil
}

func (r *roleRequestRepoFake) HasPendingForUser(userID string) (bool, error) {
	for _, req := range r.byID {
		if req.UserID == userID && req.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

func tenantUser(id, companyID, role string) *entity.User {
	return &entity.User{
		ID:        id,
		CompanyID: companyID,
		Name:      "Empleado",
		Email:     id + "@example.com",
		Role:      role,
		IsActive:  true,
	}
}

func principalFor(u *entity.User) access.Principal {
	return access.Principal{UserID: u.ID, Email: u.Email, Role: u.Role, CompanyID: u.CompanyID}
}

func pendingUpgrade(id string, u *entity.User) *entity.RoleUpgradeRequest {
	return &entity.RoleUpgradeRequest{
		ID:            id,
		CompanyID:     u.CompanyID,
		UserID:        u.ID,
		CurrentRole:   u.Role,
		RequestedRole: entity.RoleManager,
		Status:        entity.RoleRequestStatusPending,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRoleRequest_UsuarioCreaPendiente(t *testing.T) {
	user := tenantUser("user-1", "comp-1", entity.RoleUser)
	requests := newRoleRequestRepoFake()
	uc := usecase.NewRoleRequestUseCase(requests, newUserRepoFake(user), testLog())

	out, err := uc.Create(principalFor(user), dto.CreateRoleRequestRequest{Reason: "llevo un año en el equipo"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleRequestStatusPending, out.Status)
	assert.Equal(t, entity.RoleUser, out.CurrentRole)
	assert.Equal(t, entity.RoleManager, out.RequestedRole)
	assert.Equal(t, "comp-1", out.CompanyID)
	assert.Equal(t, "llevo un año en el equipo", out.Reason)
	assert.Empty(t, out.ReviewedBy)
}

func TestCreateRoleRequest_ManagerOAdminNoPuedeSolicitar(t *testing.T) {
	for _, role := range []string{entity.RoleManager, entity.RoleCompanyAdmin} {
		user := tenantUser("user-1", "comp-1", role)
		uc := usecase.NewRoleRequestUseCase(newRoleRequestRepoFake(), newUserRepoFake(user), testLog())

		_, err := uc.Create(principalFor(user), dto.CreateRoleRequestRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, role)
	}
}

func TestCreateRoleRequest_SoloUnaPendientePorUsuario(t *testing.T) {
	user := tenantUser("user-1", "comp-1", entity.RoleUser)
	requests := newRoleRequestRepoFake(pendingUpgrade("req-1", user))
	uc := usecase.NewRoleRequestUseCase(requests, newUserRepoFake(user), testLog())

	_, err := uc.Create(principalFor(user), dto.CreateRoleRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revisión: aprobar y rechazar
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveRoleRequest_AsciendeAManager(t *testing.T) {
	user := tenantUser("user-1", "comp-1", entity.RoleUser)
	admin := tenantUser("admin-1", "comp-1", entity.RoleCompanyAdmin)
	req := pendingUpgrade("req-1", user)
	uc := usecase.NewRoleRequestUseCase(newRoleRequestRepoFake(req), newUserRepoFake(user, admin), testLog())

	out, err := uc.Approve(principalFor(admin), "req-1", dto.ReviewRoleRequestRequest{ReviewNotes: "aprobado"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleRequestStatusApproved, out.Status)
	assert.Equal(t, "admin-1", out.ReviewedBy)
	require.NotNil(t, out.ReviewedAt)
	assert.Equal(t, "aprobado", out.ReviewNotes)

	assert.Equal(t, entity.RoleManager, user.Role, "la aprobación promueve al usuario")
}

func TestApproveRoleRequest_SoloPendientes(t *testing.T) {
	user := tenantUser("user-1", "comp-1", entity.RoleUser)
	admin := tenantUser("admin-1", "comp-1", entity.RoleCompanyAdmin)
	req := pendingUpgrade("req-1", user)
	req.Status = entity.RoleRequestStatusRejected
	uc := usecase.NewRoleRequestUseCase(newRoleRequestRepoFake(req), newUserRepoFake(user, admin), testLog())

	_, err := uc.Approve(principalFor(admin), "req-1", dto.ReviewRoleRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.RoleUser, user.Role, "el rol no cambia")
}

func TestRejectRoleRequest_NoCambiaElRol(t *testing.T) {
	user := tenantUser("user-1", "comp-1", entity.RoleUser)
	admin := tenantUser("admin-1", "comp-1", entity.RoleCompanyAdmin)
	req := pendingUpgrade("req-1", user)
	uc := usecase.NewRoleRequestUseCase(newRoleRequestRepoFake(req), newUserRepoFake(user, admin), testLog())

	out, err := uc.Reject(principalFor(admin), "req-1", dto.ReviewRoleRequestRequest{ReviewNotes: "todavía no"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleRequestStatusRejected, out.Status)
	assert.Equal(t, "todavía no", out.ReviewNotes)
	assert.Equal(t, entity.RoleUser, user.Role)
}

func TestReviewRoleRequest_OtraEmpresaInvisible(t *testing.T) {
	user := tenantUser("user-1", "comp-1", entity.RoleUser)
	otherAdmin := tenantUser("admin-2", "comp-2", entity.RoleCompanyAdmin)
	req := pendingUpgrade("req-1", user)
	uc := usecase.NewRoleRequestUseCase(newRoleRequestRepoFake(req), newUserRepoFake(user, otherAdmin), testLog())

	_, err := uc.Approve(principalFor(otherAdmin), "req-1", dto.ReviewRoleRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.RoleUser, user.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListRoleRequests_MineFiltraPorUsuario(t *testing.T) {
	user := tenantUser("user-1", "comp-1", entity.RoleUser)
	other := tenantUser("user-2", "comp-1", entity.RoleUser)
	requests := newRoleRequestRepoFake(pendingUpgrade("req-1", user), pendingUpgrade("req-2", other))
	uc := usecase.NewRoleRequestUseCase(requests, newUserRepoFake(user, other), testLog())

	out, err := uc.ListMine(principalFor(user), dto.RoleRequestListRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "req-1", out.Items[0].ID)
}

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
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. userRepo registra las llamadas de cascada para verificar
// que aprobar/suspender/borrar empresa propaga a los usuarios.
// ──────────────────────────────────────────────────────────────────────────────

type companyRepoFake struct {
	byID map[string]*entity.Company
}

func newCompanyRepoFake(cs ...*entity.Company) *companyRepoFake {
	r := &companyRepoFake{byID: map[string]*entity.Company{}}
	for _, c := range cs {
		r.byID[c.ID] = c
	}
	return r
}

func (r *companyRepoFake) Create(c *entity.Company) error { r.byID[c.ID] = c; return nil }

func (r *companyRepoFake) GetByID(id string) (*entity.Company, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *companyRepoFake) GetByEmail(email string) (*entity.Company, error) {
	for _, c := range r.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *companyRepoFake) List(f repository.CompanyFilter) ([]*entity.Company, int, error) {
	var out []*entity.Company
	for _, c := range r.byID {
		if f.Status == "" || c.Status == f.Status {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r *companyRepoFake) Update(c *entity.Company) error { r.byID[c.ID] = c; return nil }

type cascadeCall struct {
	companyID string
	role      string
	active    bool
}

type userRepoFake struct {
	byEmail     map[string]*entity.User
	cascades    []cascadeCall
	softDeletes []string
}

func newUserRepoFake(us ...*entity.User) *userRepoFake {
	r := &userRepoFake{byEmail: map[string]*entity.User{}}
	for _, u := range us {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *userRepoFake) Create(u *entity.User) error { r.byEmail[u.Email] = u; return nil }

func (r *userRepoFake) GetByID(scope access.Scope, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id && scope.Allows(u.CompanyID) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepoFake) FindByEmail(email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepoFake) List(scope access.Scope, f repository.UserFilter) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.byEmail {
		if scope.Allows(u.CompanyID) {
			out = append(out, u)
		}
	}
	return out, len(out), nil
}

func (r *userRepoFake) Update(u *entity.User) error { return nil }

func (r *userRepoFake) SetActiveByCompany(companyID, role string, active bool) error {
	r.cascades = append(r.cascades, cascadeCall{companyID, role, active})
	return nil
}

func (r *userRepoFake) SoftDeleteByCompany(companyID string) error {
	r.softDeletes = append(r.softDeletes, companyID)
	return nil
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func pendingCompany(id string) *entity.Company {
	return &entity.Company{
		ID:     id,
		Name:   "Acme SAS",
		Email:  "acme@example.com",
		Status: entity.CompanyStatusPending,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmpresaPendienteConAdminInactivo(t *testing.T) {
	companies := newCompanyRepoFake()
	users := newUserRepoFake()
	uc := usecase.NewCompanyUseCase(companies, users, testLog())

	res, err := uc.Register(dto.RegisterCompanyRequest{
		CompanyName:   "Acme SAS",
		Email:         "acme@example.com",
		AdminName:     "Ana",
		AdminEmail:    "ana@acme.com",
		AdminPassword: "secreto-largo",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CompanyStatusPending, res.Company.Status)
	assert.False(t, res.Company.IsActive)
	assert.Equal(t, entity.PlanFree, res.Company.Subscription.Plan)

	assert.Equal(t, entity.RoleCompanyAdmin, res.Admin.Role)
	assert.False(t, res.Admin.IsActive, "el admin inicial queda inactivo hasta aprobar")
	assert.Equal(t, res.Company.ID, res.Admin.CompanyID)

	stored, err := users.FindByEmail("ana@acme.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto-largo", stored.PasswordHash, "la contraseña se guarda hasheada")
}

func TestRegister_EmailDeEmpresaDuplicado(t *testing.T) {
	existing := pendingCompany("comp-1")
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(existing), newUserRepoFake(), testLog())

	_, err := uc.Register(dto.RegisterCompanyRequest{
		CompanyName:   "Otra",
		Email:         existing.Email,
		AdminEmail:    "otro@x.com",
		AdminPassword: "secreto-largo",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_EmailDeAdminDuplicado(t *testing.T) {
	taken := &entity.User{ID: "u1", Email: "ana@acme.com", CompanyID: "comp-9"}
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(), newUserRepoFake(taken), testLog())

	_, err := uc.Register(dto.RegisterCompanyRequest{
		CompanyName:   "Acme SAS",
		Email:         "acme@example.com",
		AdminEmail:    "ana@acme.com",
		AdminPassword: "secreto-largo",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_ActivaEmpresaYSusAdmins(t *testing.T) {
	company := pendingCompany("comp-1")
	users := newUserRepoFake()
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(company), users, testLog())

	res, err := uc.Approve("sa-1", "comp-1", dto.ApproveCompanyRequest{
		Subscription: &dto.SubscriptionDTO{Plan: entity.PlanPremium},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CompanyStatusApproved, res.Status)
	assert.True(t, res.IsActive)
	assert.Equal(t, entity.PlanPremium, res.Subscription.Plan)

	require.Len(t, users.cascades, 1)
	assert.Equal(t, cascadeCall{"comp-1", entity.RoleCompanyAdmin, true}, users.cascades[0])
}

func TestApprove_SoloDesdePending(t *testing.T) {
	company := pendingCompany("comp-1")
	company.Status = entity.CompanyStatusSuspended
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(company), newUserRepoFake(), testLog())

	_, err := uc.Approve("sa-1", "comp-1", dto.ApproveCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReject_SoloDesdePending(t *testing.T) {
	company := pendingCompany("comp-1")
	users := newUserRepoFake()
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(company), users, testLog())

	res, err := uc.Reject("comp-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusRejected, res.Status)
	assert.False(t, res.IsActive)

	// Una empresa APPROVED no se puede rechazar.
	approved := pendingCompany("comp-2")
	approved.Email = "otra@example.com"
	approved.Status = entity.CompanyStatusApproved
	uc2 := usecase.NewCompanyUseCase(newCompanyRepoFake(approved), users, testLog())
	_, err = uc2.Reject("comp-2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSuspend_CascadaATodosLosRoles(t *testing.T) {
	company := pendingCompany("comp-1")
	company.Status = entity.CompanyStatusApproved
	company.IsActive = true
	users := newUserRepoFake()
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(company), users, testLog())

	res, err := uc.Suspend("comp-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusSuspended, res.Status)
	assert.False(t, res.IsActive)

	require.Len(t, users.cascades, 1)
	assert.Equal(t, cascadeCall{"comp-1", "", false}, users.cascades[0], "rol vacío = todos los roles")
}

func TestSuspend_SoloDesdeApproved(t *testing.T) {
	company := pendingCompany("comp-1")
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(company), newUserRepoFake(), testLog())

	_, err := uc.Suspend("comp-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDelete_SoftDeleteConCascada(t *testing.T) {
	company := pendingCompany("comp-1")
	company.Status = entity.CompanyStatusApproved
	company.IsActive = true
	users := newUserRepoFake()
	companies := newCompanyRepoFake(company)
	uc := usecase.NewCompanyUseCase(companies, users, testLog())

	require.NoError(t, uc.Delete("comp-1"))

	assert.True(t, company.IsDeleted)
	assert.False(t, company.IsActive)
	assert.Equal(t, []string{"comp-1"}, users.softDeletes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento y actualización
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_TenantSoloVeSuEmpresa(t *testing.T) {
	mine := pendingCompany("comp-1")
	other := pendingCompany("comp-2")
	other.Email = "otra@example.com"
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(mine, other), newUserRepoFake(), testLog())

	p := access.Principal{UserID: "u1", Role: entity.RoleCompanyAdmin, CompanyID: "comp-1"}

	_, err := uc.GetByID(p, "comp-1")
	assert.NoError(t, err)

	_, err = uc.GetByID(p, "comp-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	sa := access.Principal{UserID: "sa-1", Role: entity.RoleSuperAdmin}
	_, err = uc.GetByID(sa, "comp-2")
	assert.NoError(t, err, "el super admin ve cualquier empresa")
}

func TestUpdate_NuncaCambiaElStatus(t *testing.T) {
	company := pendingCompany("comp-1")
	company.Status = entity.CompanyStatusApproved
	company.IsActive = true
	uc := usecase.NewCompanyUseCase(newCompanyRepoFake(company), newUserRepoFake(), testLog())

	p := access.Principal{UserID: "u1", Role: entity.RoleCompanyAdmin, CompanyID: "comp-1"}
	res, err := uc.Update(p, "comp-1", dto.UpdateCompanyRequest{Name: "Acme Renombrada"})
	require.NoError(t, err)

	assert.Equal(t, "Acme Renombrada", res.Name)
	assert.Equal(t, entity.CompanyStatusApproved, res.Status)
}

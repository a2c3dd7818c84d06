package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-multitenant/internal/application/auth"
	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/config"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios. Guardan punteros: las mutaciones que
// hace el caso de uso (contador de intentos, lockUntil, lastLogin) quedan
// visibles para las aserciones sin necesidad de releer.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	updates int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(scope access.Scope, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id && scope.Allows(u.CompanyID) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(scope access.Scope, f repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.updates++
	return nil
}

func (r *fakeUserRepo) SetActiveByCompany(companyID, role string, active bool) error { return nil }
func (r *fakeUserRepo) SoftDeleteByCompany(companyID string) error                   { return nil }

type fakeSuperAdminRepo struct {
	byEmail map[string]*entity.SuperAdmin
}

func newFakeSuperAdminRepo(admins ...*entity.SuperAdmin) *fakeSuperAdminRepo {
	r := &fakeSuperAdminRepo{byEmail: map[string]*entity.SuperAdmin{}}
	for _, a := range admins {
		r.byEmail[a.Email] = a
	}
	return r
}

func (r *fakeSuperAdminRepo) Create(a *entity.SuperAdmin) error {
	r.byEmail[a.Email] = a
	return nil
}

func (r *fakeSuperAdminRepo) GetByID(id string) (*entity.SuperAdmin, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeSuperAdminRepo) FindByEmail(email string) (*entity.SuperAdmin, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeSuperAdminRepo) Update(a *entity.SuperAdmin) error { return nil }

type fakeCompanyRepo struct {
	byID map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{byID: map[string]*entity.Company{}}
	for _, c := range companies {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.byID[c.ID] = c; return nil }

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCompanyRepo) GetByEmail(email string) (*entity.Company, error) {
	for _, c := range r.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCompanyRepo) List(f repository.CompanyFilter) ([]*entity.Company, int, error) {
	return nil, 0, nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error { r.byID[c.ID] = c; return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-para-firmar"
	cfg.JWT.Issuer = "erp-test"
	cfg.JWT.Expiration = 60
	cfg.Auth.MaxLoginAttempts = 5
	cfg.Auth.LockoutMinutes = 15
	return cfg
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func approvedCompany(id string) *entity.Company {
	return &entity.Company{
		ID:       id,
		Name:     "Acme SAS",
		Email:    "acme@example.com",
		Status:   entity.CompanyStatusApproved,
		IsActive: true,
	}
}

func activeUser(t *testing.T, companyID string) *entity.User {
	return &entity.User{
		ID:           "user-1",
		CompanyID:    companyID,
		Name:         "Ana",
		Email:        "ana@acme.com",
		PasswordHash: mustHash(t, "secreto123"),
		Role:         entity.RoleCompanyAdmin,
		IsActive:     true,
	}
}

func buildUseCase(t *testing.T, users *fakeUserRepo, admins *fakeSuperAdminRepo, companies *fakeCompanyRepo) *auth.AuthUseCase {
	t.Helper()
	return auth.NewAuthUseCase(users, admins, companies, testConfig(), testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// Login unificado
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_UsuarioTenantExitoso(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	users := newFakeUserRepo(user)
	uc := buildUseCase(t, users, newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	res, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, entity.RoleCompanyAdmin, res.User.Role)
	assert.Equal(t, "comp-1", res.User.CompanyID)
	assert.NotNil(t, user.LastLogin, "el login exitoso registra lastLogin")
	assert.Zero(t, user.FailedLoginAttempts)
}

func TestLogin_SuperAdminCuandoEmailNoEsDeTenant(t *testing.T) {
	admin := &entity.SuperAdmin{
		ID:           "sa-1",
		Name:         "Root",
		Email:        "root@erp.com",
		PasswordHash: mustHash(t, "rootpass"),
		IsActive:     true,
	}
	uc := buildUseCase(t, newFakeUserRepo(), newFakeSuperAdminRepo(admin), newFakeCompanyRepo())

	res, err := uc.Login(dto.LoginRequest{Email: "root@erp.com", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, res.User.Role)
	assert.Empty(t, res.User.CompanyID, "el super admin no pertenece a ninguna empresa")
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc := buildUseCase(t, newFakeUserRepo(), newFakeSuperAdminRepo(), newFakeCompanyRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@x.com", Password: "da-igual"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc := buildUseCase(t, newFakeUserRepo(), newFakeSuperAdminRepo(), newFakeCompanyRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmpresaNoAprobada(t *testing.T) {
	company := approvedCompany("comp-1")
	company.Status = entity.CompanyStatusPending
	user := activeUser(t, company.ID)
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotApproved)
}

func TestLogin_EmpresaSuspendida(t *testing.T) {
	company := approvedCompany("comp-1")
	company.Status = entity.CompanyStatusSuspended
	company.IsActive = false
	user := activeUser(t, company.ID)
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrCompanySuspended)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	user.IsActive = false
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo por intentos fallidos
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ContraseñaIncorrectaIncrementaContador(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 1, user.FailedLoginAttempts)
	assert.Nil(t, user.LockUntil)
}

func TestLogin_QuintoFalloBloqueaLaCuenta(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	var err error
	for i := 0; i < 5; i++ {
		_, err = uc.Login(dto.LoginRequest{Email: user.Email, Password: "mala"})
	}
	assert.ErrorIs(t, err, domain.ErrAccountLocked)
	require.NotNil(t, user.LockUntil)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *user.LockUntil, time.Minute)

	// Con la cuenta bloqueada, incluso la contraseña correcta se rechaza.
	_, err = uc.Login(dto.LoginRequest{Email: user.Email, Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrAccountLocked)
}

func TestLogin_BloqueoExpiradoPermiteEntrarYResetea(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	past := time.Now().Add(-time.Minute)
	user.FailedLoginAttempts = 5
	user.LockUntil = &past
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	res, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Zero(t, user.FailedLoginAttempts, "el login exitoso resetea el contador")
	assert.Nil(t, user.LockUntil)
}

func TestLogin_SuperAdminNoSeBloquea(t *testing.T) {
	admin := &entity.SuperAdmin{
		ID:           "sa-1",
		Email:        "root@erp.com",
		PasswordHash: mustHash(t, "rootpass"),
		IsActive:     true,
	}
	uc := buildUseCase(t, newFakeUserRepo(), newFakeSuperAdminRepo(admin), newFakeCompanyRepo())

	for i := 0; i < 10; i++ {
		_, err := uc.Login(dto.LoginRequest{Email: admin.Email, Password: "mala"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// Tras diez fallos la contraseña correcta sigue entrando.
	_, err := uc.Login(dto.LoginRequest{Email: admin.Email, Password: "rootpass"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil y contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePassword_VerificaLaActual(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	p := access.Principal{UserID: user.ID, Email: user.Email, Role: user.Role, CompanyID: company.ID}

	err := uc.UpdatePassword(p, dto.UpdatePasswordRequest{CurrentPassword: "mala", NewPassword: "nueva-clave-larga"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = uc.UpdatePassword(p, dto.UpdatePasswordRequest{CurrentPassword: "secreto123", NewPassword: "nueva-clave-larga"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("nueva-clave-larga")))
}

func TestUpdatePassword_MinimoOchoCaracteres(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	p := access.Principal{UserID: user.ID, Role: user.Role, CompanyID: company.ID}
	err := uc.UpdatePassword(p, dto.UpdatePasswordRequest{CurrentPassword: "secreto123", NewPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProfile_NoTocaRolNiEmpresa(t *testing.T) {
	company := approvedCompany("comp-1")
	user := activeUser(t, company.ID)
	uc := buildUseCase(t, newFakeUserRepo(user), newFakeSuperAdminRepo(), newFakeCompanyRepo(company))

	p := access.Principal{UserID: user.ID, Role: user.Role, CompanyID: company.ID}
	resp, err := uc.UpdateProfile(p, dto.UpdateProfileRequest{Name: "Ana María", Phone: "3001234567"})
	require.NoError(t, err)

	assert.Equal(t, "Ana María", resp.Name)
	assert.Equal(t, "3001234567", resp.Phone)
	assert.Equal(t, entity.RoleCompanyAdmin, user.Role)
	assert.Equal(t, "comp-1", user.CompanyID)
}

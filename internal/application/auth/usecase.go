package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/config"
	"github.com/tu-usuario/erp-multitenant/pkg/jwt"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// AuthUseCase resuelve autenticación unificada sobre los dos espacios de
// credenciales: usuarios de empresa y super administradores.
type AuthUseCase struct {
	users       repository.UserRepository
	superAdmins repository.SuperAdminRepository
	companies   repository.CompanyRepository
	cfg         *config.Config
	log         *logger.Logger
}

// NewAuthUseCase crea el caso de uso de autenticación.
func NewAuthUseCase(
	users repository.UserRepository,
	superAdmins repository.SuperAdminRepository,
	companies repository.CompanyRepository,
	cfg *config.Config,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:       users,
		superAdmins: superAdmins,
		companies:   companies,
		cfg:         cfg,
		log:         log,
	}
}

// LoginResult credenciales verificadas más el token emitido. El token
// viaja solo en la cookie, nunca en el cuerpo de la respuesta.
type LoginResult struct {
	Token string
	User  dto.UserResponse
}

// Login valida credenciales contra ambos espacios. Primero busca un
// usuario de empresa; si el correo no existe ahí, intenta super admin.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}

	user, err := uc.users.FindByEmail(in.Email)
	if err != nil && err != domain.ErrUserNotFound {
		return nil, err
	}
	if user != nil {
		return uc.loginTenantUser(user, in.Password)
	}

	admin, err := uc.superAdmins.FindByEmail(in.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return uc.loginSuperAdmin(admin, in.Password)
}

func (uc *AuthUseCase) loginTenantUser(user *entity.User, password string) (*LoginResult, error) {
	now := time.Now()

	if !user.IsActive || user.IsDeleted {
		return nil, domain.ErrAccountInactive
	}
	if user.IsLocked(now) {
		remaining := time.Until(*user.LockUntil).Round(time.Minute)
		if remaining < time.Minute {
			remaining = time.Minute
		}
		return nil, fmt.Errorf("%w: intente de nuevo en %d minutos",
			domain.ErrAccountLocked, int(remaining.Minutes()))
	}

	company, err := uc.companies.GetByID(user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.Status == entity.CompanyStatusSuspended {
		return nil, domain.ErrCompanySuspended
	}
	if company.Status != entity.CompanyStatusApproved || !company.IsActive {
		return nil, domain.ErrCompanyNotApproved
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, uc.registerFailedAttempt(user, now)
	}

	// Credenciales correctas: se limpia el contador y se registra el acceso.
	user.FailedLoginAttempts = 0
	user.LockUntil = nil
	user.LastLogin = &now
	if err := uc.users.Update(user); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar el último acceso")
	}

	token, err := jwt.Generate(uc.cfg.JWT.Secret, user.ID, user.Email, user.CompanyID,
		user.Role, uc.cfg.JWT.Issuer, uc.cfg.JWT.Expiration)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: userToResponse(user)}, nil
}

// registerFailedAttempt incrementa el contador de intentos fallidos y
// bloquea la cuenta al alcanzar el máximo configurado.
func (uc *AuthUseCase) registerFailedAttempt(user *entity.User, now time.Time) error {
	user.FailedLoginAttempts++

	if user.FailedLoginAttempts >= uc.cfg.Auth.MaxLoginAttempts {
		until := now.Add(time.Duration(uc.cfg.Auth.LockoutMinutes) * time.Minute)
		user.LockUntil = &until
		if err := uc.users.Update(user); err != nil {
			uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo bloquear la cuenta")
		}
		return fmt.Errorf("%w: cuenta bloqueada por %d minutos",
			domain.ErrAccountLocked, uc.cfg.Auth.LockoutMinutes)
	}

	if err := uc.users.Update(user); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar el intento fallido")
	}
	remaining := uc.cfg.Auth.MaxLoginAttempts - user.FailedLoginAttempts
	return fmt.Errorf("%w: %d intentos restantes", domain.ErrInvalidCredentials, remaining)
}

func (uc *AuthUseCase) loginSuperAdmin(admin *entity.SuperAdmin, password string) (*LoginResult, error) {
	if !admin.IsActive {
		return nil, domain.ErrAccountInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := uc.superAdmins.Update(admin); err != nil {
		uc.log.Error().Err(err).Str("admin_id", admin.ID).Msg("no se pudo registrar el último acceso")
	}

	token, err := jwt.Generate(uc.cfg.JWT.Secret, admin.ID, admin.Email, "",
		entity.RoleSuperAdmin, uc.cfg.JWT.Issuer, uc.cfg.JWT.Expiration)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: superAdminToResponse(admin)}, nil
}

// Profile devuelve el perfil del principal autenticado, resolviendo
// el espacio de credenciales por el rol del token.
func (uc *AuthUseCase) Profile(p access.Principal) (*dto.UserResponse, error) {
	if p.IsSuperAdmin() {
		admin, err := uc.superAdmins.GetByID(p.UserID)
		if err != nil {
			return nil, err
		}
		resp := superAdminToResponse(admin)
		return &resp, nil
	}

	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(scope, p.UserID)
	if err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// UpdateProfile actualiza nombre y teléfono del principal.
func (uc *AuthUseCase) UpdateProfile(p access.Principal, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if p.IsSuperAdmin() {
		admin, err := uc.superAdmins.GetByID(p.UserID)
		if err != nil {
			return nil, err
		}
		if in.Name != "" {
			admin.Name = in.Name
		}
		admin.UpdatedAt = time.Now()
		if err := uc.superAdmins.Update(admin); err != nil {
			return nil, err
		}
		resp := superAdminToResponse(admin)
		return &resp, nil
	}

	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(scope, p.UserID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// UpdatePassword cambia la contraseña verificando primero la actual.
func (uc *AuthUseCase) UpdatePassword(p access.Principal, in dto.UpdatePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}

	if p.IsSuperAdmin() {
		admin, err := uc.superAdmins.GetByID(p.UserID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return domain.ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin.PasswordHash = string(hash)
		admin.UpdatedAt = time.Now()
		return uc.superAdmins.Update(admin)
	}

	scope, err := access.ScopeFor(p)
	if err != nil {
		return err
	}
	user, err := uc.users.GetByID(scope, p.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.users.Update(user)
}

func userToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func superAdminToResponse(a *entity.SuperAdmin) dto.UserResponse {
	return dto.UserResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      entity.RoleSuperAdmin,
		IsActive:  a.IsActive,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// Roles asignables dentro de un tenant. SUPER_ADMIN queda fuera: vive en su
// propio espacio de credenciales y nunca se crea por esta vía.
var assignableRoles = map[string]bool{
	entity.RoleCompanyAdmin: true,
	entity.RoleManager:      true,
	entity.RoleUser:         true,
}

// UserUseCase gestiona los usuarios de un tenant.
type UserUseCase struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewUserUseCase crea el caso de uso de usuarios.
func NewUserUseCase(users repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, log: log}
}

// Create da de alta un usuario en la empresa del principal.
func (uc *UserUseCase) Create(p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: email, password y role son requeridos", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	if !assignableRoles[in.Role] {
		return nil, fmt.Errorf("%w: rol inválido %q", domain.ErrInvalidInput, in.Role)
	}
	if p.CompanyID == "" {
		return nil, domain.ErrForbidden
	}

	if _, err := uc.users.FindByEmail(in.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    p.CompanyID,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("company_id", user.CompanyID).Str("role", user.Role).Msg("usuario creado")
	resp := userToResponse(user)
	return &resp, nil
}

// List usuarios de la empresa del principal.
func (uc *UserUseCase) List(p access.Principal, in dto.UserListRequest) (*dto.UserListResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	users, total, err := uc.users.List(scope, repository.UserFilter{
		Email:  in.Email,
		Role:   in.Role,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, userToResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// GetByID devuelve un usuario visible bajo el alcance del principal.
func (uc *UserUseCase) GetByID(p access.Principal, id string) (*dto.UserResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// UpdateRole cambia el rol de un usuario del tenant.
func (uc *UserUseCase) UpdateRole(p access.Principal, id string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if !assignableRoles[in.Role] {
		return nil, fmt.Errorf("%w: rol inválido %q", domain.ErrInvalidInput, in.Role)
	}
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(scope, id)
	if err != nil {
		return nil, err
	}

	user.Role = in.Role
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("rol actualizado")
	resp := userToResponse(user)
	return &resp, nil
}

// SetActive activa o desactiva un usuario. Nadie se desactiva a sí mismo.
func (uc *UserUseCase) SetActive(p access.Principal, id string, active bool) (*dto.UserResponse, error) {
	if id == p.UserID && !active {
		return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrInvalidInput)
	}
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(scope, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if active {
		// La reactivación limpia cualquier bloqueo pendiente.
		user.FailedLoginAttempts = 0
		user.LockUntil = nil
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// Delete marca el usuario como borrado y lo desactiva.
func (uc *UserUseCase) Delete(p access.Principal, id string) error {
	if id == p.UserID {
		return fmt.Errorf("%w: no puede borrar su propia cuenta", domain.ErrInvalidInput)
	}
	scope, err := access.ScopeFor(p)
	if err != nil {
		return err
	}
	user, err := uc.users.GetByID(scope, id)
	if err != nil {
		return err
	}

	user.IsDeleted = true
	user.IsActive = false
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("usuario borrado (soft delete)")
	return nil
}

func userToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

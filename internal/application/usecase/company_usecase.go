package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// CompanyUseCase orquesta el ciclo de vida de las empresas:
// registro, aprobación, rechazo, suspensión y borrado con cascadas.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	log       *logger.Logger
}

// NewCompanyUseCase crea el caso de uso de empresas.
func NewCompanyUseCase(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	log *logger.Logger,
) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, users: users, log: log}
}

// Register crea la empresa en estado PENDING junto con su COMPANY_ADMIN
// inicial inactivo. Ninguno puede operar hasta la aprobación.
func (uc *CompanyUseCase) Register(in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if in.CompanyName == "" || in.Email == "" || in.AdminEmail == "" || in.AdminPassword == "" {
		return nil, fmt.Errorf("%w: company_name, email, admin_email y admin_password son requeridos", domain.ErrInvalidInput)
	}
	if len(in.AdminPassword) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}

	if _, err := uc.companies.GetByEmail(in.Email); err == nil {
		return nil, fmt.Errorf("%w: ya existe una empresa con ese email", domain.ErrConflict)
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	if _, err := uc.users.FindByEmail(in.AdminEmail); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	now := time.Now()
	start := now
	company := &entity.Company{
		ID:      uuid.NewString(),
		Name:    in.CompanyName,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: addressFromDTO(in.Address),
		Status:  entity.CompanyStatusPending,
		Subscription: entity.Subscription{
			Plan:      entity.PlanFree,
			StartDate: &start,
		},
		Settings: entity.Settings{
			Currency: "USD",
			Timezone: "UTC",
			TaxRate:  decimal.Zero,
		},
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companies.Create(company); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Name:         in.AdminName,
		Email:        in.AdminEmail,
		Phone:        in.AdminPhone,
		PasswordHash: string(hash),
		Role:         entity.RoleCompanyAdmin,
		IsActive:     false, // se activa al aprobar la empresa
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(admin); err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Str("email", company.Email).Msg("empresa registrada en estado PENDING")

	return &dto.RegisterCompanyResponse{
		Company: companyToResponse(company),
		Admin: dto.UserResponse{
			ID:        admin.ID,
			CompanyID: admin.CompanyID,
			Name:      admin.Name,
			Email:     admin.Email,
			Phone:     admin.Phone,
			Role:      admin.Role,
			IsActive:  admin.IsActive,
			CreatedAt: admin.CreatedAt,
			UpdatedAt: admin.UpdatedAt,
		},
	}, nil
}

// List empresas con filtros. Solo el super admin llega aquí (RBAC en la ruta).
func (uc *CompanyUseCase) List(in dto.CompanyListRequest) (*dto.CompanyListResponse, error) {
	in.DefaultPage()
	companies, total, err := uc.companies.List(repository.CompanyFilter{
		Status: in.Status,
		Search: in.Search,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		items = append(items, companyToResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// GetByID devuelve una empresa. Un usuario de tenant solo puede ver la suya.
func (uc *CompanyUseCase) GetByID(p access.Principal, id string) (*dto.CompanyResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(id) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := companyToResponse(company)
	return &resp, nil
}

// Approve pasa la empresa de PENDING a APPROVED y activa a sus
// COMPANY_ADMIN. Acepta overrides de suscripción.
func (uc *CompanyUseCase) Approve(approvedBy, id string, in dto.ApproveCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company.Status != entity.CompanyStatusPending {
		return nil, fmt.Errorf("%w: solo se aprueban empresas PENDING (estado actual %s)",
			domain.ErrInvalidTransition, company.Status)
	}

	now := time.Now()
	company.Status = entity.CompanyStatusApproved
	company.IsActive = true
	company.CreatedBy = approvedBy
	company.UpdatedAt = now
	if sub := in.Subscription; sub != nil {
		if sub.Plan != "" {
			company.Subscription.Plan = sub.Plan
		}
		if sub.StartDate != nil {
			company.Subscription.StartDate = sub.StartDate
		}
		if sub.EndDate != nil {
			company.Subscription.EndDate = sub.EndDate
		}
		if len(sub.Features) > 0 {
			company.Subscription.Features = sub.Features
		}
	}
	if err := uc.companies.Update(company); err != nil {
		return nil, err
	}

	if err := uc.users.SetActiveByCompany(company.ID, entity.RoleCompanyAdmin, true); err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Str("approved_by", approvedBy).Msg("empresa aprobada")
	resp := companyToResponse(company)
	return &resp, nil
}

// Reject rechaza una solicitud PENDING. Estado terminal.
func (uc *CompanyUseCase) Reject(id string) (*dto.CompanyResponse, error) {
	company, err := uc.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company.Status != entity.CompanyStatusPending {
		return nil, fmt.Errorf("%w: solo se rechazan empresas PENDING (estado actual %s)",
			domain.ErrInvalidTransition, company.Status)
	}

	company.Status = entity.CompanyStatusRejected
	company.IsActive = false
	company.UpdatedAt = time.Now()
	if err := uc.companies.Update(company); err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Msg("empresa rechazada")
	resp := companyToResponse(company)
	return &resp, nil
}

// Suspend suspende una empresa APPROVED y desactiva en cascada a todos
// sus usuarios, de cualquier rol.
func (uc *CompanyUseCase) Suspend(id string) (*dto.CompanyResponse, error) {
	company, err := uc.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company.Status != entity.CompanyStatusApproved {
		return nil, fmt.Errorf("%w: solo se suspenden empresas APPROVED (estado actual %s)",
			domain.ErrInvalidTransition, company.Status)
	}

	company.Status = entity.CompanyStatusSuspended
	company.IsActive = false
	company.UpdatedAt = time.Now()
	if err := uc.companies.Update(company); err != nil {
		return nil, err
	}

	if err := uc.users.SetActiveByCompany(company.ID, "", false); err != nil {
		return nil, err
	}

	uc.log.Warn().Str("company_id", company.ID).Msg("empresa suspendida; usuarios desactivados en cascada")
	resp := companyToResponse(company)
	return &resp, nil
}

// Update modifica datos generales. El Status nunca cambia por esta vía:
// las transiciones de estado tienen sus propias operaciones.
func (uc *CompanyUseCase) Update(p access.Principal, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(id) {
		return nil, domain.ErrForbidden
	}

	company, err := uc.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		company.Name = in.Name
	}
	if in.Phone != "" {
		company.Phone = in.Phone
	}
	if in.Address != nil {
		company.Address = addressFromDTO(*in.Address)
	}
	if in.Logo != "" {
		company.Logo = in.Logo
	}
	company.UpdatedAt = time.Now()
	if err := uc.companies.Update(company); err != nil {
		return nil, err
	}
	resp := companyToResponse(company)
	return &resp, nil
}

// Delete marca la empresa como borrada y desactiva/borra en cascada a
// todos sus usuarios. Borrado lógico, los datos permanecen.
func (uc *CompanyUseCase) Delete(id string) error {
	company, err := uc.companies.GetByID(id)
	if err != nil {
		return err
	}

	company.IsDeleted = true
	company.IsActive = false
	company.UpdatedAt = time.Now()
	if err := uc.companies.Update(company); err != nil {
		return err
	}

	if err := uc.users.SoftDeleteByCompany(company.ID); err != nil {
		return err
	}

	uc.log.Warn().Str("company_id", company.ID).Msg("empresa borrada (soft delete) con cascada de usuarios")
	return nil
}

func addressFromDTO(a dto.AddressDTO) entity.Address {
	return entity.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}

func addressToDTO(a entity.Address) dto.AddressDTO {
	return dto.AddressDTO{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}

func companyToResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: addressToDTO(c.Address),
		Logo:    c.Logo,
		Status:  c.Status,
		Subscription: dto.SubscriptionDTO{
			Plan:      c.Subscription.Plan,
			StartDate: c.Subscription.StartDate,
			EndDate:   c.Subscription.EndDate,
			Features:  c.Subscription.Features,
		},
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// CustomerUseCase gestiona los clientes de una empresa. Los agregados de
// compra (TotalPurchases, TotalSpent) los mantiene el motor de ventas.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	log       *logger.Logger
}

// NewCustomerUseCase crea el caso de uso de clientes.
func NewCustomerUseCase(customers repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, log: log}
}

// Create da de alta un cliente.
func (uc *CustomerUseCase) Create(p access.Principal, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if p.CompanyID == "" {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.NewString(),
		CompanyID: p.CompanyID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   addressFromDTO(in.Address),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customers.Create(customer); err != nil {
		return nil, err
	}

	resp := customerToResponse(customer)
	return &resp, nil
}

// GetByID devuelve un cliente visible bajo el alcance del principal.
func (uc *CustomerUseCase) GetByID(p access.Principal, id string) (*dto.CustomerResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

// List clientes de la empresa con búsqueda.
func (uc *CustomerUseCase) List(p access.Principal, in dto.CustomerListRequest) (*dto.CustomerListResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	customers, total, err := uc.customers.List(scope, repository.CustomerFilter{
		Search: in.Search,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, customerToResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update modifica datos de contacto. Los agregados de compra no se tocan.
func (uc *CustomerUseCase) Update(p access.Principal, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(scope, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.Email != "" {
		customer.Email = in.Email
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Address != nil {
		customer.Address = addressFromDTO(*in.Address)
	}
	if in.Notes != "" {
		customer.Notes = in.Notes
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customers.Update(customer); err != nil {
		return nil, err
	}

	resp := customerToResponse(customer)
	return &resp, nil
}

func customerToResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          addressToDTO(c.Address),
		TotalPurchases:   c.TotalPurchases,
		TotalSpent:       c.TotalSpent,
		LastPurchaseDate: c.LastPurchaseDate,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

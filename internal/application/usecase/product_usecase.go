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

// ProductUseCase gestiona el catálogo de productos de una empresa.
type ProductUseCase struct {
	products repository.ProductRepository
	log      *logger.Logger
}

// NewProductUseCase crea el caso de uso de productos.
func NewProductUseCase(products repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, log: log}
}

// Create da de alta un producto. El SKU es único por empresa.
func (uc *ProductUseCase) Create(p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, fmt.Errorf("%w: name y sku son requeridos", domain.ErrInvalidInput)
	}
	if in.BasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if p.CompanyID == "" {
		return nil, domain.ErrForbidden
	}

	if _, err := uc.products.GetBySKU(p.CompanyID, in.SKU); err == nil {
		return nil, fmt.Errorf("%w: ya existe un producto con SKU %s", domain.ErrDuplicate, in.SKU)
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.NewString(),
		CompanyID: p.CompanyID,
		Name:      in.Name,
		SKU:       in.SKU,
		BasePrice: in.BasePrice,
		Unit:      in.Unit,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}

	resp := productToResponse(product)
	return &resp, nil
}

// GetByID devuelve un producto visible bajo el alcance del principal.
func (uc *ProductUseCase) GetByID(p access.Principal, id string) (*dto.ProductResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	resp := productToResponse(product)
	return &resp, nil
}

// List productos de la empresa con búsqueda por nombre o SKU.
func (uc *ProductUseCase) List(p access.Principal, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	products, total, err := uc.products.List(scope, repository.ProductFilter{
		Search: in.Search,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, pr := range products {
		items = append(items, productToResponse(pr))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update modifica un producto existente.
func (uc *ProductUseCase) Update(p access.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(scope, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.BasePrice != nil {
		if in.BasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		product.BasePrice = *in.BasePrice
	}
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}

	resp := productToResponse(product)
	return &resp, nil
}

// Delete marca el producto como borrado. El historial de movimientos e
// inventario lo sigue referenciando.
func (uc *ProductUseCase) Delete(p access.Principal, id string) error {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return err
	}
	product, err := uc.products.GetByID(scope, id)
	if err != nil {
		return err
	}

	product.IsDeleted = true
	product.IsActive = false
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return err
	}

	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto borrado (soft delete)")
	return nil
}

func productToResponse(pr *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        pr.ID,
		CompanyID: pr.CompanyID,
		Name:      pr.Name,
		SKU:       pr.SKU,
		BasePrice: pr.BasePrice,
		Unit:      pr.Unit,
		IsActive:  pr.IsActive,
		CreatedAt: pr.CreatedAt,
		UpdatedAt: pr.UpdatedAt,
	}
}

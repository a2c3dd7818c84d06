package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/application/usecase"
)

// CompanyHandler maneja el ciclo de vida de empresas.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar empresa con su administrador inicial
// @Description  La empresa queda PENDING y el admin inactivo hasta la aprobación del super admin.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCompanyRequest  true  "datos de empresa y admin"
// @Success      201   {object}  dto.RegisterCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/register [post]
func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empresas (super admin)
// @Tags         companies
// @Produce      json
// @Param        status  query  string  false  "PENDING, APPROVED, SUSPENDED, REJECTED"
// @Param        search  query  string  false  "nombre o email"
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var in dto.CompanyListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una empresa
// @Tags         companies
// @Produce      json
// @Param        id  path  string  true  "company id"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar una empresa PENDING
// @Description  Activa la empresa y a sus COMPANY_ADMIN. Falla si no está PENDING.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "company id"
// @Param        body  body  dto.ApproveCompanyRequest  false  "overrides de suscripción"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/approve [post]
func (h *CompanyHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveCompanyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Approve(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar una empresa PENDING
// @Tags         companies
// @Produce      json
// @Param        id  path  string  true  "company id"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/reject [post]
func (h *CompanyHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary      Suspender una empresa APPROVED
// @Description  Desactiva a todos los usuarios de la empresa.
// @Tags         companies
// @Produce      json
// @Param        id  path  string  true  "company id"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/suspend [post]
func (h *CompanyHandler) Suspend(c *fiber.Ctx) error {
	out, err := h.uc.Suspend(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos generales de la empresa
// @Description  Nunca cambia el Status; las transiciones tienen sus propios endpoints.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "company id"
// @Param        body  body  dto.UpdateCompanyRequest  true  "cambios"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar (soft) una empresa y sus usuarios
// @Tags         companies
// @Produce      json
// @Param        id  path  string  true  "company id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/application/usecase"
)

// RoleRequestHandler maneja las solicitudes de ascenso de rol.
type RoleRequestHandler struct {
	uc *usecase.RoleRequestUseCase
}

// NewRoleRequestHandler construye el handler de solicitudes de ascenso.
func NewRoleRequestHandler(uc *usecase.RoleRequestUseCase) *RoleRequestHandler {
	return &RoleRequestHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar ascenso a MANAGER
// @Tags         role-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequestRequest  false  "reason"
// @Success      201   {object}  dto.RoleRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/role-requests [post]
func (h *RoleRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Create(GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis solicitudes de ascenso
// @Tags         role-requests
// @Produce      json
// @Success      200  {object}  dto.RoleRequestListResponse
// @Router       /api/role-requests/my-requests [get]
func (h *RoleRequestHandler) ListMine(c *fiber.Ctx) error {
	var in dto.RoleRequestListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListMine(GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de ascenso de la empresa
// @Tags         role-requests
// @Produce      json
// @Param        status  query  string  false  "PENDING, APPROVED, REJECTED"
// @Success      200  {object}  dto.RoleRequestListResponse
// @Router       /api/role-requests [get]
func (h *RoleRequestHandler) List(c *fiber.Ctx) error {
	var in dto.RoleRequestListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar una solicitud (asciende al usuario a MANAGER)
// @Tags         role-requests
// @Accept       json
// @Produce      json
// @Param        id    path  string  true   "request id"
// @Param        body  body  dto.ReviewRoleRequestRequest  false  "review_notes"
// @Success      200   {object}  dto.RoleRequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/role-requests/{id}/approve [post]
func (h *RoleRequestHandler) Approve(c *fiber.Ctx) error {
	var in dto.ReviewRoleRequestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Approve(GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar una solicitud de ascenso
// @Tags         role-requests
// @Accept       json
// @Produce      json
// @Param        id    path  string  true   "request id"
// @Param        body  body  dto.ReviewRoleRequestRequest  false  "review_notes"
// @Success      200   {object}  dto.RoleRequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/role-requests/{id}/reject [post]
func (h *RoleRequestHandler) Reject(c *fiber.Ctx) error {
	var in dto.ReviewRoleRequestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Reject(GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

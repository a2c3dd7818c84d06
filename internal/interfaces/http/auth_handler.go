package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/auth"
	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
)

// AuthHandler maneja login, logout y el perfil propio.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieMins   int
	secureCookie bool
}

// NewAuthHandler construye el handler de auth. cookieMins debe coincidir con
// la expiración del JWT; secureCookie se activa en producción.
func NewAuthHandler(uc *auth.AuthUseCase, cookieMins int, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieMins: cookieMins, secureCookie: secureCookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida credenciales de usuario de empresa o super admin y entrega el token en cookie http-only.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return errorResponse(c, err)
	}
	setAuthCookie(c, out.Token, h.cookieMins, h.secureCookie)
	return c.JSON(dto.LoginResponse{User: out.User})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearAuthCookie(c, h.secureCookie)
	return c.SendStatus(fiber.StatusNoContent)
}

// Profile godoc
// @Summary      Perfil propio
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(GetPrincipal(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil propio
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name, phone, avatar"
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProfile(GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// UpdatePassword godoc
// @Summary      Cambiar contraseña verificando la actual
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePasswordRequest  true  "current_password, new_password"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/password [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdatePassword(GetPrincipal(c), in); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

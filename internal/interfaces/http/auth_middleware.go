package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/pkg/jwt"
)

// AuthCookieName cookie http-only donde viaja el token de sesión.
const AuthCookieName = "auth-token"

// localPrincipal key del Principal autenticado en c.Locals.
const localPrincipal = "principal"

// AuthMiddleware valida el token JWT y deja el Principal en c.Locals.
// El token se lee primero de la cookie auth-token; si no está, del header
// Authorization: Bearer (clientes de API).
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AuthCookieName)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if authHeader == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(localPrincipal, access.Principal{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      claims.Role,
			CompanyID: claims.CompanyID,
		})
		return c.Next()
	}
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) access.Principal {
	v := c.Locals(localPrincipal)
	if v == nil {
		return access.Principal{}
	}
	p, _ := v.(access.Principal)
	return p
}

// GetUserID devuelve el UserID del principal autenticado.
func GetUserID(c *fiber.Ctx) string {
	return GetPrincipal(c).UserID
}

// GetCompanyID devuelve el CompanyID del principal autenticado (vacío para super admin).
func GetCompanyID(c *fiber.Ctx) string {
	return GetPrincipal(c).CompanyID
}

// GetRole devuelve el rol del principal autenticado.
func GetRole(c *fiber.Ctx) string {
	return GetPrincipal(c).Role
}

// RequireRole autoriza solo a los roles indicados. 401 si el token no trae
// rol, 403 si el rol no está permitido.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		if !p.HasRole(allowed...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
		}
		return c.Next()
	}
}

// RequirePermission autoriza contra la matriz rol → recurso → acción.
func RequirePermission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		if !access.IsAllowed(p.Role, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente"})
		}
		return c.Next()
	}
}

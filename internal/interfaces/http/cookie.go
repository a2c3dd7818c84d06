package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// setAuthCookie entrega el token de sesión en la cookie http-only. El token
// nunca viaja en el cuerpo de la respuesta.
func setAuthCookie(c *fiber.Ctx, token string, expMinutes int, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(expMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

// clearAuthCookie invalida la cookie de sesión (logout).
func clearAuthCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

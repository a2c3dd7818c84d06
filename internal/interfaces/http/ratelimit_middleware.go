package http

import (
	"fmt"
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/infrastructure/ratelimit"
)

// LoginRateLimit limita los intentos de login por IP de cliente. Si el
// limitador falla (Redis caído) la petición pasa: el lockout por cuenta
// sigue cubriendo la fuerza bruta.
func LoginRateLimit(limiter ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, retryAfter, err := limiter.Allow(c.UserContext(), "login:"+c.IP())
		if err != nil {
			return c.Next()
		}
		if !ok {
			minutes := int(math.Ceil(retryAfter.Minutes()))
			if minutes < 1 {
				minutes = 1
			}
			c.Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: fmt.Sprintf("demasiados intentos, intente de nuevo en %d minutos", minutes),
			})
		}
		return c.Next()
	}
}

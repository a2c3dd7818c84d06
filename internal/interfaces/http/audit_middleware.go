package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/audit"
)

// Audited registra la acción en el audit trail cuando el handler respondió
// 2xx. Va después de AuthMiddleware para tener el principal. Nunca registra
// cuerpos de petición (las contraseñas no llegan al trail).
func Audited(rec *audit.Recorder, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			return nil
		}
		p := GetPrincipal(c)
		rec.Record(audit.Event{
			CompanyID:  p.CompanyID,
			UserID:     p.UserID,
			Action:     action,
			Resource:   resource,
			ResourceID: c.Params("id"),
			IPAddress:  c.IP(),
			UserAgent:  c.Get("User-Agent"),
		})
		return nil
	}
}

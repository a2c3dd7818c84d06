package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/audit"
	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

// ActivityHandler expone la consulta del audit trail.
type ActivityHandler struct {
	rec *audit.Recorder
}

// NewActivityHandler construye el handler del audit trail.
func NewActivityHandler(rec *audit.Recorder) *ActivityHandler {
	return &ActivityHandler{rec: rec}
}

// List godoc
// @Summary      Consultar el audit trail
// @Description  Los admins de empresa ven solo los eventos de su empresa; el super admin ve todo.
// @Tags         logs
// @Produce      json
// @Param        user_id   query  string  false  "filtrar por usuario"
// @Param        resource  query  string  false  "filtrar por recurso"
// @Success      200  {object}  dto.ActivityLogListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var in dto.ActivityLogListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	in.DefaultPage()

	logs, total, err := h.rec.List(GetPrincipal(c), repository.ActivityLogFilter{
		UserID:   in.UserID,
		Resource: in.Resource,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	items := make([]dto.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.ActivityLogResponse{
			ID:         l.ID,
			CompanyID:  l.CompanyID,
			UserID:     l.UserID,
			Action:     l.Action,
			Resource:   l.Resource,
			ResourceID: l.ResourceID,
			IPAddress:  l.IPAddress,
			UserAgent:  l.UserAgent,
			CreatedAt:  l.CreatedAt,
		})
	}
	return c.JSON(dto.ActivityLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	})
}

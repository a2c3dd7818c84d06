package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/application/inventory"
)

// InventoryHandler maneja el stock y el libro de movimientos.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// StockIn godoc
// @Summary      Entrada de stock
// @Description  Crea la fila de inventario si es la primera referencia al producto.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.StockIn(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// StockOut godoc
// @Summary      Salida de stock
// @Description  Falla sin tocar nada si el stock es insuficiente.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.StockOut(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock (add, remove, set)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, quantity, type, reason"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Adjust(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inventario
// @Description  Sincroniza filas faltantes de productos activos antes de listar.
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        low_stock   query  bool    false  "solo filas bajo el mínimo"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var in dto.InventoryListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de stock
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        type        query  string  false  "IN, OUT, ADJUSTMENT"
// @Param        start_date  query  string  false  "ISO 8601, inclusive"
// @Param        end_date    query  string  false  "ISO 8601, inclusive"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Movements(GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

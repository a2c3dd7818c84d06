package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/application/sales"
)

// InvoiceHandler maneja las ventas/facturas.
type InvoiceHandler struct {
	uc    *sales.UseCase
	pdfUC *sales.PDFUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(uc *sales.UseCase, pdfUC *sales.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear venta/factura
// @Description  Numera, descuenta stock por línea y actualiza agregados del cliente en una sola transacción.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "items, payment_method, paid_amount"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        status          query  string  false  "COMPLETED, CANCELLED, REFUNDED"
// @Param        payment_status  query  string  false  "PAID, PARTIAL, DUE"
// @Param        customer_id     query  string  false  "filtrar por cliente"
// @Param        start_date      query  string  false  "ISO 8601, inclusive"
// @Param        end_date        query  string  false  "ISO 8601, inclusive"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(GetPrincipal(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una factura con sus líneas
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular una factura COMPLETED
// @Description  Solo cambia el estado; no devuelve stock (usar refund para eso).
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Refund godoc
// @Summary      Reembolsar una factura COMPLETED
// @Description  Devuelve el stock por línea y revierte los agregados del cliente en una transacción.
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/refund [post]
func (h *InvoiceHandler) Refund(c *fiber.Ctx) error {
	out, err := h.uc.Refund(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id  path  string  true  "invoice id"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfUC.DownloadInvoicePDF(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

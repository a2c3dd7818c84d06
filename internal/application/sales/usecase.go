package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// UseCase es el motor de ventas: crea facturas con numeración mensual,
// descuenta stock y mantiene los agregados de compra del cliente, todo en
// una sola transacción.
type UseCase struct {
	txRunner  TxRunner
	stock     StockMover
	products  repository.ProductRepository
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	log       *logger.Logger
}

// NewUseCase construye el motor de ventas.
func NewUseCase(
	txRunner TxRunner,
	stock StockMover,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		stock:     stock,
		products:  products,
		customers: customers,
		invoices:  invoices,
		log:       log,
	}
}

// CreateInvoice registra una venta. Valida líneas y cliente fuera de la
// transacción; dentro de ella resuelve el consecutivo, persiste la factura,
// descuenta el stock de cada línea y actualiza los agregados del cliente.
func (uc *UseCase) CreateInvoice(ctx context.Context, p access.Principal, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyInvoice
	}
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	if p.CompanyID == "" {
		return nil, domain.ErrForbidden
	}

	switch in.PaymentMethod {
	case entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodBankTransfer, entity.PaymentMethodDue:
	default:
		return nil, fmt.Errorf("%w: método de pago inválido %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.PaidAmount.IsNegative() || in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: montos negativos", domain.ErrInvalidInput)
	}

	var customerName string
	if in.CustomerID != "" {
		customer, err := uc.customers.GetByID(scope, in.CustomerID)
		if err != nil {
			return nil, err
		}
		customerName = customer.Name
	}

	items := make([]entity.InvoiceItem, 0, len(in.Items))
	subtotal := decimal.Zero
	totalTax := decimal.Zero
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		if line.UnitPrice.IsNegative() || line.Discount.IsNegative() || line.Tax.IsNegative() {
			return nil, fmt.Errorf("%w: montos negativos en línea", domain.ErrInvalidInput)
		}
		product, err := uc.products.GetByID(scope, line.ProductID)
		if err != nil {
			return nil, err
		}

		gross := line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
		lineTotal := gross.Sub(line.Discount).Add(line.Tax)
		subtotal = subtotal.Add(gross)
		totalTax = totalTax.Add(line.Tax)

		items = append(items, entity.InvoiceItem{
			ProductID:    line.ProductID,
			ProductName:  product.Name,
			VariationSKU: line.VariationSKU,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Discount:     line.Discount,
			Tax:          line.Tax,
			Total:        lineTotal,
		})
	}

	grandTotal := subtotal.Sub(in.Discount).Add(totalTax)
	if grandTotal.IsNegative() {
		return nil, fmt.Errorf("%w: el descuento excede el subtotal", domain.ErrInvalidInput)
	}
	paid := in.PaidAmount
	if paid.GreaterThan(grandTotal) {
		paid = grandTotal
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:            uuid.NewString(),
		CompanyID:     p.CompanyID,
		CustomerID:    in.CustomerID,
		CustomerName:  customerName,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Tax:           totalTax,
		GrandTotal:    grandTotal,
		PaidAmount:    paid,
		DueAmount:     grandTotal.Sub(paid),
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: entity.DerivePaymentStatus(paid, grandTotal),
		Status:        entity.InvoiceStatusCompleted,
		CreatedBy:     p.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunSales(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		count, err := invoiceRepo.CountForMonth(p.CompanyID, now.Year(), now.Month())
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = formatInvoiceNumber(now, count+1)

		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		for _, item := range invoice.Items {
			if err := uc.stock.StockOutInTx(invRepo, movRepo,
				p.CompanyID, p.UserID, item.ProductID, item.VariationSKU,
				item.Quantity, invoice.ID); err != nil {
				return err
			}
		}
		if invoice.CustomerID != "" {
			if err := customerRepo.ApplyPurchase(invoice.CustomerID, invoice.GrandTotal, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", invoice.CompanyID).
		Str("invoice_number", invoice.InvoiceNumber).
		Str("grand_total", invoice.GrandTotal.String()).
		Msg("factura creada")

	resp := invoiceToResponse(invoice)
	return &resp, nil
}

// GetByID devuelve una factura visible bajo el alcance del principal.
func (uc *UseCase) GetByID(p access.Principal, id string) (*dto.InvoiceResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	invoice, err := uc.invoices.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	resp := invoiceToResponse(invoice)
	return &resp, nil
}

// List facturas de la empresa con filtros de estado, cliente y fechas.
func (uc *UseCase) List(p access.Principal, in dto.InvoiceListRequest) (*dto.InvoiceListResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	invoices, total, err := uc.invoices.List(scope, repository.InvoiceFilter{
		Status:        in.Status,
		PaymentStatus: in.PaymentStatus,
		CustomerID:    in.CustomerID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, invoiceToResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Cancel anula una factura COMPLETED. La cancelación es contable: no
// devuelve stock ni toca los agregados del cliente.
func (uc *UseCase) Cancel(p access.Principal, id string) (*dto.InvoiceResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	invoice, err := uc.invoices.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != entity.InvoiceStatusCompleted {
		return nil, fmt.Errorf("%w: solo se cancelan facturas COMPLETED (estado actual %s)",
			domain.ErrInvalidTransition, invoice.Status)
	}

	now := time.Now()
	if err := uc.invoices.UpdateStatus(invoice.ID, entity.InvoiceStatusCancelled, now); err != nil {
		return nil, err
	}
	invoice.Status = entity.InvoiceStatusCancelled
	invoice.UpdatedAt = now

	uc.log.Info().Str("invoice_number", invoice.InvoiceNumber).Msg("factura cancelada")
	resp := invoiceToResponse(invoice)
	return &resp, nil
}

// Refund reembolsa una factura COMPLETED: repone el stock de cada línea y
// revierte los agregados del cliente, en una sola transacción.
func (uc *UseCase) Refund(ctx context.Context, p access.Principal, id string) (*dto.InvoiceResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	invoice, err := uc.invoices.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != entity.InvoiceStatusCompleted {
		return nil, fmt.Errorf("%w: solo se reembolsan facturas COMPLETED (estado actual %s)",
			domain.ErrInvalidTransition, invoice.Status)
	}

	now := time.Now()
	err = uc.txRunner.RunSales(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		for _, item := range invoice.Items {
			if err := uc.stock.StockInInTx(invRepo, movRepo,
				invoice.CompanyID, p.UserID, item.ProductID, item.VariationSKU,
				item.Quantity, invoice.ID); err != nil {
				return err
			}
		}
		if invoice.CustomerID != "" {
			if err := customerRepo.ReversePurchase(invoice.CustomerID, invoice.GrandTotal); err != nil {
				return err
			}
		}
		return invoiceRepo.UpdateStatus(invoice.ID, entity.InvoiceStatusRefunded, now)
	})
	if err != nil {
		return nil, err
	}
	invoice.Status = entity.InvoiceStatusRefunded
	invoice.UpdatedAt = now

	uc.log.Info().Str("invoice_number", invoice.InvoiceNumber).Msg("factura reembolsada; stock repuesto")
	resp := invoiceToResponse(invoice)
	return &resp, nil
}

// formatInvoiceNumber produce INV-YYYYMM-NNNN; el consecutivo reinicia cada mes.
func formatInvoiceNumber(at time.Time, seq int) string {
	return fmt.Sprintf("INV-%04d%02d-%04d", at.Year(), int(at.Month()), seq)
}

func invoiceToResponse(inv *entity.Invoice) dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			VariationSKU: it.VariationSKU,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Discount:     it.Discount,
			Tax:          it.Tax,
			Total:        it.Total,
		})
	}
	return dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Items:         items,
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		Tax:           inv.Tax,
		GrandTotal:    inv.GrandTotal,
		PaidAmount:    inv.PaidAmount,
		DueAmount:     inv.DueAmount,
		PaymentMethod: inv.PaymentMethod,
		PaymentStatus: inv.PaymentStatus,
		Status:        inv.Status,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash         = "CASH"
	PaymentMethodCard         = "CARD"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodDue          = "DUE"
)

// Estado de pago, derivado de PaidAmount frente a GrandTotal.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusDue     = "DUE"
)

// Estados de la factura. Se crea COMPLETED; CANCELLED y REFUNDED son terminales.
const (
	InvoiceStatusCompleted = "COMPLETED"
	InvoiceStatusCancelled = "CANCELLED"
	InvoiceStatusRefunded  = "REFUNDED"
)

// InvoiceItem línea de factura. Total = Quantity*UnitPrice - Discount + Tax.
type InvoiceItem struct {
	ProductID    string
	ProductName  string
	VariationSKU string
	Quantity     int64
	UnitPrice    decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// Invoice cabecera de una venta. InvoiceNumber es único por empresa, con
// formato INV-YYYYMM-NNNN y consecutivo que reinicia cada mes.
type Invoice struct {
	ID            string
	CompanyID     string
	InvoiceNumber string
	CustomerID    string // vacío para venta mostrador
	CustomerName  string
	Items         []InvoiceItem
	Subtotal      decimal.Decimal // suma de Quantity*UnitPrice
	Discount      decimal.Decimal // descuento global de la factura
	Tax           decimal.Decimal // suma de impuestos por línea
	GrandTotal    decimal.Decimal // Subtotal - Discount + Tax
	PaidAmount    decimal.Decimal
	DueAmount     decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	Status        string
	CreatedBy     string // UserID del vendedor
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DerivePaymentStatus calcula el estado de pago a partir de los montos.
func DerivePaymentStatus(paid, grandTotal decimal.Decimal) string {
	switch {
	case paid.IsZero():
		return PaymentStatusDue
	case paid.LessThan(grandTotal):
		return PaymentStatusPartial
	default:
		return PaymentStatusPaid
	}
}
